// Package paged turns a laid-out box tree into fixed-size pages.
//
// # Overview
//
// The input is a tree of measured boxes (package box) produced by a layout
// engine: bounds, computed styles, text segments and replaced content such
// as images, canvases, SVGs, iframes and form controls. paged slices the
// tree into page-height windows (package paginate), linearizes each page
// into CSS painting order (package stacking), records vector drawing
// commands per page (packages render and surface) and finally writes the
// pages as an image archive.
//
// # Quick Start
//
//	root, err := box.Decode(r)
//	if err != nil {
//		return err
//	}
//	f, err := os.Create("out.zip")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//	return paged.Render(ctx, root, f, paged.WithFormat("a4"), paged.WithPagination(true))
//
// # Output
//
// Render writes a ZIP archive holding one image per page plus a
// manifest.json. RenderDocument returns the recorded pages instead, for
// callers that replay them onto their own gg backend.
//
// # Logging
//
// paged is silent by default. See SetLogger.
package paged
