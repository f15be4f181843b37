// Package surface records painted pages and turns them into images.
//
// A Page wraps a gg recording.Recorder sized in points. The renderer draws
// into it in CSS pixels under a base transform; the recorder bakes every
// coordinate into page space as commands are recorded, so the finished
// recording.Recording is a plain vector command log that any
// recording.Backend can replay.
//
// A Document owns the pages of one render and writes them out as a ZIP
// archive: each page is rasterized by the Raster backend and encoded with
// a registered Encoder, and a manifest.json describes the result.
//
//	doc := surface.NewDocument(595.5, 842.25)
//	p := doc.AddPage()
//	p.FillRect(10, 10, 100, 40, gg.RGBA{R: 1, A: 1})
//	err := doc.WriteArchive(w, surface.ArchiveOptions{Encoder: "png"})
package surface
