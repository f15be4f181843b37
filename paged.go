package paged

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/fonts"
	"github.com/gogpu/paged/paginate"
	"github.com/gogpu/paged/render"
	"github.com/gogpu/paged/surface"
)

// ErrNilRoot is returned when Render is given no tree.
var ErrNilRoot = errors.New("paged: nil root box")

// Render paginates root, paints every page and writes the output archive
// to w. root is not modified.
func Render(ctx context.Context, root *box.Box, w io.Writer, opts ...Option) error {
	r, err := renderPages(ctx, root, opts)
	if err != nil {
		return err
	}
	return r.Output(w)
}

// RenderDocument paginates and paints root and returns the recorded pages.
func RenderDocument(ctx context.Context, root *box.Box, opts ...Option) (*surface.Document, error) {
	r, err := renderPages(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	return r.Document(), nil
}

// Paginate applies the origin and page options to root and returns the
// page-local trees Render would paint.
func Paginate(root *box.Box, opts ...Option) ([]*box.Box, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if root == nil {
		return nil, ErrNilRoot
	}
	return paginateTree(prepare(root, &o), &o)
}

func renderPages(ctx context.Context, root *box.Box, opts []Option) (*render.Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if root == nil {
		return nil, ErrNilRoot
	}
	configs, err := o.fontConfigs()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := Logger().With("render", id)
	start := time.Now()
	log.Info("paged: render started", "format", o.format, "width", o.size.Width, "height", o.size.Height)

	reg, err := fonts.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, c := range configs {
		if err := reg.RegisterConfig(c); err != nil {
			log.Warn("paged: font not registered, using default faces", "family", c.Family, "error", err)
		}
	}

	pages, err := paginateTree(prepare(root, &o), &o)
	if err != nil {
		return nil, err
	}

	r, err := render.New(render.Options{
		Width:       o.size.Width,
		Height:      o.size.Height,
		OriginX:     o.originX,
		Background:  o.background,
		PageConfig:  o.pageConfig,
		Pagination:  o.pagination,
		Fonts:       reg,
		Cache:       o.cache,
		Encoder:     o.encoder,
		RasterScale: o.rasterScale,
		ID:          id,
	})
	if err != nil {
		return nil, err
	}
	r.SetTotalPages(len(pages))
	for i, page := range pages {
		if i > 0 {
			r.AddPage(0)
		}
		if err := r.RenderPage(ctx, page, i+1); err != nil {
			return nil, err
		}
	}
	log.Info("paged: render finished", "pages", len(pages), "elapsed", time.Since(start))
	return r, nil
}

// prepare returns a working copy of root: inherited flags pushed down, the
// origin applied and a root background matching the page made transparent.
func prepare(root *box.Box, o *options) *box.Box {
	tree := root.Clone()
	box.Inherit(tree)
	if o.originY != 0 {
		tree.ShiftY(-o.originY)
	}
	if tree.Styles.BackgroundColor == o.background {
		tree.Styles.BackgroundColor = box.Transparent
	}
	return tree
}

func paginateTree(tree *box.Box, o *options) ([]*box.Box, error) {
	pc := &o.pageConfig
	pages, err := paginate.NewSession().Paginate(tree, o.size.Height, 0, pc.Header.Height, pc.Footer.Height)
	if err != nil {
		return nil, err
	}
	Logger().Debug("paged: paginated", "pages", len(pages), "pageHeight", o.size.Height)
	return pages, nil
}
