package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/effect"
	"github.com/gogpu/paged/fonts"
	"github.com/gogpu/paged/internal/logging"
	"github.com/gogpu/paged/resource"
	"github.com/gogpu/paged/stacking"
	"github.com/gogpu/paged/surface"
)

// ErrInvalidSize is returned by New for non-positive page sizes.
var ErrInvalidSize = errors.New("render: invalid page size")

// Options configures a Renderer. Sizes and origins are CSS pixels.
type Options struct {
	Width   float64
	Height  float64
	OriginX float64
	OriginY float64

	// Background fills every page when not transparent.
	Background box.Color
	PageConfig PageConfig
	// Pagination enables the running header and footer.
	Pagination bool

	// Fonts defaults to a registry holding only the Go fonts.
	Fonts *fonts.Registry
	// Cache defaults to a cache over data, file and http URLs.
	Cache *resource.Cache

	// Encoder, RasterScale and ID configure Output.
	Encoder     string
	RasterScale float64
	ID          string
}

// Renderer paints page trees onto the pages of a surface.Document. A
// Renderer is not safe for concurrent use.
type Renderer struct {
	opts  Options
	log   *slog.Logger
	doc   *surface.Document
	page  *surface.Page
	fonts *fonts.Registry
	cache *resource.Cache

	effects *effect.Stack

	originX    float64
	originY    float64
	totalPages int

	fontName string
	fontSize float64
}

// New returns a renderer whose document holds one empty page.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.Encoder != "" {
		if _, err := surface.LookupEncoder(opts.Encoder); err != nil {
			return nil, err
		}
	}
	if opts.Fonts == nil {
		reg, err := fonts.NewRegistry()
		if err != nil {
			return nil, err
		}
		opts.Fonts = reg
	}
	if opts.Cache == nil {
		opts.Cache = resource.NewCache()
	}

	r := &Renderer{
		opts:    opts,
		log:     logging.Logger(),
		doc:     surface.NewDocument(PxToPt(opts.Width), PxToPt(opts.Height)),
		fonts:   opts.Fonts,
		cache:   opts.Cache,
		originX: opts.OriginX,
		originY: opts.OriginY,
	}
	r.fontName = r.fonts.Resolve(fonts.Spec{Family: fonts.DefaultFamily, Weight: 400}).String()
	r.fontSize = box.DefaultStyles().FontSize
	r.startPage()
	return r, nil
}

// startPage opens a document page and installs the pixel-to-point base
// transform. Effects are applied on top of it and never pop it.
func (r *Renderer) startPage() {
	r.page = r.doc.AddPage()
	r.effects = effect.NewStack(r.page, r.selectFont)
	r.page.Transform(gg.Scale(PxToPt(1), PxToPt(1)))
	r.page.Transform(gg.Translate(-r.originX, -r.originY))
	r.selectFont()
}

func (r *Renderer) selectFont() {
	r.page.SetFont(r.fontName, r.fontSize)
}

// SetTotalPages sets the value substituted for ${totalPages}.
func (r *Renderer) SetTotalPages(n int) { r.totalPages = n }

// AddPage closes the current page and starts a new one whose origin is
// offsetY pixels down the document.
func (r *Renderer) AddPage(offsetY float64) {
	r.effects.Apply(nil)
	r.originY = offsetY
	r.startPage()
}

// Document returns the document being drawn.
func (r *Renderer) Document() *surface.Document { return r.doc }

// Page returns the page being drawn.
func (r *Renderer) Page() *surface.Page { return r.page }

// RenderPage paints root, a page-local tree, onto the current page.
// pageNumber is 1-based and only feeds the header and footer.
func (r *Renderer) RenderPage(ctx context.Context, root *box.Box, pageNumber int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.log.Debug("render: page", "page", pageNumber, "total", r.totalPages)

	if !r.opts.Background.IsTransparent() {
		r.page.FillRect(r.originX, r.originY, r.opts.Width, r.opts.Height, rgba(r.opts.Background))
	}
	if root != nil {
		if err := r.cache.Prefetch(ctx, resourceURLs(root)); err != nil {
			return err
		}
		if err := r.renderStack(ctx, stacking.Parse(root)); err != nil {
			r.effects.Apply(nil)
			return err
		}
	}
	r.effects.Apply(nil)

	if r.opts.Pagination {
		r.renderHeaderFooter(pageNumber)
	}
	return nil
}

// Output rasterizes every page and writes the archive to w.
func (r *Renderer) Output(w io.Writer) error {
	r.effects.Apply(nil)
	return r.doc.WriteArchive(w, surface.ArchiveOptions{
		Encoder: r.opts.Encoder,
		Scale:   r.opts.RasterScale,
		Faces:   r.fonts,
		ID:      r.opts.ID,
	})
}

// resourceURLs lists the URLs root's content will ask the cache for.
func resourceURLs(root *box.Box) []string {
	var urls []string
	root.Walk(func(b *box.Box) bool {
		switch c := b.Content.(type) {
		case *box.Image:
			urls = append(urls, c.URL)
		case *box.SVG:
			urls = append(urls, c.Source)
		case *box.Canvas:
			if c.Bitmap == nil {
				urls = append(urls, c.Source)
			}
		}
		if b.IsListItem() && b.Styles.ListStyleImage != "" {
			urls = append(urls, b.Styles.ListStyleImage)
		}
		return true
	})
	return urls
}

func rgba(c box.Color) gg.RGBA {
	r, g, b, a := c.Components()
	return gg.RGBA{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: float64(a) / 255}
}
