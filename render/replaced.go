package render

import (
	"context"
	"image"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/surface"
)

// inputColor paints check marks and radio dots.
var inputColor = rgba(0x2A2A2AFF)

// checkmark is the check glyph as fractions of the control's shorter side.
var checkmark = [][2]float64{
	{0.39363, 0.79},
	{0.16, 0.5549},
	{0.27347, 0.44071},
	{0.39694, 0.5649},
	{0.72983, 0.23},
	{0.84, 0.34085},
}

func (r *Renderer) renderReplaced(ctx context.Context, b *box.Box) {
	switch c := b.Content.(type) {
	case *box.Image:
		r.drawReplaced(b, r.match(ctx, c.URL), c.IntrinsicWidth, c.IntrinsicHeight)
	case *box.SVG:
		r.drawReplaced(b, r.match(ctx, c.Source), c.IntrinsicWidth, c.IntrinsicHeight)
	case *box.Canvas:
		img := c.Bitmap
		if img == nil {
			img = r.match(ctx, c.Source)
		}
		r.drawReplaced(b, img, 0, 0)
	case *box.IFrame:
		r.renderIFrame(ctx, b, c)
	case *box.Input:
		switch c.Type {
		case box.InputCheckbox:
			if c.Checked {
				r.drawCheckmark(b.Bounds)
			}
		case box.InputRadio:
			if c.Checked {
				r.drawRadio(b.Bounds)
			}
		case box.InputPassword:
			r.renderValue(b, strings.Repeat("•", len([]rune(c.Value))))
		default:
			r.renderValue(b, c.Value)
		}
	case *box.Select:
		r.renderValue(b, c.Value)
	case *box.Textarea:
		r.renderValue(b, c.Value)
	}
}

// match loads url through the cache. Failures are logged and yield nil.
func (r *Renderer) match(ctx context.Context, url string) image.Image {
	if url == "" {
		return nil
	}
	img, err := r.cache.Match(ctx, url)
	if err != nil {
		r.log.Warn("render: resource skipped", "url", url, "error", err)
		return nil
	}
	return img
}

// drawReplaced draws the (0, 0, iw, ih) region of img into the content
// box, clipped to the padding box. A zero intrinsic size uses the whole
// image.
func (r *Renderer) drawReplaced(b *box.Box, img image.Image, iw, ih float64) {
	if img == nil {
		return
	}
	if iw > 0 && ih > 0 {
		img = crop(img, iw, ih)
	}
	if img.Bounds().Empty() {
		return
	}
	pad, content := b.PaddingBox(), b.ContentBox()
	r.page.Save()
	r.page.ClipRect(pad.Left, pad.Top, pad.Width, pad.Height)
	r.page.DrawImage(img, content.Left, content.Top, content.Width, content.Height)
	r.page.Restore()
}

// crop returns the top-left w x h pixels of img. A region reaching past
// the image is cut at its edge.
func crop(img image.Image, w, h float64) image.Image {
	b := img.Bounds()
	rect := image.Rect(b.Min.X, b.Min.Y, b.Min.X+int(math.Ceil(w)), b.Min.Y+int(math.Ceil(h))).Intersect(b)
	if rect == b {
		return img
	}
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(dst, image.Point{}, img, rect, draw.Src, nil)
	return dst
}

// renderIFrame paints the nested tree on its own page and places the
// rasterized result over the border box.
func (r *Renderer) renderIFrame(ctx context.Context, b *box.Box, f *box.IFrame) {
	if f.Tree == nil || f.Width <= 0 || f.Height <= 0 {
		return
	}
	sub, err := New(Options{
		Width:       f.Width,
		Height:      f.Height,
		Background:  f.BackgroundColor,
		Fonts:       r.fonts,
		Cache:       r.cache,
		RasterScale: r.opts.RasterScale,
	})
	if err != nil {
		r.log.Warn("render: iframe skipped", "error", err)
		return
	}
	if err := sub.RenderPage(ctx, f.Tree, 1); err != nil {
		r.log.Warn("render: iframe skipped", "error", err)
		return
	}
	scale := r.opts.RasterScale
	if scale <= 0 {
		scale = 1
	}
	img, err := surface.Rasterize(sub.doc.Recordings()[0], scale/PxToPt(1), r.fonts, gg.RGBA{})
	if err != nil {
		r.log.Warn("render: iframe skipped", "error", err)
		return
	}
	bd := b.Bounds
	r.page.DrawImage(img, bd.Left, bd.Top, bd.Width, bd.Height)
}

func (r *Renderer) drawCheckmark(bd box.Bounds) {
	size := min(bd.Width, bd.Height)
	p := gg.NewPath()
	for i, pt := range checkmark {
		x, y := bd.Left+size*pt[0], bd.Top+size*pt[1]
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	r.page.FillPath(p, inputColor)
}

func (r *Renderer) drawRadio(bd box.Bounds) {
	size := min(bd.Width, bd.Height)
	p := gg.NewPath()
	p.Circle(bd.Left+size/2, bd.Top+size/2, size/4)
	r.page.FillPath(p, inputColor)
}

// renderValue draws a form control's value in its content box, aligned by
// text-align.
func (r *Renderer) renderValue(b *box.Box, value string) {
	if value == "" {
		return
	}
	s := &b.Styles
	face := r.useFont(s)
	if face == nil {
		return
	}
	cb := b.ContentBox()
	lh := s.LineHeight
	if lh <= 0 {
		lh = cb.Height
	}
	baseline, _ := lineMetrics(face.Metrics(), lh)

	w := textWidth(face, value, s.LetterSpacing)
	x := cb.Left
	switch s.TextAlign {
	case box.AlignCenter:
		x += cb.Width/2 - w/2
	case box.AlignRight:
		x += cb.Width - w
	}

	r.page.Save()
	r.page.ClipRect(cb.Left, cb.Top, cb.Width, cb.Height)
	r.drawText(face, value, x, cb.Top+baseline, s.LetterSpacing, rgba(s.Color))
	r.page.Restore()
}

// renderListMarker draws the list-style image left of the box, or else the
// marker text right-aligned against the box's left edge.
func (r *Renderer) renderListMarker(ctx context.Context, b *box.Box, value string) {
	s := &b.Styles
	if s.ListStyleImage != "" {
		img := r.match(ctx, s.ListStyleImage)
		if img != nil {
			sz := img.Bounds().Size()
			w, h := float64(sz.X), float64(sz.Y)
			r.page.DrawImage(img, b.Bounds.Left-(w+10), b.Bounds.Top, w, h)
			return
		}
	}
	if value == "" || s.ListStyleType == box.ListNone {
		return
	}
	face := r.useFont(s)
	if face == nil {
		return
	}
	x := b.Bounds.Left - textWidth(face, value, s.LetterSpacing)
	y := b.Bounds.Top + s.Padding[box.Top] + s.LineHeight/2 + 2
	r.drawText(face, value, x, y, s.LetterSpacing, rgba(s.Color))
}
