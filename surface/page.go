package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"golang.org/x/image/draw"
)

// Stroke describes how a path outline is drawn.
type Stroke struct {
	Width float64
	Dash  []float64
	Round bool
}

// Page is one recorded page. It implements effect.Surface.
//
// Coordinates passed to Page are user-space values; the current transform
// maps them into points. Global alpha is not a recorder concept, so Page
// tracks it itself alongside Save/Restore and folds it into every brush and
// image it records.
type Page struct {
	rec    *recording.Recorder
	width  float64
	height float64

	alpha  float64
	alphas []float64

	fontName string
	fontSize float64

	finished *recording.Recording
}

// NewPage returns an empty page of the given size in points.
func NewPage(width, height float64) *Page {
	return &Page{
		rec:    recording.NewRecorder(int(math.Ceil(width)), int(math.Ceil(height))),
		width:  width,
		height: height,
		alpha:  1,
	}
}

// Width returns the page width in points.
func (p *Page) Width() float64 { return p.width }

// Height returns the page height in points.
func (p *Page) Height() float64 { return p.height }

// Alpha returns the current global alpha.
func (p *Page) Alpha() float64 { return p.alpha }

// Save pushes the graphics state.
func (p *Page) Save() {
	p.alphas = append(p.alphas, p.alpha)
	p.rec.Save()
}

// Restore pops the graphics state. Restoring an empty stack does nothing.
func (p *Page) Restore() {
	if len(p.alphas) == 0 {
		return
	}
	p.alpha = p.alphas[len(p.alphas)-1]
	p.alphas = p.alphas[:len(p.alphas)-1]
	p.rec.Restore()
}

// Depth reports the number of unrestored saves.
func (p *Page) Depth() int { return len(p.alphas) }

// MultiplyAlpha scales the global alpha by a.
func (p *Page) MultiplyAlpha(a float64) {
	p.alpha *= clamp01(a)
}

// Transform concatenates m onto the current transform; m applies first.
func (p *Page) Transform(m gg.Matrix) {
	p.rec.Transform(toRecording(m))
}

// SetTransform replaces the current transform.
func (p *Page) SetTransform(m gg.Matrix) {
	p.rec.SetTransform(toRecording(m))
}

// Matrix returns the current transform.
func (p *Page) Matrix() gg.Matrix {
	m := p.rec.GetTransform()
	return gg.Matrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

// ClipPath intersects the clip region with path.
func (p *Page) ClipPath(path *gg.Path) {
	if path == nil || path.NumVerbs() == 0 {
		return
	}
	p.rec.ClearPath()
	p.trace(path)
	p.rec.Clip()
}

// ClipRect intersects the clip region with a rectangle.
func (p *Page) ClipRect(x, y, w, h float64) {
	w, h = minSize(w), minSize(h)
	p.rec.ClearPath()
	p.rec.DrawRectangle(x, y, w, h)
	p.rec.Clip()
}

// FillRect fills a rectangle. Widths and heights under one unit are
// widened to one unit.
func (p *Page) FillRect(x, y, w, h float64, c gg.RGBA) {
	c = p.faded(c)
	if c.A <= 0 {
		return
	}
	w, h = minSize(w), minSize(h)
	p.rec.SetFillStyle(recording.NewSolidBrush(c))
	if axisAligned(p.rec.GetTransform()) {
		p.rec.FillRectangle(x, y, w, h)
		return
	}
	p.rec.ClearPath()
	p.rec.DrawRectangle(x, y, w, h)
	p.rec.Fill()
}

// FillPath fills path with the non-zero rule.
func (p *Page) FillPath(path *gg.Path, c gg.RGBA) {
	c = p.faded(c)
	if c.A <= 0 || path == nil {
		return
	}
	p.rec.SetFillStyle(recording.NewSolidBrush(c))
	p.rec.ClearPath()
	p.trace(path)
	p.rec.Fill()
}

// StrokePath strokes path. Widths and dash lengths are given in user units
// and recorded in points.
func (p *Page) StrokePath(path *gg.Path, c gg.RGBA, s Stroke) {
	c = p.faded(c)
	if c.A <= 0 || path == nil || s.Width <= 0 {
		return
	}
	k := p.scale()
	p.rec.SetStrokeStyle(recording.NewSolidBrush(c))
	p.rec.SetLineWidth(s.Width * k)
	if s.Round {
		p.rec.SetLineCap(recording.LineCapRound)
	} else {
		p.rec.SetLineCap(recording.LineCapButt)
	}
	if len(s.Dash) > 0 {
		dash := make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = d * k
		}
		p.rec.SetDash(dash...)
	} else {
		p.rec.ClearDash()
	}
	p.rec.ClearPath()
	p.trace(path)
	p.rec.Stroke()
}

// DrawImage draws img scaled into the rectangle (x, y, w, h). The current
// global alpha is applied to a copy of the pixels.
func (p *Page) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || img.Bounds().Empty() || p.alpha <= 0 {
		return
	}
	w, h = minSize(w), minSize(h)
	if p.alpha < 1 {
		img = fade(img, p.alpha)
	}
	p.rec.DrawImageScaled(img, x, y, w, h)
}

// SetFont selects the face used by DrawString. name is a face key the
// playback side can resolve; size is in user units.
func (p *Page) SetFont(name string, size float64) {
	p.fontName = name
	p.fontSize = size
}

// Font returns the current face key and size.
func (p *Page) Font() (string, float64) { return p.fontName, p.fontSize }

// DrawString records s with its baseline at (x, y).
func (p *Page) DrawString(s string, x, y float64, c gg.RGBA) {
	c = p.faded(c)
	if s == "" || c.A <= 0 {
		return
	}
	p.rec.SetFontFamily(p.fontName)
	p.rec.SetFontSize(p.fontSize * p.scale())
	p.rec.SetFillStyle(recording.NewSolidBrush(c))
	p.rec.DrawString(s, x, y)
}

// Finish closes the page and returns its recording. Later calls return
// the same recording.
func (p *Page) Finish() *recording.Recording {
	if p.finished == nil {
		for len(p.alphas) > 0 {
			p.Restore()
		}
		p.finished = p.rec.FinishRecording()
	}
	return p.finished
}

func (p *Page) trace(path *gg.Path) {
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			p.rec.MoveTo(c[0], c[1])
		case gg.LineTo:
			p.rec.LineTo(c[0], c[1])
		case gg.QuadTo:
			p.rec.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			p.rec.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			p.rec.ClosePath()
		}
	})
}

// scale is the uniform scale of the current transform.
func (p *Page) scale() float64 {
	return math.Sqrt(math.Abs(p.rec.GetTransform().Determinant()))
}

func (p *Page) faded(c gg.RGBA) gg.RGBA {
	c.A *= p.alpha
	return c
}

func toRecording(m gg.Matrix) recording.Matrix {
	return recording.Matrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

func axisAligned(m recording.Matrix) bool {
	return m.B == 0 && m.D == 0
}

func minSize(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func fade(img image.Image, alpha float64) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(clamp01(alpha) * 255))})
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	return dst
}
