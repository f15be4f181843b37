package surface

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/gg/text"
)

// FaceResolver maps a recorded font family name and a pixel size to a face.
// *fonts.Registry implements it.
type FaceResolver interface {
	ResolveFace(name string, size float64) text.Face
}

// Raster replays a recording onto a gg.Context at a fixed scale.
//
// Recorded geometry is already in page points, so Raster ignores
// SetTransform and scales coordinates itself; widths, dash lengths and font
// sizes are scaled the same way.
//
// recording.Recording.Playback hands DrawText no face, so Raster is primed
// with the recording's text commands and consumes one per DrawText call to
// recover the family and size.
type Raster struct {
	ctx        *gg.Context
	scale      float64
	faces      FaceResolver
	background gg.RGBA
	width      int
	height     int

	texts []recording.DrawTextCommand
}

var _ recording.Backend = (*Raster)(nil)

// NewRaster returns a backend that renders at scale pixels per point onto
// an opaque background.
func NewRaster(scale float64, faces FaceResolver, background gg.RGBA) *Raster {
	if scale <= 0 {
		scale = 1
	}
	return &Raster{scale: scale, faces: faces, background: background}
}

// Rasterize plays rec back and returns the resulting image.
func Rasterize(rec *recording.Recording, scale float64, faces FaceResolver, background gg.RGBA) (image.Image, error) {
	r := NewRaster(scale, faces, background)
	for _, cmd := range rec.Commands() {
		if t, ok := cmd.(recording.DrawTextCommand); ok {
			r.texts = append(r.texts, t)
		}
	}
	if err := rec.Playback(r); err != nil {
		return nil, err
	}
	// Close flushes pending accelerator work; the pixmap stays readable.
	if err := r.ctx.Close(); err != nil {
		return nil, err
	}
	return r.ctx.Image(), nil
}

// Begin allocates the pixel buffer.
func (r *Raster) Begin(width, height int) error {
	r.width = max(1, int(math.Ceil(float64(width)*r.scale)))
	r.height = max(1, int(math.Ceil(float64(height)*r.scale)))
	r.ctx = gg.NewContext(r.width, r.height)
	r.ctx.ClearWithColor(r.background)
	return nil
}

// End finishes playback.
func (r *Raster) End() error { return nil }

// Save pushes transform and clip state.
func (r *Raster) Save() { r.ctx.Push() }

// Restore pops transform and clip state.
func (r *Raster) Restore() { r.ctx.Pop() }

// SetTransform is ignored; recorded coordinates are already transformed.
func (r *Raster) SetTransform(recording.Matrix) {}

// SetClip intersects the clip with path.
func (r *Raster) SetClip(path *gg.Path, rule recording.FillRule) {
	if path == nil {
		return
	}
	r.setPath(path)
	r.ctx.SetFillRule(convertFillRule(rule))
	r.ctx.Clip()
}

// ClearClip removes every clip.
func (r *Raster) ClearClip() { r.ctx.ResetClip() }

// FillPath fills path with brush.
func (r *Raster) FillPath(path *gg.Path, brush recording.Brush, rule recording.FillRule) {
	if path == nil {
		return
	}
	r.ctx.SetFillBrush(gg.Solid(brushColor(brush)))
	r.ctx.SetFillRule(convertFillRule(rule))
	r.setPath(path)
	_ = r.ctx.Fill()
}

// StrokePath strokes path with brush.
func (r *Raster) StrokePath(path *gg.Path, brush recording.Brush, stroke recording.Stroke) {
	if path == nil {
		return
	}
	r.ctx.SetStrokeBrush(gg.Solid(brushColor(brush)))
	r.applyStroke(stroke)
	r.setPath(path)
	_ = r.ctx.Stroke()
}

// FillRect fills an axis-aligned rectangle in page space.
func (r *Raster) FillRect(rect recording.Rect, brush recording.Brush) {
	s := r.scale
	r.ctx.SetFillBrush(gg.Solid(brushColor(brush)))
	r.ctx.Identity()
	r.ctx.ClearPath()
	r.ctx.DrawRectangle(rect.MinX*s, rect.MinY*s, rect.Width()*s, rect.Height()*s)
	_ = r.ctx.Fill()
}

// DrawImage draws the src region of img into dst.
func (r *Raster) DrawImage(img image.Image, src, dst recording.Rect, opts recording.ImageOptions) {
	if img == nil {
		return
	}
	s := r.scale
	o := gg.DrawImageOptions{
		X:             dst.MinX * s,
		Y:             dst.MinY * s,
		DstWidth:      dst.Width() * s,
		DstHeight:     dst.Height() * s,
		Interpolation: gg.InterpBilinear,
		Opacity:       opts.Alpha,
	}
	if !src.IsEmpty() {
		b := img.Bounds()
		sr := image.Rect(
			b.Min.X+int(src.MinX), b.Min.Y+int(src.MinY),
			b.Min.X+int(math.Ceil(src.MaxX)), b.Min.Y+int(math.Ceil(src.MaxY)),
		).Intersect(b)
		o.SrcRect = &sr
	}
	r.ctx.Identity()
	r.ctx.DrawImageEx(gg.ImageBufFromImage(img), o)
}

// DrawText draws the next primed text command.
func (r *Raster) DrawText(s string, x, y float64, face text.Face, brush recording.Brush) {
	size := 0.0
	if len(r.texts) > 0 {
		t := r.texts[0]
		r.texts = r.texts[1:]
		if face == nil && r.faces != nil {
			face = r.faces.ResolveFace(t.FontFamily, t.FontSize*r.scale)
		}
		size = t.FontSize
	}
	if face == nil || size <= 0 {
		return
	}
	r.ctx.Identity()
	r.ctx.SetFont(face)
	r.ctx.SetColor(brushColor(brush))
	r.ctx.DrawString(s, x*r.scale, y*r.scale)
}

// Image returns the rendered pixels.
func (r *Raster) Image() image.Image { return r.ctx.Image() }

// setPath loads path, scaled into device pixels, as the current path.
func (r *Raster) setPath(path *gg.Path) {
	r.ctx.Identity()
	r.ctx.ClearPath()
	if r.scale != 1 {
		path = path.Transform(gg.Scale(r.scale, r.scale))
	}
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			r.ctx.MoveTo(c[0], c[1])
		case gg.LineTo:
			r.ctx.LineTo(c[0], c[1])
		case gg.QuadTo:
			r.ctx.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			r.ctx.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			r.ctx.ClosePath()
		}
	})
}

func (r *Raster) applyStroke(stroke recording.Stroke) {
	s := r.scale
	r.ctx.SetLineWidth(stroke.Width * s)
	r.ctx.SetLineCap(convertLineCap(stroke.Cap))
	r.ctx.SetLineJoin(convertLineJoin(stroke.Join))
	r.ctx.SetMiterLimit(stroke.MiterLimit)

	if len(stroke.DashPattern) == 0 {
		r.ctx.ClearDash()
		return
	}
	dash := make([]float64, len(stroke.DashPattern))
	for i, d := range stroke.DashPattern {
		dash[i] = d * s
	}
	r.ctx.SetDash(dash...)
	r.ctx.SetDashOffset(stroke.DashOffset * s)
}

func brushColor(brush recording.Brush) gg.RGBA {
	if b, ok := brush.(recording.SolidBrush); ok {
		return b.Color
	}
	return gg.Black
}

func convertFillRule(rule recording.FillRule) gg.FillRule {
	if rule == recording.FillRuleEvenOdd {
		return gg.FillRuleEvenOdd
	}
	return gg.FillRuleNonZero
}

func convertLineCap(c recording.LineCap) gg.LineCap {
	switch c {
	case recording.LineCapRound:
		return gg.LineCapRound
	case recording.LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func convertLineJoin(j recording.LineJoin) gg.LineJoin {
	switch j {
	case recording.LineJoinRound:
		return gg.LineJoinRound
	case recording.LineJoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}
