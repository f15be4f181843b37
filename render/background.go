package render

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/surface"
)

// renderBackground fills the border box. Content rendered upstream as a
// foreign object already carries its background.
func (r *Renderer) renderBackground(b *box.Box) {
	bg := b.Styles.BackgroundColor
	if b.ForeignObjectRendering || bg.IsTransparent() {
		return
	}
	bd := b.Bounds
	r.page.FillRect(bd.Left, bd.Top, bd.Width, bd.Height, rgba(bg))
}

func (r *Renderer) renderBorders(b *box.Box) {
	for side := box.Top; side <= box.Left; side++ {
		bs := b.Styles.Border[side]
		if !bs.Visible() {
			continue
		}
		switch bs.Style {
		case box.BorderSolid:
			r.solidBorder(b, side)
		case box.BorderDouble:
			if bs.Width < 3 {
				r.solidBorder(b, side)
				continue
			}
			r.doubleBorder(b, side)
		case box.BorderDashed, box.BorderDotted:
			r.dashedBorder(b, side)
		}
	}
}

func (r *Renderer) solidBorder(b *box.Box, side box.Side) {
	if b.ForeignObjectRendering {
		return
	}
	r.page.FillPath(sidePath(b.Bounds, b.PaddingBox(), side), rgba(b.Styles.Border[side].Color))
}

// doubleBorder fills the outer and inner thirds of a side.
func (r *Renderer) doubleBorder(b *box.Box, side box.Side) {
	c := rgba(b.Styles.Border[side].Color)
	outer, inner := b.Bounds, b.PaddingBox()
	r.page.FillPath(sidePath(outer, insetBorder(b, 1.0/3), side), c)
	r.page.FillPath(sidePath(insetBorder(b, 2.0/3), inner, side), c)
}

// dashedBorder strokes the side's center line, clipped to the side band.
func (r *Renderer) dashedBorder(b *box.Box, side box.Side) {
	bs := b.Styles.Border[side]
	dotted := bs.Style == box.BorderDotted
	bd := b.Bounds
	w := bs.Width

	var x0, y0, x1, y1, length float64
	switch side {
	case box.Top:
		x0, y0, x1, y1, length = bd.Left, bd.Top+w/2, bd.Right(), bd.Top+w/2, bd.Width
	case box.Right:
		x0, y0, x1, y1, length = bd.Right()-w/2, bd.Top, bd.Right()-w/2, bd.Bottom(), bd.Height
	case box.Bottom:
		x0, y0, x1, y1, length = bd.Right(), bd.Bottom()-w/2, bd.Left, bd.Bottom()-w/2, bd.Width
	case box.Left:
		x0, y0, x1, y1, length = bd.Left+w/2, bd.Bottom(), bd.Left+w/2, bd.Top, bd.Height
	}

	line := gg.NewPath()
	line.MoveTo(x0, y0)
	line.LineTo(x1, y1)

	stroke := surface.Stroke{Width: w}
	if dash, space, ok := dashPattern(length, w, dotted); ok {
		if dotted {
			stroke.Dash = []float64{0, dash + space}
		} else {
			stroke.Dash = []float64{dash, space}
		}
	}
	stroke.Round = dotted

	r.page.Save()
	if !dotted {
		r.page.ClipPath(sidePath(bd, b.PaddingBox(), side))
	}
	r.page.StrokePath(line, rgba(bs.Color), stroke)
	r.page.Restore()
}

// dashPattern sizes dashes and gaps so a side of length l starts and ends
// with a dash. ok is false when the side is too short to dash at all.
func dashPattern(l, w float64, dotted bool) (dash, space float64, ok bool) {
	switch {
	case dotted:
		dash, space = w, w
	case w < 3:
		dash, space = 3*w, 2*w
	default:
		dash, space = 2*w, w
	}
	if l <= 2*dash {
		return 0, 0, false
	}
	if l <= 2*dash+space {
		m := l / (2*dash + space)
		return dash * m, space * m, true
	}
	n := math.Floor((l + space) / (dash + space))
	minSpace := (l - n*dash) / (n - 1)
	maxSpace := (l - (n+1)*dash) / n
	if maxSpace <= 0 || math.Abs(space-minSpace) < math.Abs(space-maxSpace) {
		return dash, minSpace, true
	}
	return dash, maxSpace, true
}

// sidePath is the quadrilateral joining one side of outer to the same side
// of inner, so adjacent sides meet on the corner diagonals.
func sidePath(outer, inner box.Bounds, side box.Side) *gg.Path {
	p := gg.NewPath()
	switch side {
	case box.Top:
		p.MoveTo(outer.Left, outer.Top)
		p.LineTo(outer.Right(), outer.Top)
		p.LineTo(inner.Right(), inner.Top)
		p.LineTo(inner.Left, inner.Top)
	case box.Right:
		p.MoveTo(outer.Right(), outer.Top)
		p.LineTo(outer.Right(), outer.Bottom())
		p.LineTo(inner.Right(), inner.Bottom())
		p.LineTo(inner.Right(), inner.Top)
	case box.Bottom:
		p.MoveTo(outer.Right(), outer.Bottom())
		p.LineTo(outer.Left, outer.Bottom())
		p.LineTo(inner.Left, inner.Bottom())
		p.LineTo(inner.Right(), inner.Bottom())
	case box.Left:
		p.MoveTo(outer.Left, outer.Bottom())
		p.LineTo(outer.Left, outer.Top)
		p.LineTo(inner.Left, inner.Top)
		p.LineTo(inner.Left, inner.Bottom())
	}
	p.Close()
	return p
}

// insetBorder shrinks the border box by frac of every border width.
func insetBorder(b *box.Box, frac float64) box.Bounds {
	bd := &b.Styles.Border
	return b.Bounds.Inset(bd[box.Top].Width*frac, bd[box.Right].Width*frac,
		bd[box.Bottom].Width*frac, bd[box.Left].Width*frac)
}
