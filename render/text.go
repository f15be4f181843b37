package render

import (
	"math"

	"github.com/go-text/typesetting/segmenter"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/fonts"
)

// useFont selects the face for s on the page and returns it.
func (r *Renderer) useFont(s *box.Styles) text.Face {
	face, key := r.fonts.Face(fonts.Spec{
		Family: s.FontFamily,
		Weight: s.FontWeight,
		Italic: s.FontStyle != box.FontNormal,
	}, s.FontSize)
	r.fontName, r.fontSize = key.String(), s.FontSize
	r.selectFont()
	return face
}

// lineMetrics centers the face's ascent+descent in a line of height h and
// returns the baseline and the x-height midline, both from the line top.
func lineMetrics(m text.Metrics, h float64) (baseline, middle float64) {
	baseline = (h-(m.Ascent+m.Descent))/2 + m.Ascent
	xh := m.XHeight
	if xh <= 0 {
		xh = m.Ascent / 2
	}
	return baseline, baseline - xh/2
}

func (r *Renderer) renderText(b *box.Box) {
	if len(b.Text) == 0 {
		return
	}
	s := &b.Styles
	face := r.useFont(s)
	if face == nil {
		return
	}
	m := face.Metrics()
	fill := rgba(s.Color)
	deco := fill
	if !s.TextDecorationColor.IsTransparent() {
		deco = rgba(s.TextDecorationColor)
	}

	for _, run := range b.Text {
		for _, seg := range run.Segments {
			bd := seg.Bounds
			baseline, middle := lineMetrics(m, bd.Height)
			r.drawText(face, seg.Text, bd.Left, bd.Top+baseline, s.LetterSpacing, fill)

			if s.TextDecoration&box.Underline != 0 {
				r.page.FillRect(bd.Left, math.Round(bd.Top+baseline), bd.Width, 1, deco)
			}
			if s.TextDecoration&box.Overline != 0 {
				r.page.FillRect(bd.Left, math.Round(bd.Top), bd.Width, 1, deco)
			}
			if s.TextDecoration&box.LineThrough != 0 {
				r.page.FillRect(bd.Left, math.Ceil(bd.Top+middle), bd.Width, 1, deco)
			}
		}
	}
}

// drawText draws s with its baseline at y. Non-zero spacing places every
// grapheme cluster separately.
func (r *Renderer) drawText(face text.Face, s string, x, y, spacing float64, c gg.RGBA) {
	if spacing == 0 {
		r.page.DrawString(s, x, y, c)
		return
	}
	for _, g := range graphemes(s) {
		r.page.DrawString(g, x, y, c)
		x += face.Advance(g) + spacing
	}
}

// textWidth is the advance of s including letter spacing.
func textWidth(face text.Face, s string, spacing float64) float64 {
	if spacing == 0 {
		return face.Advance(s)
	}
	w := 0.0
	for _, g := range graphemes(s) {
		w += face.Advance(g) + spacing
	}
	return w
}

func graphemes(s string) []string {
	var seg segmenter.Segmenter
	seg.InitWithString(s)
	var out []string
	it := seg.GraphemeIterator()
	for it.Next() {
		out = append(out, string(it.Grapheme().Text))
	}
	return out
}
