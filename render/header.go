package render

import (
	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/fonts"
)

func (r *Renderer) renderHeaderFooter(pageNumber int) {
	pc := &r.opts.PageConfig
	r.renderBand(pc.Header, 0, pageNumber)
	r.renderBand(pc.Footer, r.opts.Height-pc.Footer.Height, pageNumber)
}

// renderBand draws one header or footer whose band starts top pixels below
// the page top.
func (r *Renderer) renderBand(hf HeaderFooter, top float64, pageNumber int) {
	content := Expand(hf.Content, pageNumber, r.totalPages)
	if content == "" || hf.Height <= 0 || hf.FontSize <= 0 {
		return
	}
	face := r.useFont(&box.Styles{FontFamily: fonts.DefaultFamily, FontSize: hf.FontSize, FontWeight: 400})
	if face == nil {
		return
	}
	m := face.Metrics()

	outer := box.Bounds{Left: r.originX, Top: r.originY + top, Width: r.opts.Width, Height: hf.Height}
	p := hf.Padding
	band := outer.Inset(p[0], p[1], p[2], p[3])
	x, y := placeText(hf.Position, band, face.Advance(content), m.Ascent+m.Descent)

	r.page.Save()
	r.page.ClipRect(outer.Left, outer.Top, outer.Width, outer.Height)
	r.page.DrawString(content, x, y+m.Ascent, rgba(hf.Color))
	r.page.Restore()
}

// placeText returns the top-left corner of a w×h text box placed in band.
// Explicit positions are relative to the band's top-left corner.
func placeText(pos Position, band box.Bounds, w, h float64) (x, y float64) {
	if pos.Explicit {
		return band.Left + pos.X, band.Top + pos.Y
	}
	col, row := int(pos.Anchor)%3, int(pos.Anchor)/3
	x = band.Left + float64(col)*(band.Width-w)/2
	y = band.Top + float64(row)*(band.Height-h)/2
	return x, y
}
