// Package render paints laid-out box trees onto recorded vector pages.
//
// A Renderer owns a surface.Document for the duration of one render. Each
// page tree is partitioned into stacking contexts and painted in CSS
// painting order: backgrounds, borders, text, replaced content and list
// markers, with opacity, transform and overflow clip applied through an
// effect stack. Coordinates are CSS pixels; the page itself is in points,
// and a base scale of 0.75 maps one onto the other.
//
// Typical use:
//
//	r, err := render.New(render.Options{Width: 794, Height: 1123})
//	if err != nil {
//		return err
//	}
//	r.SetTotalPages(len(pages))
//	for i, page := range pages {
//		if i > 0 {
//			r.AddPage(0)
//		}
//		if err := r.RenderPage(ctx, page, i+1); err != nil {
//			return err
//		}
//	}
//	return r.Output(w)
package render
