// Package effect models the per-element rendering effects (opacity,
// transform and overflow clip) and the stack that applies them to a drawing
// surface.
package effect

import "github.com/gogpu/gg"

// Target selects which paint phase an effect applies to.
type Target uint8

const (
	// BackgroundBorders targets the background and border phase.
	BackgroundBorders Target = 1 << 1
	// Content targets text, replaced content and list markers.
	Content Target = 1 << 2
	// All targets both phases.
	All = BackgroundBorders | Content
)

// Effect is one of Opacity, Transform or Clip.
type Effect interface {
	Target() Target
}

// Opacity multiplies the surface alpha by Value.
type Opacity struct {
	Value float64
}

// Transform applies a CSS matrix(a, b, c, d, e, f) pivoted at (OffsetX, OffsetY).
type Transform struct {
	Matrix  [6]float64
	OffsetX float64
	OffsetY float64
}

// Clip intersects the clip region with Path for the phases in Phase.
type Clip struct {
	Path  *gg.Path
	Phase Target
}

func (Opacity) Target() Target   { return All }
func (Transform) Target() Target { return All }
func (c Clip) Target() Target    { return c.Phase }

// GG converts the CSS matrix to gg's row-major layout.
func (t Transform) GG() gg.Matrix {
	m := t.Matrix
	return gg.Matrix{A: m[0], B: m[2], C: m[4], D: m[1], E: m[3], F: m[5]}
}

// Pivoted returns translate(offset) · matrix · translate(−offset).
func (t Transform) Pivoted() gg.Matrix {
	return gg.Translate(t.OffsetX, t.OffsetY).
		Multiply(t.GG()).
		Multiply(gg.Translate(-t.OffsetX, -t.OffsetY))
}

// RectPath returns a closed rectangle path.
func RectPath(x, y, w, h float64) *gg.Path {
	p := gg.NewPath()
	p.Rectangle(x, y, w, h)
	return p
}

// Filter returns the effects whose target intersects t, preserving order.
func Filter(effects []Effect, t Target) []Effect {
	out := make([]Effect, 0, len(effects))
	for _, e := range effects {
		if e.Target()&t != 0 {
			out = append(out, e)
		}
	}
	return out
}
