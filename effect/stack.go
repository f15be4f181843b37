package effect

import "github.com/gogpu/gg"

// Surface is the drawing state an effect stack manipulates.
type Surface interface {
	Save()
	Restore()
	MultiplyAlpha(a float64)
	Transform(m gg.Matrix)
	ClipPath(p *gg.Path)
}

// Stack tracks the effects currently applied to a surface. Every applied
// effect owns exactly one Save on the surface.
type Stack struct {
	surface Surface
	active  []Effect
	onPop   func()
}

// NewStack binds a stack to s. onPop, when non-nil, runs after every
// restore; the renderer uses it to reselect the document font.
func NewStack(s Surface, onPop func()) *Stack {
	return &Stack{surface: s, onPop: onPop}
}

// Apply pops every active effect and then applies effects in order.
func (st *Stack) Apply(effects []Effect) {
	for len(st.active) > 0 {
		st.Pop()
	}
	for _, e := range effects {
		st.Push(e)
	}
}

// Push saves the surface state and applies e.
func (st *Stack) Push(e Effect) {
	st.surface.Save()
	switch v := e.(type) {
	case Opacity:
		st.surface.MultiplyAlpha(v.Value)
	case Transform:
		st.surface.Transform(v.Pivoted())
	case Clip:
		st.surface.ClipPath(v.Path)
	}
	st.active = append(st.active, e)
}

// Pop restores the most recent effect. Popping an empty stack is a no-op.
func (st *Stack) Pop() {
	if len(st.active) == 0 {
		return
	}
	st.active = st.active[:len(st.active)-1]
	st.surface.Restore()
	if st.onPop != nil {
		st.onPop()
	}
}

// Len returns the number of active effects.
func (st *Stack) Len() int { return len(st.active) }
