package stacking

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/effect"
)

// ElementPaint is a box scheduled for painting together with the effects
// it contributes to itself and its descendants.
type ElementPaint struct {
	Box    *box.Box
	Parent *ElementPaint
	// ListValue is the marker text of a list item, empty otherwise.
	ListValue string

	effects []effect.Effect
}

func newElementPaint(b *box.Box, parent *ElementPaint) *ElementPaint {
	p := &ElementPaint{Box: b, Parent: parent, ListValue: b.ListValue}
	s := &b.Styles

	if s.Opacity < 1 {
		p.effects = append(p.effects, effect.Opacity{Value: s.Opacity})
	}
	if s.Transform != nil {
		p.effects = append(p.effects, effect.Transform{
			Matrix:  s.Transform.Matrix,
			OffsetX: b.Bounds.Left + s.Transform.OriginX,
			OffsetY: b.Bounds.Top + s.Transform.OriginY,
		})
	}
	if s.Overflow != box.OverflowVisible {
		border, padding := b.Bounds, b.PaddingBox()
		if border == padding {
			p.effects = append(p.effects, effect.Clip{Path: rectPath(border), Phase: effect.All})
		} else {
			p.effects = append(p.effects,
				effect.Clip{Path: rectPath(border), Phase: effect.BackgroundBorders},
				effect.Clip{Path: rectPath(padding), Phase: effect.Content},
			)
		}
	}
	return p
}

// OwnEffects returns the effects created by the element itself.
func (p *ElementPaint) OwnEffects() []effect.Effect { return p.effects }

// Effects returns the effects to apply before painting target phases of
// the element: the non-clip effects of every ancestor, the padding-box clip
// of every ancestor the element is laid out inside, then its own effects.
func (p *ElementPaint) Effects(target effect.Target) []effect.Effect {
	inFlow := !outOfFlow(p.Box)
	var chain [][]effect.Effect
	chain = append(chain, p.effects)

	for parent := p.Parent; parent != nil; parent = parent.Parent {
		var prefix []effect.Effect
		ps := &parent.Box.Styles
		if inFlow || ps.Position != box.PositionStatic || parent.Parent == nil {
			inFlow = !outOfFlow(parent.Box)
			if ps.Overflow != box.OverflowVisible {
				prefix = append(prefix, effect.Clip{Path: rectPath(parent.Box.PaddingBox()), Phase: effect.All})
			}
		}
		for _, e := range parent.effects {
			if _, clip := e.(effect.Clip); !clip {
				prefix = append(prefix, e)
			}
		}
		chain = append(chain, prefix)
	}

	var all []effect.Effect
	for i := len(chain) - 1; i >= 0; i-- {
		all = append(all, chain[i]...)
	}
	return effect.Filter(all, target)
}

func outOfFlow(b *box.Box) bool {
	return b.Styles.Position == box.PositionAbsolute || b.Styles.Position == box.PositionFixed
}

func rectPath(b box.Bounds) *gg.Path {
	return effect.RectPath(b.Left, b.Top, b.Width, b.Height)
}
