package render

import (
	"context"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/effect"
	"github.com/gogpu/paged/stacking"
)

// renderStack paints a stacking context in CSS painting order.
func (r *Renderer) renderStack(ctx context.Context, st *stacking.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el := st.Element
	if !el.Box.Styles.IsVisible() {
		return nil
	}

	r.renderBackgroundBorders(el)
	if err := r.renderStacks(ctx, st.NegativeZIndex); err != nil {
		return err
	}
	r.renderContent(ctx, el)
	for _, p := range st.NonInlineLevel {
		r.renderElement(ctx, p)
	}
	if err := r.renderStacks(ctx, st.NonPositionedFloats); err != nil {
		return err
	}
	if err := r.renderStacks(ctx, st.NonPositionedInlineLevel); err != nil {
		return err
	}
	for _, p := range st.InlineLevel {
		r.renderElement(ctx, p)
	}
	if err := r.renderStacks(ctx, st.ZeroOrAutoZIndexOrTransformedOrOpacity); err != nil {
		return err
	}
	return r.renderStacks(ctx, st.PositiveZIndex)
}

func (r *Renderer) renderStacks(ctx context.Context, list []*stacking.Context) error {
	for _, c := range list {
		if err := r.renderStack(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderElement(ctx context.Context, p *stacking.ElementPaint) {
	if !p.Box.Styles.IsVisible() {
		return
	}
	r.renderBackgroundBorders(p)
	r.renderContent(ctx, p)
}

func (r *Renderer) renderBackgroundBorders(p *stacking.ElementPaint) {
	b := p.Box
	if b.Flags.Has(box.DebugRender) {
		r.log.Debug("render: box", "tag", b.Tag, "bounds", b.Bounds, "z", b.Styles.ZIndex.Order)
	}
	r.effects.Apply(p.Effects(effect.BackgroundBorders))
	r.renderBackground(b)
	r.renderBorders(b)
}

// renderContent paints an element's own text, replaced content and list
// marker. Descendants are painted by their own entries.
func (r *Renderer) renderContent(ctx context.Context, p *stacking.ElementPaint) {
	b := p.Box
	r.effects.Apply(p.Effects(effect.Content))
	r.renderText(b)
	if b.Content != nil {
		r.renderReplaced(ctx, b)
	}
	if b.IsListItem() {
		r.renderListMarker(ctx, b, p.ListValue)
	}
}
