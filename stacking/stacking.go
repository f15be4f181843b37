// Package stacking partitions a box tree into stacking contexts and paint
// buckets following the CSS painting order (CSS 2.1 Appendix E,
// css-position-3 §painting-order).
package stacking

import (
	"slices"
	"strconv"

	"github.com/gogpu/paged/box"
)

// Context is a stacking context: its root element and the seven ordered
// buckets of descendants painted after it.
type Context struct {
	Element *ElementPaint

	NegativeZIndex                         []*Context
	ZeroOrAutoZIndexOrTransformedOrOpacity []*Context
	PositiveZIndex                         []*Context
	NonPositionedFloats                    []*Context
	NonPositionedInlineLevel               []*Context
	InlineLevel                            []*ElementPaint
	NonInlineLevel                         []*ElementPaint
}

// Parse builds the stacking tree for root. The root always forms a real
// stacking context. Parse does not modify the tree.
func Parse(root *box.Box) *Context {
	rootPaint := newElementPaint(root, nil)
	ctx := &Context{Element: rootPaint}
	var listItems []*ElementPaint
	parseTree(rootPaint, root, ctx, ctx, &listItems)
	if root.Flags.Has(box.IsListOwner) {
		numberListItems(listItems)
	}
	ctx.sortZ()
	return ctx
}

func parseTree(parent *ElementPaint, root *box.Box, current, real *Context, listItems *[]*ElementPaint) {
	for _, child := range parent.Box.Children {
		paint := newElementPaint(child, parent)
		if child.IsListItem() {
			*listItems = append(*listItems, paint)
		}

		items := listItems
		var owned []*ElementPaint
		if child.Flags.Has(box.IsListOwner) {
			items = &owned
		}

		realCtx := isRealContext(child, root)
		if realCtx || createsContext(child) {
			s := &child.Styles
			parentStack := current
			if realCtx || s.Positioned() {
				parentStack = real
			}
			stack := &Context{Element: paint}
			switch {
			case s.Positioned() || s.Opacity < 1 || s.Transformed():
				switch z := s.ZIndex.Order; {
				case z < 0:
					parentStack.NegativeZIndex = append(parentStack.NegativeZIndex, stack)
				case z > 0:
					parentStack.PositiveZIndex = append(parentStack.PositiveZIndex, stack)
				default:
					parentStack.ZeroOrAutoZIndexOrTransformedOrOpacity = append(parentStack.ZeroOrAutoZIndexOrTransformedOrOpacity, stack)
				}
			case s.Floating():
				parentStack.NonPositionedFloats = append(parentStack.NonPositionedFloats, stack)
			default:
				parentStack.NonPositionedInlineLevel = append(parentStack.NonPositionedInlineLevel, stack)
			}
			nextReal := real
			if realCtx {
				nextReal = stack
			}
			parseTree(paint, root, stack, nextReal, items)
		} else {
			if child.Styles.Display.InlineLevel() {
				current.InlineLevel = append(current.InlineLevel, paint)
			} else {
				current.NonInlineLevel = append(current.NonInlineLevel, paint)
			}
			parseTree(paint, root, current, real, items)
		}

		if child.Flags.Has(box.IsListOwner) {
			numberListItems(owned)
		}
	}
}

// isRealContext reports whether b forms an independent stacking context.
func isRealContext(b, root *box.Box) bool {
	if b.Flags.Has(box.CreatesRealStackingContext) {
		return true
	}
	s := &b.Styles
	if s.Positioned() && !s.ZIndex.IsAuto() {
		return true
	}
	if s.Opacity < 1 || s.Transformed() {
		return true
	}
	return b.Tag == "body" && root.Styles.BackgroundColor.IsTransparent()
}

// createsContext reports whether b forms a plain stacking context.
func createsContext(b *box.Box) bool {
	return b.Flags.Has(box.CreatesStackingContext) || b.Styles.Positioned() || b.Styles.Floating()
}

// numberListItems assigns marker text to items that carry none.
func numberListItems(items []*ElementPaint) {
	n := 1
	for _, it := range items {
		if it.ListValue == "" {
			it.ListValue = counterText(n, it.Box.Styles.ListStyleType)
		}
		n++
	}
}

func counterText(n int, style box.ListStyle) string {
	switch style {
	case box.ListDisc:
		return "• "
	case box.ListCircle:
		return "◦ "
	case box.ListSquare:
		return "▪ "
	case box.ListDecimal:
		return strconv.Itoa(n) + ". "
	}
	return ""
}

// sortZ orders the z-index buckets by z-index, keeping document order for
// equal values.
func (c *Context) sortZ() {
	byZ := func(a, b *Context) int {
		return a.Element.Box.Styles.ZIndex.Order - b.Element.Box.Styles.ZIndex.Order
	}
	slices.SortStableFunc(c.NegativeZIndex, byZ)
	slices.SortStableFunc(c.PositiveZIndex, byZ)
	for _, group := range [][]*Context{
		c.NegativeZIndex,
		c.ZeroOrAutoZIndexOrTransformedOrOpacity,
		c.PositiveZIndex,
		c.NonPositionedFloats,
		c.NonPositionedInlineLevel,
	} {
		for _, child := range group {
			child.sortZ()
		}
	}
}
