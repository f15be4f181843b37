package stacking

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the stacking tree with its non-empty buckets.
func Dump(c *Context) string {
	t := treeprint.NewWithRoot(name(c.Element))
	dumpContext(t, c)
	return t.String()
}

func dumpContext(t treeprint.Tree, c *Context) {
	contexts := func(label string, list []*Context) {
		if len(list) == 0 {
			return
		}
		br := t.AddBranch(label)
		for _, child := range list {
			dumpContext(br.AddBranch(name(child.Element)), child)
		}
	}
	paints := func(label string, list []*ElementPaint) {
		if len(list) == 0 {
			return
		}
		br := t.AddBranch(label)
		for _, p := range list {
			br.AddNode(name(p))
		}
	}
	contexts("negative", c.NegativeZIndex)
	paints("block", c.NonInlineLevel)
	contexts("floats", c.NonPositionedFloats)
	contexts("inline contexts", c.NonPositionedInlineLevel)
	paints("inline", c.InlineLevel)
	contexts("zero/auto", c.ZeroOrAutoZIndexOrTransformedOrOpacity)
	contexts("positive", c.PositiveZIndex)
}

func name(p *ElementPaint) string {
	tag := p.Box.Tag
	if tag == "" {
		tag = "box"
	}
	s := &p.Box.Styles
	if !s.ZIndex.IsAuto() {
		return fmt.Sprintf("%s z=%d", tag, s.ZIndex.Order)
	}
	return tag
}
