package box

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the subtree as an indented tree for debugging.
func Dump(b *Box) string {
	t := treeprint.NewWithRoot(label(b))
	dumpChildren(t, b)
	return t.String()
}

func dumpChildren(t treeprint.Tree, b *Box) {
	for _, run := range b.Text {
		for _, seg := range run.Segments {
			t.AddNode(fmt.Sprintf("%q @(%.1f,%.1f %.1fx%.1f)",
				seg.Text, seg.Bounds.Left, seg.Bounds.Top, seg.Bounds.Width, seg.Bounds.Height))
		}
	}
	for _, ch := range b.Children {
		if len(ch.Children) == 0 && len(ch.Text) == 0 {
			t.AddNode(label(ch))
			continue
		}
		dumpChildren(t.AddBranch(label(ch)), ch)
	}
}

func label(b *Box) string {
	tag := b.Tag
	if tag == "" {
		tag = "box"
	}
	s := fmt.Sprintf("%s @(%.1f,%.1f %.1fx%.1f)", tag, b.Bounds.Left, b.Bounds.Top, b.Bounds.Width, b.Bounds.Height)
	if b.Content != nil {
		s += " [" + b.Content.Kind().String() + "]"
	}
	if b.NoSplit {
		s += " nosplit"
	}
	return s
}
