package box

import (
	"strings"
	"testing"
)

func TestDump(t *testing.T) {
	root := sampleTree()
	root.Children[0].Children[0].NoSplit = true
	root.Children[0].Children = append(root.Children[0].Children,
		&Box{Tag: "img", Bounds: Bounds{0, 100, 10, 10}, Content: &Image{URL: "x.png"}})

	out := Dump(root)
	for _, want := range []string{
		"html @(0.0,0.0 800.0x600.0)",
		"p @(10.0,20.0 300.0x40.0) nosplit",
		`"hello" @(10.0,20.0 50.0x20.0)`,
		"img @(0.0,100.0 10.0x10.0) [image]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q in:\n%s", want, out)
		}
	}
}
