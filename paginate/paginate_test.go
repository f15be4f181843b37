package paginate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/paged/box"
)

const (
	a4Height = 1123.0
	band     = 50.0
)

func tree(height float64, children ...*box.Box) *box.Box {
	root := box.New("html", box.Bounds{Left: 0, Top: 0, Width: 794, Height: height})
	root.Children = children
	return root
}

func block(top, height float64, noSplit bool) *box.Box {
	b := box.New("div", box.Bounds{Left: 10, Top: top, Width: 200, Height: height})
	b.NoSplit = noSplit
	return b
}

func TestPaginate_KeepTogether(t *testing.T) {
	root := tree(1200, block(1000, 200, true))
	s := NewSession()
	pages, err := s.Paginate(root, a4Height, 0, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("Paginate() pages = %d, want 2", len(pages))
	}
	if n := len(pages[0].Children); n != 0 {
		t.Errorf("page 0 children = %d, want 0 (box deferred)", n)
	}
	if off, ok := s.Offset(0); !ok || off != 23 {
		t.Errorf("Offset(0) = %v, %v, want 23, true", off, ok)
	}
	if len(pages[1].Children) != 1 {
		t.Fatalf("page 1 children = %d, want 1", len(pages[1].Children))
	}
	want := box.Bounds{Left: 10, Top: band, Width: 200, Height: 200}
	if got := pages[1].Children[0].Bounds; got != want {
		t.Errorf("page 1 box bounds = %+v, want %+v", got, want)
	}
}

func TestPaginate_Windows(t *testing.T) {
	tests := []struct {
		name  string
		child *box.Box
		want  []box.Bounds // per page, zero Width means absent
	}{
		{
			name:  "inside first window",
			child: block(100, 50, false),
			want:  []box.Bounds{{Left: 10, Top: 150, Width: 200, Height: 50}, {}},
		},
		{
			name:  "split across pages",
			child: block(1000, 200, false),
			want: []box.Bounds{
				{Left: 10, Top: 1050, Width: 200, Height: 23},
				{Left: 10, Top: 50, Width: 200, Height: 177},
			},
		},
		{
			name:  "second window only",
			child: block(1100, 50, false),
			want:  []box.Bounds{{}, {Left: 10, Top: 127, Width: 200, Height: 50}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := Paginate(tree(1200, tt.child), a4Height, 0, band, band)
			if err != nil {
				t.Fatalf("Paginate() error = %v", err)
			}
			if len(pages) != len(tt.want) {
				t.Fatalf("Paginate() pages = %d, want %d", len(pages), len(tt.want))
			}
			for i, want := range tt.want {
				kids := pages[i].Children
				if want.Width == 0 {
					if len(kids) != 0 {
						t.Errorf("page %d children = %d, want 0", i, len(kids))
					}
					continue
				}
				if len(kids) != 1 {
					t.Fatalf("page %d children = %d, want 1", i, len(kids))
				}
				if got := kids[0].Bounds; got != want {
					t.Errorf("page %d bounds = %+v, want %+v", i, got, want)
				}
			}
		})
	}
}

func TestPaginate_ReconstructsExtent(t *testing.T) {
	pages, err := Paginate(tree(2500), a4Height, 0, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("Paginate() pages = %d, want 3", len(pages))
	}
	var sum float64
	for _, p := range pages {
		if p.Bounds.Top != band {
			t.Errorf("page root top = %v, want %v", p.Bounds.Top, band)
		}
		sum += p.Bounds.Height
	}
	if sum != 2500 {
		t.Errorf("sum of page heights = %v, want 2500", sum)
	}
}

func TestPaginate_TextSegments(t *testing.T) {
	p := block(900, 300, false)
	p.Text = []box.TextRun{{Text: "ab", Segments: []box.TextSegment{
		{Text: "a", Bounds: box.Bounds{Left: 10, Top: 990, Width: 8, Height: 20}},
		{Text: "b", Bounds: box.Bounds{Left: 10, Top: 1015, Width: 8, Height: 20}},
	}}}
	s := NewSession()
	pages, err := s.Paginate(tree(1200, p), a4Height, 0, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}

	first := pages[0].Children[0].Text
	if len(first) != 1 || len(first[0].Segments) != 1 || first[0].Segments[0].Text != "a" {
		t.Fatalf("page 0 text = %+v, want only segment a", first)
	}
	if got := first[0].Segments[0].Bounds.Top; got != 1040 {
		t.Errorf("segment a top = %v, want 1040", got)
	}

	second := pages[1].Children[0].Text
	if len(second) != 1 || len(second[0].Segments) != 1 || second[0].Segments[0].Text != "b" {
		t.Fatalf("page 1 text = %+v, want only segment b", second)
	}
	seg := second[0].Segments[0]
	if seg.Bounds.Top != band || seg.Bounds.Height != 20 {
		t.Errorf("segment b bounds = %+v, want top %v height 20", seg.Bounds, band)
	}
	if off, ok := s.Offset(1); !ok || off != 8 {
		t.Errorf("Offset(1) = %v, %v, want 8, true", off, ok)
	}
}

func TestPaginate_CarriedTextExtendsPages(t *testing.T) {
	p := block(1000, 1046, false)
	p.Text = []box.TextRun{{Text: "ab", Segments: []box.TextSegment{
		{Text: "a", Bounds: box.Bounds{Left: 10, Top: 1015, Width: 8, Height: 20}},
		{Text: "b", Bounds: box.Bounds{Left: 10, Top: 2030, Width: 8, Height: 16}},
	}}}
	pages, err := Paginate(tree(2046, p), a4Height, 0, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}

	seen := map[string][]int{}
	for i, page := range pages {
		page.Walk(func(n *box.Box) bool {
			for _, run := range n.Text {
				for _, seg := range run.Segments {
					seen[seg.Text] = append(seen[seg.Text], i)
				}
			}
			return true
		})
	}
	// Carrying "a" onto page 1 shifts "b" past 2046, onto a third page.
	want := map[string][]int{"a": {1}, "b": {2}}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("segment pages mismatch (-want +got):\n%s", diff)
	}
}

func TestPaginate_GapRecordIsMonotonic(t *testing.T) {
	s := NewSession()
	root := tree(1200, block(1000, 100, true), block(990, 100, true))
	if _, err := s.Paginate(root, a4Height, 0, band, band); err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if got := s.Total(); got != 23 {
		t.Errorf("Total() = %v, want 23", got)
	}
	if off, _ := s.Offset(0); off != 23 {
		t.Errorf("Offset(0) = %v, want 23", off)
	}
}

func TestPaginate_ExtraPageForDeferredTail(t *testing.T) {
	root := tree(2000, block(1000, 100, true), block(1990, 56, true))
	pages, err := Paginate(root, a4Height, 0, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("Paginate() pages = %d, want 3", len(pages))
	}
	last := pages[2].Children
	if len(last) != 1 {
		t.Fatalf("page 2 children = %d, want 1", len(last))
	}
	want := box.Bounds{Left: 10, Top: band, Width: 200, Height: 56}
	if got := last[0].Bounds; got != want {
		t.Errorf("page 2 box = %+v, want %+v", got, want)
	}
}

func TestPaginate_OversizedNoSplitIsSliced(t *testing.T) {
	pages, err := Paginate(tree(3000, block(500, 2000, true)), a4Height, 0, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("Paginate() pages = %d, want 3", len(pages))
	}
	for i, p := range pages {
		if len(p.Children) != 1 {
			t.Errorf("page %d children = %d, want 1", i, len(p.Children))
		}
	}
}

func TestPaginate_InitialOffset(t *testing.T) {
	root := tree(1200, block(1000, 200, true))
	neg, err := Paginate(root, a4Height, -40, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	zero, _ := Paginate(root, a4Height, 0, band, band)
	if diff := cmp.Diff(zero, neg); diff != "" {
		t.Errorf("negative initial offset not clamped (-zero +neg):\n%s", diff)
	}

	shifted, err := Paginate(root, a4Height, 100, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if len(shifted) != 2 {
		t.Fatalf("pages = %d, want 2", len(shifted))
	}
	// Window 0 spans [100, 1123): the box straddles and moves to page 1.
	if len(shifted[0].Children) != 0 {
		t.Errorf("page 0 children = %d, want 0", len(shifted[0].Children))
	}
}

func TestPaginate_DoesNotMutateInput(t *testing.T) {
	root := tree(2500, block(1000, 200, true), block(10, 30, false))
	root.Children[1].Text = []box.TextRun{{Text: "x", Segments: []box.TextSegment{{Text: "x", Bounds: box.Bounds{Left: 10, Top: 12, Width: 5, Height: 10}}}}}
	before := root.Clone()

	s := NewSession()
	first, err := s.Paginate(root, a4Height, 0, band, band)
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if diff := cmp.Diff(before, root); diff != "" {
		t.Errorf("Paginate() mutated its input (-before +after):\n%s", diff)
	}

	second, _ := s.Paginate(root, a4Height, 0, band, band)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("session reuse changed the result (-first +second):\n%s", diff)
	}
}

func TestPaginate_PageTooSmall(t *testing.T) {
	_, err := Paginate(tree(100), 90, 0, 50, 50)
	if !errors.Is(err, ErrPageTooSmall) {
		t.Errorf("Paginate() error = %v, want ErrPageTooSmall", err)
	}
}
