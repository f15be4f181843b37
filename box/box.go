// Package box defines the laid-out box tree that paged paints.
//
// A tree is produced upstream by a layout engine: every Box carries its
// border-box Bounds in document pixels, its computed Styles, its text
// segments, its children and optional replaced Content. The tree is treated
// as immutable input; pagination works on page-local copies made with
// PageCopy.
package box

import "math"

// Bounds is an axis-aligned rectangle in document pixels.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns Left + Width.
func (b Bounds) Right() float64 { return b.Left + b.Width }

// Bottom returns Top + Height.
func (b Bounds) Bottom() float64 { return b.Top + b.Height }

// Translate returns b moved by (dx, dy).
func (b Bounds) Translate(dx, dy float64) Bounds {
	b.Left += dx
	b.Top += dy
	return b
}

// Inset shrinks b by the given side widths, clamping to a zero size.
func (b Bounds) Inset(top, right, bottom, left float64) Bounds {
	return Bounds{
		Left:   b.Left + left,
		Top:    b.Top + top,
		Width:  math.Max(0, b.Width-left-right),
		Height: math.Max(0, b.Height-top-bottom),
	}
}

// Flags mark stacking and list behavior decided upstream.
type Flags uint8

const (
	// CreatesStackingContext marks a plain stacking context (positioned
	// without z-index, or floating).
	CreatesStackingContext Flags = 1 << iota
	// CreatesRealStackingContext marks an independent stacking context.
	CreatesRealStackingContext
	// IsListOwner marks OL/UL/MENU containers.
	IsListOwner
	// DebugRender asks the renderer to log the box while painting.
	DebugRender
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }

// TextSegment is one laid-out fragment of a text run.
type TextSegment struct {
	Text   string `json:"text"`
	Bounds Bounds `json:"bounds"`
}

// TextRun is a text node and its laid-out segments.
type TextRun struct {
	Text     string        `json:"text"`
	Segments []TextSegment `json:"segments"`
}

// Box is one node of the laid-out tree.
type Box struct {
	Tag    string `json:"tag"`
	Bounds Bounds `json:"bounds"`
	Styles Styles `json:"styles"`
	Flags  Flags  `json:"-"`

	// ForeignObjectRendering marks content pre-rendered upstream; background
	// fills and solid borders are suppressed. Inherited by descendants.
	ForeignObjectRendering bool `json:"foreignObjectRendering"`
	// NoSplit keeps the box on a single page. Inherited by descendants.
	NoSplit bool `json:"noSplit"`

	// ListValue is the resolved marker text of a list item.
	ListValue string `json:"listValue"`

	Content  Content   `json:"-"`
	Text     []TextRun `json:"text"`
	Children []*Box    `json:"children"`
}

// New returns a box with default styles.
func New(tag string, bounds Bounds) *Box {
	return &Box{Tag: tag, Bounds: bounds, Styles: DefaultStyles()}
}

// PaddingBox returns the border box minus border widths.
func (b *Box) PaddingBox() Bounds {
	bd := &b.Styles.Border
	return b.Bounds.Inset(bd[Top].Width, bd[Right].Width, bd[Bottom].Width, bd[Left].Width)
}

// ContentBox returns the padding box minus padding.
func (b *Box) ContentBox() Bounds {
	p := &b.Styles.Padding
	return b.PaddingBox().Inset(p[Top], p[Right], p[Bottom], p[Left])
}

// IsListItem reports whether the box generates a list marker.
func (b *Box) IsListItem() bool { return b.Styles.Display == DisplayListItem }

// PageCopy returns a copy of b without its children. Every mutable
// collection (text runs, segments, transform) is freshly allocated so edits
// to the copy never reach b. Content is shared: it is never mutated.
func (b *Box) PageCopy() *Box {
	c := &Box{
		Tag:                    b.Tag,
		Bounds:                 b.Bounds,
		Styles:                 b.Styles,
		Flags:                  b.Flags,
		ForeignObjectRendering: b.ForeignObjectRendering,
		NoSplit:                b.NoSplit,
		ListValue:              b.ListValue,
		Content:                b.Content,
	}
	if b.Styles.Transform != nil {
		t := *b.Styles.Transform
		c.Styles.Transform = &t
	}
	if b.Text != nil {
		c.Text = make([]TextRun, len(b.Text))
		for i, run := range b.Text {
			c.Text[i] = TextRun{Text: run.Text}
			if run.Segments != nil {
				c.Text[i].Segments = append([]TextSegment(nil), run.Segments...)
			}
		}
	}
	return c
}

// Clone deep-copies the whole subtree rooted at b.
func (b *Box) Clone() *Box {
	c := b.PageCopy()
	if b.Children != nil {
		c.Children = make([]*Box, len(b.Children))
		for i, ch := range b.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// Walk calls fn for b and every descendant in document order. Returning
// false from fn skips the node's children.
func (b *Box) Walk(fn func(*Box) bool) {
	if !fn(b) {
		return
	}
	for _, ch := range b.Children {
		ch.Walk(fn)
	}
}

// Inherit pushes ForeignObjectRendering and NoSplit down the tree.
func Inherit(root *Box) {
	for _, ch := range root.Children {
		ch.ForeignObjectRendering = ch.ForeignObjectRendering || root.ForeignObjectRendering
		ch.NoSplit = ch.NoSplit || root.NoSplit
		Inherit(ch)
	}
}

// ShiftY moves every box and text segment of the subtree by dy.
func (b *Box) ShiftY(dy float64) {
	b.Walk(func(n *Box) bool {
		n.Bounds.Top += dy
		for i := range n.Text {
			segs := n.Text[i].Segments
			for j := range segs {
				segs[j].Bounds.Top += dy
			}
		}
		return true
	})
}

// MaxBottom returns the largest bottom edge of any box or text segment.
func (b *Box) MaxBottom() float64 {
	m := math.Inf(-1)
	b.Walk(func(n *Box) bool {
		m = math.Max(m, n.Bounds.Bottom())
		for _, run := range n.Text {
			for _, seg := range run.Segments {
				m = math.Max(m, seg.Bounds.Bottom())
			}
		}
		return true
	})
	return m
}
