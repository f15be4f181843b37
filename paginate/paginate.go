// Package paginate slices a measured box tree into page-height windows.
//
// Every page is an independent clone of the retained part of the tree with
// coordinates rebased to the page (below the header band). Boxes marked
// NoSplit that straddle a page end are deferred to the next page; the gap
// they leave is accumulated and shifts all following content down.
package paginate

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/internal/logging"
)

// ErrPageTooSmall is returned when header and footer leave no room for content.
var ErrPageTooSmall = errors.New("paginate: header and footer exceed page height")

// Session holds the offset bookkeeping of one pagination pass. A Session is
// not safe for concurrent use; create one per call.
type Session struct {
	offsets map[int]float64
	total   float64
	maxKey  int

	header    float64
	effective float64
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{offsets: make(map[int]float64), maxKey: -1}
}

// Paginate slices root with a fresh Session.
func Paginate(root *box.Box, pageHeight, initialOffset, header, footer float64) ([]*box.Box, error) {
	return NewSession().Paginate(root, pageHeight, initialOffset, header, footer)
}

// Paginate resets the session and slices root into pages of pageHeight
// pixels, reserving header and footer bands. Content is read from
// initialOffset (clamped to zero) downwards. root is not modified.
func (s *Session) Paginate(root *box.Box, pageHeight, initialOffset, header, footer float64) ([]*box.Box, error) {
	s.reset()
	initialOffset = math.Max(0, initialOffset)
	s.header = header
	s.effective = pageHeight - header - footer
	if s.effective <= 0 {
		return nil, fmt.Errorf("%w: page %.1f, header %.1f, footer %.1f", ErrPageTooSmall, pageHeight, header, footer)
	}

	maxBottom := root.MaxBottom()
	count := max(1, int(math.Ceil((maxBottom-initialOffset)/s.effective)))
	log := logging.Logger()

	var pages []*box.Box
	for i := 0; ; i++ {
		start := initialOffset + float64(i)*s.effective
		// Deferred boxes and carried text segments push content down, so
		// slicing continues until the shifted extent is covered.
		if i >= count && start >= maxBottom+s.total {
			break
		}
		w := window{index: i, start: start, end: start + s.effective}
		if page := s.filterBox(root, w); page != nil {
			pages = append(pages, page)
		}
		log.Debug("paginate: page sliced", "page", i, "start", w.start, "end", w.end, "offset", s.total)
	}
	return pages, nil
}

// Offset returns the accumulated offset recorded for page index i.
func (s *Session) Offset(i int) (float64, bool) {
	v, ok := s.offsets[i]
	return v, ok
}

// Total returns the sum of all deferred gaps.
func (s *Session) Total() float64 { return s.total }

type window struct {
	index      int
	start, end float64
}

func (s *Session) reset() {
	clear(s.offsets)
	s.total = 0
	s.maxKey = -1
}

// active returns the offset recorded under the largest page key so far.
func (s *Session) active() float64 {
	if s.maxKey < 0 {
		return 0
	}
	return s.offsets[s.maxKey]
}

// record keeps the largest gap seen for a page and grows the running total
// by the difference.
func (s *Session) record(page int, gap float64) {
	prev, ok := s.offsets[page]
	if ok && prev >= gap {
		return
	}
	s.total += gap - prev
	s.offsets[page] = s.total
	s.maxKey = max(s.maxKey, page)
}

func (s *Session) filterBox(b *box.Box, w window) *box.Box {
	shift := s.active()
	top := b.Bounds.Top + shift
	bottom := b.Bounds.Bottom() + shift

	// A NoSplit box taller than a page can never fit whole; it is sliced
	// like any other box instead of being deferred forever.
	if b.NoSplit && bottom > w.end && top < w.end && b.Bounds.Height <= s.effective {
		s.record(w.index, w.end-top)
		return nil
	}

	var children []*box.Box
	for _, ch := range b.Children {
		if part := s.filterBox(ch, w); part != nil {
			children = append(children, part)
		}
	}
	text := s.filterText(b, w)

	visibleTop := math.Max(top, w.start)
	visibleBottom := math.Min(bottom, w.end)
	height := math.Max(0, visibleBottom-visibleTop)
	if len(children) == 0 && len(text) == 0 && height <= 0 {
		return nil
	}

	c := b.PageCopy()
	c.Children = children
	c.Text = text
	c.Bounds = box.Bounds{
		Left:   b.Bounds.Left,
		Top:    visibleTop - w.start + s.header,
		Width:  b.Bounds.Width,
		Height: height,
	}
	return c
}

func (s *Session) filterText(b *box.Box, w window) []box.TextRun {
	var runs []box.TextRun
	for _, run := range b.Text {
		var kept []box.TextSegment
		for _, seg := range run.Segments {
			shift := s.active()
			top := seg.Bounds.Top + shift
			bottom := seg.Bounds.Bottom() + shift
			if bottom <= w.start || top >= w.end || bottom > w.end {
				continue
			}
			if top < w.start {
				s.record(w.index, w.start-top)
			}
			seg.Bounds.Top = math.Max(top, w.start) - w.start + s.header
			kept = append(kept, seg)
		}
		if len(kept) > 0 {
			runs = append(runs, box.TextRun{Text: run.Text, Segments: kept})
		}
	}
	return runs
}
