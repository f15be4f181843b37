package render

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/gogpu/paged/box"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Anchor names one of the nine placement points of a header or footer band.
type Anchor uint8

const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	CenterLeft
	Center
	CenterRight
	BottomLeft
	BottomCenter
	BottomRight
)

var anchorNames = []string{
	"topLeft", "topCenter", "topRight",
	"centerLeft", "center", "centerRight",
	"bottomLeft", "bottomCenter", "bottomRight",
}

func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return "Anchor(" + strconv.Itoa(int(a)) + ")"
}

// Position places header or footer text: a named anchor, or an explicit
// point relative to the band's top-left corner.
type Position struct {
	Anchor   Anchor
	X, Y     float64
	Explicit bool
}

// At returns an explicit position.
func At(x, y float64) Position { return Position{X: x, Y: y, Explicit: true} }

// ParsePosition accepts an anchor name (case-insensitive) or "x,y".
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	for i, n := range anchorNames {
		if strings.EqualFold(s, n) {
			return Position{Anchor: Anchor(i)}, nil
		}
	}
	xs, ys, ok := strings.Cut(strings.Trim(s, "[]"), ",")
	if ok {
		x, err1 := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err1 == nil && err2 == nil {
			return At(x, y), nil
		}
	}
	return Position{}, fmt.Errorf("render: invalid content position %q", s)
}

func (p Position) String() string {
	if p.Explicit {
		return strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
	}
	return p.Anchor.String()
}

// MarshalJSON writes an anchor name or an [x, y] pair.
func (p Position) MarshalJSON() ([]byte, error) {
	if p.Explicit {
		return json.Marshal([2]float64{p.X, p.Y})
	}
	return json.Marshal(p.Anchor.String())
}

// UnmarshalJSON reads an anchor name or an [x, y] pair.
func (p *Position) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err == nil {
		*p = At(xy[0], xy[1])
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("render: content position must be a string or [x,y]: %w", err)
	}
	v, err := ParsePosition(name)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// HeaderFooter configures a running header or footer band.
type HeaderFooter struct {
	// Content may contain ${currentPage} and ${totalPages}.
	Content  string     `json:"content"`
	Height   float64    `json:"height"`
	Position Position   `json:"contentPosition"`
	Color    box.Color  `json:"contentColor"`
	FontSize float64    `json:"contentFontSize"`
	Padding  [4]float64 `json:"padding"`
}

// PageConfig holds the header and footer of every page.
type PageConfig struct {
	Header HeaderFooter `json:"header"`
	Footer HeaderFooter `json:"footer"`
}

// DefaultPageConfig returns an empty 50px header and a 50px footer showing
// "current/total" in the center.
func DefaultPageConfig() PageConfig {
	grey := box.RGBA(0x33, 0x33, 0x33, 0xff)
	return PageConfig{
		Header: HeaderFooter{
			Height:   50,
			Position: Position{Anchor: CenterRight},
			Color:    grey,
			FontSize: 16,
			Padding:  [4]float64{0, 24, 0, 24},
		},
		Footer: HeaderFooter{
			Content:  "${currentPage}/${totalPages}",
			Height:   50,
			Position: Position{Anchor: Center},
			Color:    grey,
			FontSize: 16,
			Padding:  [4]float64{0, 24, 0, 24},
		},
	}
}

// Expand substitutes the page tokens in content.
func Expand(content string, page, total int) string {
	return strings.NewReplacer(
		"${currentPage}", strconv.Itoa(page),
		"${totalPages}", strconv.Itoa(total),
	).Replace(content)
}
