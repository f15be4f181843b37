package box

import (
	"fmt"
	"strings"
)

// Position is the CSS position scheme.
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// Float is the CSS float value.
type Float uint8

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

// Display is the resolved outer/inner display of a box.
type Display uint8

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayInlineBlock
	DisplayListItem
	DisplayFlex
	DisplayInlineFlex
	DisplayGrid
	DisplayInlineGrid
	DisplayTable
	DisplayInlineTable
	DisplayContents
	DisplayNone
)

// Visibility is the CSS visibility value.
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
	Collapse
)

// Overflow is the CSS overflow value.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// BorderStyle is the style of one border side.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderSolid
	BorderDashed
	BorderDotted
	BorderDouble
)

// FontStyle is the CSS font-style value.
type FontStyle uint8

const (
	FontNormal FontStyle = iota
	FontItalic
	FontOblique
)

// TextAlign is the horizontal alignment of form control values.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ListStyle is the list-style-type used for generated markers.
type ListStyle uint8

const (
	ListNone ListStyle = iota
	ListDisc
	ListCircle
	ListSquare
	ListDecimal
)

// TextDecoration is a set of decoration lines.
type TextDecoration uint8

const (
	Underline TextDecoration = 1 << iota
	Overline
	LineThrough
)

// Side indexes the four box sides in paint order.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

var (
	positionNames   = []string{"static", "relative", "absolute", "fixed", "sticky"}
	floatNames      = []string{"none", "left", "right"}
	displayNames    = []string{"block", "inline", "inline-block", "list-item", "flex", "inline-flex", "grid", "inline-grid", "table", "inline-table", "contents", "none"}
	visibilityNames = []string{"visible", "hidden", "collapse"}
	overflowNames   = []string{"visible", "hidden", "scroll", "auto"}
	borderNames     = []string{"none", "solid", "dashed", "dotted", "double"}
	fontStyleNames  = []string{"normal", "italic", "oblique"}
	alignNames      = []string{"left", "center", "right"}
	listStyleNames  = []string{"none", "disc", "circle", "square", "decimal"}
)

func enumString[T ~uint8](names []string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", v)
}

func parseEnum[T ~uint8](kind string, names []string, text []byte) (T, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("box: unknown %s %q", kind, s)
}

func (p Position) String() string    { return enumString(positionNames, p) }
func (f Float) String() string       { return enumString(floatNames, f) }
func (d Display) String() string     { return enumString(displayNames, d) }
func (v Visibility) String() string  { return enumString(visibilityNames, v) }
func (o Overflow) String() string    { return enumString(overflowNames, o) }
func (s BorderStyle) String() string { return enumString(borderNames, s) }
func (s FontStyle) String() string   { return enumString(fontStyleNames, s) }
func (a TextAlign) String() string   { return enumString(alignNames, a) }
func (l ListStyle) String() string   { return enumString(listStyleNames, l) }

func (p *Position) UnmarshalText(b []byte) (err error) {
	*p, err = parseEnum[Position]("position", positionNames, b)
	return err
}

func (f *Float) UnmarshalText(b []byte) (err error) {
	*f, err = parseEnum[Float]("float", floatNames, b)
	return err
}

func (d *Display) UnmarshalText(b []byte) (err error) {
	*d, err = parseEnum[Display]("display", displayNames, b)
	return err
}

func (v *Visibility) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[Visibility]("visibility", visibilityNames, b)
	return err
}

func (o *Overflow) UnmarshalText(b []byte) (err error) {
	*o, err = parseEnum[Overflow]("overflow", overflowNames, b)
	return err
}

func (s *BorderStyle) UnmarshalText(b []byte) (err error) {
	*s, err = parseEnum[BorderStyle]("border style", borderNames, b)
	return err
}

func (s *FontStyle) UnmarshalText(b []byte) (err error) {
	*s, err = parseEnum[FontStyle]("font style", fontStyleNames, b)
	return err
}

func (a *TextAlign) UnmarshalText(b []byte) (err error) {
	*a, err = parseEnum[TextAlign]("text align", alignNames, b)
	return err
}

func (l *ListStyle) UnmarshalText(b []byte) (err error) {
	*l, err = parseEnum[ListStyle]("list style", listStyleNames, b)
	return err
}

// UnmarshalText parses a space separated list such as "underline overline".
func (d *TextDecoration) UnmarshalText(b []byte) error {
	var v TextDecoration
	for _, f := range strings.Fields(strings.ToLower(string(b))) {
		switch f {
		case "none":
		case "underline":
			v |= Underline
		case "overline":
			v |= Overline
		case "line-through":
			v |= LineThrough
		default:
			return fmt.Errorf("box: unknown text decoration %q", f)
		}
	}
	*d = v
	return nil
}

// InlineLevel reports whether d participates in an inline formatting context.
func (d Display) InlineLevel() bool {
	switch d {
	case DisplayInline, DisplayInlineBlock, DisplayInlineFlex, DisplayInlineGrid, DisplayInlineTable:
		return true
	}
	return false
}

// ZIndex is a stacking order. The zero value is auto.
type ZIndex struct {
	Order int  `json:"order"`
	Set   bool `json:"set"`
}

// Z returns an explicit z-index.
func Z(order int) ZIndex { return ZIndex{Order: order, Set: true} }

// IsAuto reports whether no explicit z-index was given.
func (z ZIndex) IsAuto() bool { return !z.Set }

// BorderSide is the resolved style of one border side.
type BorderSide struct {
	Width float64     `json:"width"`
	Style BorderStyle `json:"style"`
	Color Color       `json:"color"`
}

// Visible reports whether the side paints anything.
func (s BorderSide) Visible() bool {
	return s.Style != BorderNone && !s.Color.IsTransparent() && s.Width > 0
}

// Transform is a CSS 2-D matrix(a, b, c, d, e, f) with its transform origin
// relative to the border box.
type Transform struct {
	Matrix  [6]float64 `json:"matrix"`
	OriginX float64    `json:"originX"`
	OriginY float64    `json:"originY"`
}

// Styles holds the computed values the renderer consumes.
// Build new values with DefaultStyles so Opacity and the text defaults are set.
type Styles struct {
	BackgroundColor Color         `json:"backgroundColor"`
	Border          [4]BorderSide `json:"border"`
	Padding         [4]float64    `json:"padding"`

	Color               Color          `json:"color"`
	FontFamily          string         `json:"fontFamily"`
	FontSize            float64        `json:"fontSize"`
	FontWeight          int            `json:"fontWeight"`
	FontStyle           FontStyle      `json:"fontStyle"`
	LineHeight          float64        `json:"lineHeight"`
	LetterSpacing       float64        `json:"letterSpacing"`
	TextDecoration      TextDecoration `json:"textDecoration"`
	TextDecorationColor Color          `json:"textDecorationColor"`
	TextAlign           TextAlign      `json:"textAlign"`

	ListStyleType  ListStyle `json:"listStyleType"`
	ListStyleImage string    `json:"listStyleImage"`

	Opacity    float64    `json:"opacity"`
	Transform  *Transform `json:"transform,omitempty"`
	Overflow   Overflow   `json:"overflow"`
	Position   Position   `json:"position"`
	ZIndex     ZIndex     `json:"zIndex"`
	Float      Float      `json:"float"`
	Display    Display    `json:"display"`
	Visibility Visibility `json:"visibility"`
}

// DefaultStyles returns the initial values: opaque, black 16px normal text,
// static block layout.
func DefaultStyles() Styles {
	return Styles{
		Color:      Black,
		FontSize:   16,
		FontWeight: 400,
		LineHeight: 16 * 1.2,
		Opacity:    1,
	}
}

// Positioned reports whether the box uses a non-static position scheme.
func (s *Styles) Positioned() bool { return s.Position != PositionStatic }

// Floating reports whether the box floats.
func (s *Styles) Floating() bool { return s.Float != FloatNone }

// Transformed reports whether a non-identity transform is set.
func (s *Styles) Transformed() bool {
	return s.Transform != nil && s.Transform.Matrix != [6]float64{1, 0, 0, 1, 0, 0}
}

// IsVisible reports whether the box paints at all.
func (s *Styles) IsVisible() bool {
	return s.Visibility == Visible && s.Display != DisplayNone && s.Opacity > 0
}
