package box

import "image"

// ContentKind identifies a replaced-content variant.
type ContentKind uint8

const (
	KindImage ContentKind = iota + 1
	KindCanvas
	KindSVG
	KindIFrame
	KindInput
	KindSelect
	KindTextarea
)

var kindNames = []string{"", "image", "canvas", "svg", "iframe", "input", "select", "textarea"}

func (k ContentKind) String() string { return enumString(kindNames, k) }

// Content is the replaced content of a box. The set of implementations is
// closed; switch on the concrete type.
type Content interface {
	Kind() ContentKind
}

// Image is an <img> element resolved through the resource cache.
type Image struct {
	URL             string
	IntrinsicWidth  float64
	IntrinsicHeight float64
}

// Canvas is a pre-rendered bitmap. Bitmap wins over Source when both are set.
type Canvas struct {
	Bitmap image.Image
	Source string
}

// SVG is an inline or referenced SVG document, addressed by URL or data URI.
type SVG struct {
	Source          string
	IntrinsicWidth  float64
	IntrinsicHeight float64
}

// IFrame holds the laid-out tree of a nested document.
type IFrame struct {
	Tree            *Box
	Width           float64
	Height          float64
	BackgroundColor Color
}

// InputType is the type attribute of an <input>.
type InputType uint8

const (
	InputText InputType = iota
	InputPassword
	InputCheckbox
	InputRadio
)

var inputTypeNames = []string{"text", "password", "checkbox", "radio"}

func (t InputType) String() string { return enumString(inputTypeNames, t) }

func (t *InputType) UnmarshalText(b []byte) (err error) {
	*t, err = parseEnum[InputType]("input type", inputTypeNames, b)
	return err
}

// Input is a form <input> control.
type Input struct {
	Type    InputType
	Value   string
	Checked bool
}

// Select is a <select> control showing its selected option text.
type Select struct {
	Value string
}

// Textarea is a <textarea> control.
type Textarea struct {
	Value string
}

func (*Image) Kind() ContentKind    { return KindImage }
func (*Canvas) Kind() ContentKind   { return KindCanvas }
func (*SVG) Kind() ContentKind      { return KindSVG }
func (*IFrame) Kind() ContentKind   { return KindIFrame }
func (*Input) Kind() ContentKind    { return KindInput }
func (*Select) Kind() ContentKind   { return KindSelect }
func (*Textarea) Kind() ContentKind { return KindTextarea }

// IsTextControl reports whether c renders a value string in its content box.
func IsTextControl(c Content) bool {
	switch v := c.(type) {
	case *Input:
		return v.Type == InputText || v.Type == InputPassword
	case *Select, *Textarea:
		return true
	}
	return false
}
