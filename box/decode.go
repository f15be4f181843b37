package box

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnknownContent is returned when a content object names an unknown kind.
var ErrUnknownContent = errors.New("box: unknown content kind")

// contentJSON is the wire form of every Content variant, discriminated by Kind.
type contentJSON struct {
	Kind            string    `json:"kind"`
	URL             string    `json:"url"`
	Source          string    `json:"source"`
	Width           float64   `json:"width"`
	Height          float64   `json:"height"`
	Type            InputType `json:"type"`
	Value           string    `json:"value"`
	Checked         bool      `json:"checked"`
	Tree            *Box      `json:"tree"`
	BackgroundColor Color     `json:"backgroundColor"`
}

func (c *contentJSON) content() (Content, error) {
	switch c.Kind {
	case "image":
		return &Image{URL: c.URL, IntrinsicWidth: c.Width, IntrinsicHeight: c.Height}, nil
	case "canvas":
		return &Canvas{Source: c.Source}, nil
	case "svg":
		return &SVG{Source: c.Source, IntrinsicWidth: c.Width, IntrinsicHeight: c.Height}, nil
	case "iframe":
		return &IFrame{Tree: c.Tree, Width: c.Width, Height: c.Height, BackgroundColor: c.BackgroundColor}, nil
	case "input":
		return &Input{Type: c.Type, Value: c.Value, Checked: c.Checked}, nil
	case "select":
		return &Select{Value: c.Value}, nil
	case "textarea":
		return &Textarea{Value: c.Value}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContent, c.Kind)
}

// UnmarshalJSON decodes a box, starting from DefaultStyles so omitted style
// fields keep their initial values.
func (b *Box) UnmarshalJSON(data []byte) error {
	type plain Box
	aux := struct {
		plain
		Replaced     *contentJSON `json:"content"`
		Stacking     bool         `json:"stackingContext"`
		RealStacking bool         `json:"realStackingContext"`
		ListOwner    bool         `json:"listOwner"`
		Debug        bool         `json:"debug"`
	}{plain: plain{Styles: DefaultStyles()}}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Box(aux.plain)
	if aux.Stacking {
		b.Flags |= CreatesStackingContext
	}
	if aux.RealStacking {
		b.Flags |= CreatesRealStackingContext
	}
	if aux.ListOwner {
		b.Flags |= IsListOwner
	}
	if aux.Debug {
		b.Flags |= DebugRender
	}
	if aux.Replaced != nil {
		c, err := aux.Replaced.content()
		if err != nil {
			return err
		}
		b.Content = c
	}
	return nil
}

// Decode reads one JSON box tree from r.
func Decode(r io.Reader) (*Box, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("box: read tree: %w", err)
	}
	var root Box
	if err := root.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("box: decode tree: %w", err)
	}
	return &root, nil
}
