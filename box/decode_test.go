package box

import (
	"errors"
	"strings"
	"testing"
)

const sampleJSON = `{
  "tag": "html",
  "bounds": {"left": 0, "top": 0, "width": 794, "height": 2000},
  "realStackingContext": true,
  "styles": {"backgroundColor": "#ffffff"},
  "children": [
    {
      "tag": "div",
      "bounds": {"left": 10, "top": 1000, "width": 200, "height": 200},
      "noSplit": true,
      "styles": {
        "position": "relative",
        "zIndex": {"order": -1, "set": true},
        "border": [
          {"width": 2, "style": "dashed", "color": "#ff0000"},
          {"width": 0, "style": "none", "color": "transparent"},
          {"width": 2, "style": "solid", "color": "#000"},
          {"width": 0, "style": "none", "color": "transparent"}
        ],
        "textDecoration": "underline line-through"
      },
      "text": [{"text": "hi", "segments": [{"text": "hi", "bounds": {"left": 12, "top": 1002, "width": 20, "height": 18}}]}]
    },
    {
      "tag": "input",
      "bounds": {"left": 0, "top": 10, "width": 16, "height": 16},
      "content": {"kind": "input", "type": "checkbox", "checked": true}
    },
    {
      "tag": "img",
      "bounds": {"left": 0, "top": 40, "width": 100, "height": 80},
      "content": {"kind": "image", "url": "data:image/png;base64,AAAA", "width": 50, "height": 40}
    }
  ]
}`

func TestDecode(t *testing.T) {
	root, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !root.Flags.Has(CreatesRealStackingContext) {
		t.Error("root should carry CreatesRealStackingContext")
	}
	if root.Styles.BackgroundColor != White {
		t.Errorf("root background = %v, want %v", root.Styles.BackgroundColor, White)
	}
	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(root.Children))
	}

	div := root.Children[0]
	if div.Styles.Opacity != 1 {
		t.Errorf("omitted opacity = %v, want default 1", div.Styles.Opacity)
	}
	if div.Styles.Color != Black {
		t.Errorf("omitted color = %v, want default black", div.Styles.Color)
	}
	if div.Styles.Position != PositionRelative || div.Styles.ZIndex != Z(-1) {
		t.Errorf("position/z = %v/%v, want relative/-1", div.Styles.Position, div.Styles.ZIndex)
	}
	if div.Styles.Border[Top].Style != BorderDashed || div.Styles.Border[Top].Color != 0xFF0000FF {
		t.Errorf("top border = %+v", div.Styles.Border[Top])
	}
	if div.Styles.TextDecoration != Underline|LineThrough {
		t.Errorf("decoration = %v, want underline|line-through", div.Styles.TextDecoration)
	}
	if !div.NoSplit {
		t.Error("noSplit not decoded")
	}

	in, ok := root.Children[1].Content.(*Input)
	if !ok {
		t.Fatalf("content = %T, want *Input", root.Children[1].Content)
	}
	if in.Type != InputCheckbox || !in.Checked {
		t.Errorf("input = %+v, want checked checkbox", in)
	}

	img, ok := root.Children[2].Content.(*Image)
	if !ok {
		t.Fatalf("content = %T, want *Image", root.Children[2].Content)
	}
	if img.IntrinsicWidth != 50 || img.Kind() != KindImage {
		t.Errorf("image = %+v", img)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		is   error
	}{
		{"unknown content", `{"content": {"kind": "video"}}`, ErrUnknownContent},
		{"bad color", `{"styles": {"color": "#12"}}`, nil},
		{"bad enum", `{"styles": {"position": "floating"}}`, nil},
		{"syntax", `{"tag": `, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("Decode() error = nil, want error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Decode() error = %v, want %v", err, tt.is)
			}
		})
	}
}
