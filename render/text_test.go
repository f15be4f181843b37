package render

import (
	"math"
	"testing"

	"github.com/gogpu/gg/recording"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/fonts"
)

func TestLineMetrics(t *testing.T) {
	tests := []struct {
		name         string
		m            text.Metrics
		h            float64
		wantBaseline float64
		wantMiddle   float64
	}{
		{"x-height", text.Metrics{Ascent: 12, Descent: 4, XHeight: 6}, 20, 14, 11},
		{"no x-height", text.Metrics{Ascent: 10, Descent: 2}, 16, 12, 9.5},
		{"tight line", text.Metrics{Ascent: 12, Descent: 4, XHeight: 6}, 16, 12, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseline, middle := lineMetrics(tt.m, tt.h)
			if baseline != tt.wantBaseline || middle != tt.wantMiddle {
				t.Errorf("lineMetrics() = (%v, %v), want (%v, %v)", baseline, middle, tt.wantBaseline, tt.wantMiddle)
			}
		})
	}
}

func textBox(s string, bounds box.Bounds, mutate func(*box.Box)) *box.Box {
	b := box.New("p", bounds)
	b.Text = []box.TextRun{{Text: s, Segments: []box.TextSegment{{Text: s, Bounds: bounds}}}}
	if mutate != nil {
		mutate(b)
	}
	return b
}

func TestRenderText_Decorations(t *testing.T) {
	bounds := box.Bounds{Left: 10, Top: 20, Width: 50, Height: 20}
	root := textBox("hello", bounds, func(b *box.Box) {
		b.Styles.TextDecoration = box.Underline | box.Overline | box.LineThrough
		b.Styles.TextDecorationColor = red
	})
	r := newRenderer(t, Options{})
	rec := render(t, r, root)

	texts := commandsOf[recording.DrawTextCommand](rec)
	if len(texts) != 1 || texts[0].Text != "hello" {
		t.Fatalf("DrawText commands = %+v, want one for hello", texts)
	}

	face, _ := r.fonts.Face(fonts.Spec{Weight: 400}, 16)
	baseline, middle := lineMetrics(face.Metrics(), bounds.Height)
	if got, want := texts[0].Y, (bounds.Top+baseline)*0.75; !near(got, want, 1e-9) {
		t.Errorf("text baseline = %v, want %v", got, want)
	}

	got := fills(rec)
	wantY := []float64{
		math.Round(bounds.Top + baseline),
		math.Round(bounds.Top),
		math.Ceil(bounds.Top + middle),
	}
	if len(got) != len(wantY) {
		t.Fatalf("decoration count = %d, want %d", len(got), len(wantY))
	}
	for i, y := range wantY {
		f := got[i]
		if !near(f.rect.MinY, y*0.75, 1e-9) || !near(f.rect.Height(), 0.75, 1e-9) || !near(f.rect.Width(), 37.5, 1e-9) {
			t.Errorf("decoration %d rect = %+v, want y %v height 0.75 width 37.5", i, f.rect, y*0.75)
		}
		if f.color != rgba(red) {
			t.Errorf("decoration %d color = %v, want decoration color", i, f.color)
		}
	}
}

func TestRenderText_DecorationFallsBackToTextColor(t *testing.T) {
	root := textBox("x", box.Bounds{Width: 20, Height: 20}, func(b *box.Box) {
		b.Styles.Color = blue
		b.Styles.TextDecoration = box.Underline
	})
	got := fills(render(t, newRenderer(t, Options{}), root))
	if len(got) != 1 || got[0].color != rgba(blue) {
		t.Errorf("fills = %+v, want one underline in the text color", got)
	}
}

func TestRenderText_LetterSpacing(t *testing.T) {
	root := textBox("abc", box.Bounds{Left: 10, Width: 60, Height: 20}, func(b *box.Box) {
		b.Styles.LetterSpacing = 2
	})
	r := newRenderer(t, Options{})
	texts := commandsOf[recording.DrawTextCommand](render(t, r, root))
	if len(texts) != 3 {
		t.Fatalf("DrawText count = %d, want 3", len(texts))
	}

	face, _ := r.fonts.Face(fonts.Spec{Weight: 400}, 16)
	x := 10.0
	for i, g := range []string{"a", "b", "c"} {
		if texts[i].Text != g || !near(texts[i].X, x*0.75, 1e-9) {
			t.Errorf("glyph %d = (%q, %v), want (%q, %v)", i, texts[i].Text, texts[i].X, g, x*0.75)
		}
		x += face.Advance(g) + 2
	}
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"abc", []string{"a", "b", "c"}},
		{"éx", []string{"é", "x"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := graphemes(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("graphemes(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("graphemes(%q) = %q, want %q", tt.in, got, tt.want)
				break
			}
		}
	}
}
