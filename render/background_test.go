package render

import (
	"math"
	"testing"

	"github.com/gogpu/gg/recording"

	"github.com/gogpu/paged/box"
)

func TestDashPattern(t *testing.T) {
	tests := []struct {
		name      string
		l, w      float64
		dotted    bool
		wantOK    bool
		wantDash  float64
		wantSpace float64
	}{
		{"too short", 12, 2, false, false, 0, 0},
		{"squeezed", 14, 2, false, true, 5.25, 3.5},
		{"thin", 100, 2, false, true, 6, 40.0 / 9},
		{"thick", 100, 4, false, true, 8, 3.5},
		{"dotted short", 2, 1, true, false, 0, 0},
		{"dotted", 11, 1, true, true, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dash, space, ok := dashPattern(tt.l, tt.w, tt.dotted)
			if ok != tt.wantOK {
				t.Fatalf("dashPattern() ok = %v, want %v", ok, tt.wantOK)
			}
			if !near(dash, tt.wantDash, 1e-9) || !near(space, tt.wantSpace, 1e-9) {
				t.Errorf("dashPattern() = (%v, %v), want (%v, %v)", dash, space, tt.wantDash, tt.wantSpace)
			}
		})
	}
}

// A solved pattern starts and ends with a dash: k dashes and k-1 gaps
// cover the side exactly.
func TestDashPattern_FillsSide(t *testing.T) {
	for _, dotted := range []bool{false, true} {
		for _, w := range []float64{1, 2, 3, 5} {
			for l := 1.0; l < 400; l += 7.3 {
				dash, space, ok := dashPattern(l, w, dotted)
				if !ok {
					if l > 2*w*3 {
						t.Errorf("dashPattern(%v, %v, %v) not ok", l, w, dotted)
					}
					continue
				}
				k := math.Round((l + space) / (dash + space))
				if got := k*dash + (k-1)*space; !near(got, l, 1e-6) {
					t.Errorf("dashPattern(%v, %v, %v) = (%v, %v): %v dashes cover %v", l, w, dotted, dash, space, k, got)
				}
			}
		}
	}
}

func bordered(style box.BorderStyle, width float64, mutate func(*box.Box)) *box.Box {
	b := box.New("div", box.Bounds{Left: 10, Top: 10, Width: 100, Height: 60})
	for i := range b.Styles.Border {
		b.Styles.Border[i] = box.BorderSide{Width: width, Style: style, Color: blue}
	}
	if mutate != nil {
		mutate(b)
	}
	return b
}

func TestRenderBorders(t *testing.T) {
	tests := []struct {
		name        string
		root        *box.Box
		wantFills   int
		wantStrokes int
		wantClips   int
	}{
		{"solid", bordered(box.BorderSolid, 2, nil), 4, 0, 0},
		{"double", bordered(box.BorderDouble, 6, nil), 8, 0, 0},
		{"thin double is solid", bordered(box.BorderDouble, 2, nil), 4, 0, 0},
		{"dashed", bordered(box.BorderDashed, 2, nil), 0, 4, 4},
		{"dotted", bordered(box.BorderDotted, 2, nil), 0, 4, 0},
		{"none", bordered(box.BorderNone, 2, nil), 0, 0, 0},
		{"zero width", bordered(box.BorderSolid, 0, nil), 0, 0, 0},
		{"transparent", bordered(box.BorderSolid, 2, func(b *box.Box) {
			for i := range b.Styles.Border {
				b.Styles.Border[i].Color = box.Transparent
			}
		}), 0, 0, 0},
		{"foreign object solid", bordered(box.BorderSolid, 2, func(b *box.Box) {
			b.ForeignObjectRendering = true
		}), 0, 0, 0},
		{"foreign object dashed", bordered(box.BorderDashed, 2, func(b *box.Box) {
			b.ForeignObjectRendering = true
		}), 0, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := render(t, newRenderer(t, Options{}), tt.root)
			if n := len(commandsOf[recording.FillPathCommand](rec)); n != tt.wantFills {
				t.Errorf("FillPath count = %d, want %d", n, tt.wantFills)
			}
			if n := len(commandsOf[recording.StrokePathCommand](rec)); n != tt.wantStrokes {
				t.Errorf("StrokePath count = %d, want %d", n, tt.wantStrokes)
			}
			if n := len(commandsOf[recording.SetClipCommand](rec)); n != tt.wantClips {
				t.Errorf("SetClip count = %d, want %d", n, tt.wantClips)
			}
		})
	}
}

func TestRenderBorders_DottedUsesRoundDots(t *testing.T) {
	rec := render(t, newRenderer(t, Options{}), bordered(box.BorderDotted, 2, nil))
	for _, s := range commandsOf[recording.StrokePathCommand](rec) {
		if s.Stroke.Cap != recording.LineCapRound {
			t.Errorf("dotted cap = %v, want round", s.Stroke.Cap)
		}
		if len(s.Stroke.DashPattern) != 2 || s.Stroke.DashPattern[0] != 0 {
			t.Errorf("dotted dash = %v, want [0 gap]", s.Stroke.DashPattern)
		}
	}
}

func TestRenderBackground_ForeignObjectSkipped(t *testing.T) {
	b := box.New("div", box.Bounds{Width: 10, Height: 10})
	b.Styles.BackgroundColor = red
	b.ForeignObjectRendering = true
	if got := fills(render(t, newRenderer(t, Options{}), b)); len(got) != 0 {
		t.Errorf("fills = %+v, want none", got)
	}
}
