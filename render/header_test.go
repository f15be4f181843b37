package render

import (
	"context"
	"testing"

	"github.com/gogpu/gg/recording"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/fonts"
)

func TestPlaceText(t *testing.T) {
	band := box.Bounds{Left: 10, Top: 20, Width: 100, Height: 50}
	tests := []struct {
		pos          Position
		wantX, wantY float64
	}{
		{Position{Anchor: TopLeft}, 10, 20},
		{Position{Anchor: TopRight}, 90, 20},
		{Position{Anchor: Center}, 50, 40},
		{Position{Anchor: CenterRight}, 90, 40},
		{Position{Anchor: BottomLeft}, 10, 60},
		{Position{Anchor: BottomRight}, 90, 60},
		{At(5, 6), 15, 26},
	}
	for _, tt := range tests {
		x, y := placeText(tt.pos, band, 20, 10)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("placeText(%v) = (%v, %v), want (%v, %v)", tt.pos, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestRenderPage_HeaderFooter(t *testing.T) {
	opts := Options{Width: 400, Height: 300, Pagination: true, PageConfig: DefaultPageConfig()}
	r := newRenderer(t, opts)
	r.SetTotalPages(3)
	if err := r.RenderPage(context.Background(), nil, 2); err != nil {
		t.Fatal(err)
	}
	texts := commandsOf[recording.DrawTextCommand](r.Page().Finish())
	if len(texts) != 1 {
		t.Fatalf("DrawText count = %d, want 1 (empty header)", len(texts))
	}
	got := texts[0]
	if got.Text != "2/3" {
		t.Errorf("footer text = %q, want 2/3", got.Text)
	}

	face, _ := r.fonts.Face(fonts.Spec{Family: fonts.DefaultFamily, Weight: 400}, 16)
	wantX := 24 + (352-face.Advance("2/3"))/2
	if !near(got.X, wantX*0.75, 1e-6) {
		t.Errorf("footer x = %v, want %v", got.X, wantX*0.75)
	}
	if y := got.Y / 0.75; y < 250 || y > 300 {
		t.Errorf("footer baseline = %vpx, want inside the footer band [250, 300]", y)
	}
}

func TestRenderPage_NoHeaderWithoutPagination(t *testing.T) {
	r := newRenderer(t, Options{PageConfig: DefaultPageConfig()})
	r.SetTotalPages(1)
	if n := len(commandsOf[recording.DrawTextCommand](render(t, r, nil))); n != 0 {
		t.Errorf("DrawText count = %d, want 0", n)
	}
}
