package surface

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
)

var white = gg.RGBA{R: 1, G: 1, B: 1, A: 1}

type singleFace struct{ src *text.FontSource }

func (f singleFace) ResolveFace(_ string, size float64) text.Face { return f.src.Face(size) }

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		files[f.Name] = b
	}
	return files
}

func isRed(c [4]uint32) bool {
	return c[0] > 0xf000 && c[1] < 0x1000 && c[2] < 0x1000
}

func isWhite(c [4]uint32) bool {
	return c[0] > 0xf000 && c[1] > 0xf000 && c[2] > 0xf000
}

func at(img image.Image, x, y int) [4]uint32 {
	r, g, b, a := img.At(x, y).RGBA()
	return [4]uint32{r, g, b, a}
}

func TestDocument_AddPageFinishesPrevious(t *testing.T) {
	d := NewDocument(100, 100)
	if d.Current() != nil {
		t.Fatal("Current() before AddPage is not nil")
	}
	first := d.AddPage()
	first.FillRect(0, 0, 10, 10, red)
	d.AddPage()
	if first.finished == nil {
		t.Error("AddPage() left the previous page open")
	}
	if got := len(d.Recordings()); got != 2 {
		t.Errorf("len(Recordings()) = %d, want 2", got)
	}
}

func TestDocument_WriteArchive(t *testing.T) {
	d := NewDocument(100, 50)
	d.AddPage().FillRect(10, 10, 40, 20, red)
	d.AddPage()

	var buf bytes.Buffer
	if err := d.WriteArchive(&buf, ArchiveOptions{Scale: 2, Background: white, ID: "run-1"}); err != nil {
		t.Fatalf("WriteArchive() error = %v", err)
	}
	files := readArchive(t, buf.Bytes())

	var m Manifest
	if err := json.Unmarshal(files[ManifestName], &m); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	want := Manifest{
		ID: "run-1", Encoder: "png", Scale: 2, PageWidth: 100, PageHeight: 50,
		Pages: []ManifestPage{
			{Number: 1, Name: "page-0001.png", Width: 200, Height: 100},
			{Number: 2, Name: "page-0002.png", Width: 200, Height: 100},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}

	img, err := png.Decode(bytes.NewReader(files["page-0001.png"]))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if c := at(img, 60, 40); !isRed(c) {
		t.Errorf("pixel inside fill = %v, want red", c)
	}
	if c := at(img, 150, 80); !isWhite(c) {
		t.Errorf("pixel outside fill = %v, want white", c)
	}
}

func TestDocument_WriteArchiveUnknownEncoder(t *testing.T) {
	d := NewDocument(10, 10)
	d.AddPage()
	if err := d.WriteArchive(io.Discard, ArchiveOptions{Encoder: "gif"}); err == nil {
		t.Error("WriteArchive() with unknown encoder returned nil error")
	}
}

func TestRasterize_Clip(t *testing.T) {
	p := NewPage(100, 100)
	p.Save()
	p.ClipRect(0, 0, 20, 20)
	p.FillRect(0, 0, 100, 100, red)
	p.Restore()

	img, err := Rasterize(p.Finish(), 1, nil, white)
	if err != nil {
		t.Fatal(err)
	}
	if c := at(img, 10, 10); !isRed(c) {
		t.Errorf("pixel inside clip = %v, want red", c)
	}
	if c := at(img, 60, 60); !isWhite(c) {
		t.Errorf("pixel outside clip = %v, want white", c)
	}
}

func TestRasterize_Image(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 0xff, 0xff
	}
	p := NewPage(100, 100)
	p.DrawImage(src, 50, 50, 40, 40)

	img, err := Rasterize(p.Finish(), 1, nil, white)
	if err != nil {
		t.Fatal(err)
	}
	if c := at(img, 70, 70); !isRed(c) {
		t.Errorf("pixel inside image = %v, want red", c)
	}
	if c := at(img, 20, 20); !isWhite(c) {
		t.Errorf("pixel outside image = %v, want white", c)
	}
}

func TestRasterize_Text(t *testing.T) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPage(200, 60)
	p.SetFont("go|false|false", 32)
	p.DrawString("HHHH", 10, 40, gg.RGBA{A: 1})

	img, err := Rasterize(p.Finish(), 1, singleFace{src}, white)
	if err != nil {
		t.Fatal(err)
	}
	dark := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("Rasterize() drew no text pixels")
	}
}
