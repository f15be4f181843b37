package surface

import (
	"bytes"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncoders_Builtin(t *testing.T) {
	want := []string{"bmp", "png", "tiff"}
	if diff := cmp.Diff(want, Encoders()); diff != "" {
		t.Errorf("Encoders() mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupEncoder_Unknown(t *testing.T) {
	_, err := LookupEncoder("jpeg2000")
	if !errors.Is(err, ErrUnknownEncoder) {
		t.Errorf("LookupEncoder() error = %v, want ErrUnknownEncoder", err)
	}
}

func TestRegisterEncoder_Duplicate(t *testing.T) {
	e := Encoder{Ext: "raw", Encode: func(w io.Writer, img image.Image) error { return nil }}
	RegisterEncoder("test-raw", e)
	defer UnregisterEncoder("test-raw")

	defer func() {
		if recover() == nil {
			t.Error("RegisterEncoder() twice did not panic")
		}
	}()
	RegisterEncoder("test-raw", e)
}

func TestEncoders_RoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for _, name := range []string{"png", "tiff", "bmp"} {
		t.Run(name, func(t *testing.T) {
			e, err := LookupEncoder(name)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := e.Encode(&buf, img); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			cfg, format, err := image.DecodeConfig(&buf)
			if err != nil {
				t.Fatalf("DecodeConfig() error = %v", err)
			}
			if format != name || cfg.Width != 3 || cfg.Height != 2 {
				t.Errorf("DecodeConfig() = %s %dx%d, want %s 3x2", format, cfg.Width, cfg.Height, name)
			}
		})
	}
}
