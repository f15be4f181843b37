package resource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Default size of an SVG without a usable viewBox, matching the CSS
// default replaced element size.
const (
	DefaultSVGWidth  = 300
	DefaultSVGHeight = 150

	maxSVGSide = 4096
)

// Decode turns resource bytes into an image. SVG documents are rasterized
// at their viewBox size; everything else goes through the registered
// image decoders.
func Decode(data []byte) (image.Image, error) {
	if IsSVG(data) {
		return DecodeSVG(data, 0, 0)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// DecodeSVG rasterizes an SVG document to w by h pixels. A zero size uses
// the viewBox.
func DecodeSVG(data []byte, w, h int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: svg: %v", ErrDecode, err)
	}
	if w <= 0 || h <= 0 {
		w, h = int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	}
	if w <= 0 || h <= 0 {
		w, h = DefaultSVGWidth, DefaultSVGHeight
	}
	w, h = min(w, maxSVGSide), min(h, maxSVGSide)

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// IsSVG reports whether data looks like an SVG document.
func IsSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.TrimSpace(head)
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(head, []byte("<svg"))
}
