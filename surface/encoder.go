package surface

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownEncoder is returned when no encoder is registered under a name.
var ErrUnknownEncoder = errors.New("surface: unknown encoder")

// Encoder writes one rasterized page.
type Encoder struct {
	// Ext is the file extension used for page entries, without the dot.
	Ext string
	// Encode writes img to w.
	Encode func(w io.Writer, img image.Image) error
}

var (
	encodersMu sync.RWMutex
	encoders   = make(map[string]Encoder)
)

func init() {
	RegisterEncoder("png", Encoder{Ext: "png", Encode: func(w io.Writer, img image.Image) error {
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		return enc.Encode(w, img)
	}})
	RegisterEncoder("tiff", Encoder{Ext: "tiff", Encode: func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}})
	RegisterEncoder("bmp", Encoder{Ext: "bmp", Encode: bmp.Encode})
}

// RegisterEncoder makes an encoder available by name.
//
// RegisterEncoder panics if Encode is nil or if name is already taken, so
// that conflicting registrations surface during initialization.
func RegisterEncoder(name string, e Encoder) {
	encodersMu.Lock()
	defer encodersMu.Unlock()

	if e.Encode == nil {
		panic("surface: RegisterEncoder encode func is nil")
	}
	if _, dup := encoders[name]; dup {
		panic("surface: RegisterEncoder called twice for " + name)
	}
	encoders[name] = e
}

// UnregisterEncoder removes an encoder. Unknown names are ignored.
func UnregisterEncoder(name string) {
	encodersMu.Lock()
	defer encodersMu.Unlock()
	delete(encoders, name)
}

// LookupEncoder returns the encoder registered under name.
func LookupEncoder(name string) (Encoder, error) {
	encodersMu.RLock()
	e, ok := encoders[name]
	encodersMu.RUnlock()

	if !ok {
		return Encoder{}, fmt.Errorf("%w %q", ErrUnknownEncoder, name)
	}
	return e, nil
}

// Encoders returns the registered encoder names in sorted order.
func Encoders() []string {
	encodersMu.RLock()
	defer encodersMu.RUnlock()

	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
