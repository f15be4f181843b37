package surface

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ManifestName is the archive entry describing the rendered pages.
const ManifestName = "manifest.json"

// Document is the ordered set of pages produced by one render.
type Document struct {
	width  float64
	height float64
	pages  []*Page
}

// NewDocument returns an empty document whose pages are width by height
// points.
func NewDocument(width, height float64) *Document {
	return &Document{width: width, height: height}
}

// Width returns the page width in points.
func (d *Document) Width() float64 { return d.width }

// Height returns the page height in points.
func (d *Document) Height() float64 { return d.height }

// AddPage finishes the current page and starts a new one.
func (d *Document) AddPage() *Page {
	if cur := d.Current(); cur != nil {
		cur.Finish()
	}
	p := NewPage(d.width, d.height)
	d.pages = append(d.pages, p)
	return p
}

// Current returns the page being drawn, or nil before the first AddPage.
func (d *Document) Current() *Page {
	if len(d.pages) == 0 {
		return nil
	}
	return d.pages[len(d.pages)-1]
}

// Len returns the number of pages.
func (d *Document) Len() int { return len(d.pages) }

// Recordings finishes every page and returns their command logs in order.
func (d *Document) Recordings() []*recording.Recording {
	recs := make([]*recording.Recording, len(d.pages))
	for i, p := range d.pages {
		recs[i] = p.Finish()
	}
	return recs
}

// ArchiveOptions controls WriteArchive.
type ArchiveOptions struct {
	// Encoder names a registered page encoder. Empty means "png".
	Encoder string
	// Scale is the raster resolution in pixels per point. Zero means 1.
	Scale float64
	// Faces resolves recorded text faces. Text is skipped when nil.
	Faces FaceResolver
	// Background is painted under every page. The zero value is transparent.
	Background gg.RGBA
	// ID is copied into the manifest.
	ID string
}

// Manifest describes an archive's pages.
type Manifest struct {
	ID         string         `json:"id,omitempty"`
	Encoder    string         `json:"encoder"`
	Scale      float64        `json:"scale"`
	PageWidth  float64        `json:"pageWidth"`
	PageHeight float64        `json:"pageHeight"`
	Pages      []ManifestPage `json:"pages"`
}

// ManifestPage is one page entry in a Manifest.
type ManifestPage struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PageName returns the archive entry name of page n (1-based).
func PageName(n int, ext string) string {
	return fmt.Sprintf("page-%04d.%s", n, ext)
}

// WriteArchive rasterizes every page and writes a ZIP archive to w.
func (d *Document) WriteArchive(w io.Writer, opts ArchiveOptions) error {
	name := opts.Encoder
	if name == "" {
		name = "png"
	}
	enc, err := LookupEncoder(name)
	if err != nil {
		return err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	m := Manifest{
		ID:         opts.ID,
		Encoder:    name,
		Scale:      scale,
		PageWidth:  d.width,
		PageHeight: d.height,
		Pages:      make([]ManifestPage, 0, len(d.pages)),
	}

	zw := zip.NewWriter(w)
	for i, rec := range d.Recordings() {
		img, err := Rasterize(rec, scale, opts.Faces, opts.Background)
		if err != nil {
			return fmt.Errorf("surface: rasterize page %d: %w", i+1, err)
		}
		entry := PageName(i+1, enc.Ext)
		f, err := zw.Create(entry)
		if err != nil {
			return fmt.Errorf("surface: create %s: %w", entry, err)
		}
		if err := enc.Encode(f, img); err != nil {
			return fmt.Errorf("surface: encode %s: %w", entry, err)
		}
		b := img.Bounds()
		m.Pages = append(m.Pages, ManifestPage{Number: i + 1, Name: entry, Width: b.Dx(), Height: b.Dy()})
	}

	f, err := zw.Create(ManifestName)
	if err != nil {
		return fmt.Errorf("surface: create manifest: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("surface: marshal manifest: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("surface: write manifest: %w", err)
	}
	return zw.Close()
}
