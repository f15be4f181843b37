package paged

import (
	"errors"

	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/fonts"
	"github.com/gogpu/paged/render"
	"github.com/gogpu/paged/resource"
)

// Option configures a render.
//
// Example:
//
//	err := paged.Render(ctx, root, w,
//	    paged.WithFormat("letter"),
//	    paged.WithPagination(true),
//	    paged.WithEncoder("tiff"),
//	)
type Option func(*options)

// options holds the configuration of one render.
type options struct {
	size        render.Size
	format      string
	pagination  bool
	pageConfig  render.PageConfig
	background  box.Color
	fonts       []fonts.Config
	fontJSON    [][]byte
	cache       *resource.Cache
	encoder     string
	rasterScale float64
	originX     float64
	originY     float64

	// err is the first invalid option; Render reports it before any work.
	err error
}

// defaultOptions returns A4 pages on a white background with the default
// header and footer bands and no running text.
func defaultOptions() options {
	return options{
		size:        render.Formats[render.DefaultFormat],
		format:      render.DefaultFormat,
		pageConfig:  render.DefaultPageConfig(),
		background:  box.White,
		encoder:     "png",
		rasterScale: 1,
	}
}

// WithFormat selects a named page format such as "a4" or "letter".
// Unknown names make Render fail with render.ErrUnknownFormat.
func WithFormat(name string) Option {
	return func(o *options) {
		size, err := render.LookupFormat(name)
		if err != nil {
			if o.err == nil {
				o.err = err
			}
			return
		}
		o.size, o.format = size, name
	}
}

// WithPageSize sets an explicit page size in CSS pixels.
func WithPageSize(width, height float64) Option {
	return func(o *options) {
		o.size, o.format = render.Size{Width: width, Height: height}, ""
	}
}

// WithPagination enables the running header and footer text.
func WithPagination(on bool) Option {
	return func(o *options) {
		o.pagination = on
	}
}

// WithPageConfig replaces the header and footer configuration.
func WithPageConfig(pc render.PageConfig) Option {
	return func(o *options) {
		o.pageConfig = pc
	}
}

// WithBackground sets the page background. box.Transparent disables it.
func WithBackground(c box.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithFonts registers embedded fonts built in Go.
func WithFonts(configs ...fonts.Config) Option {
	return func(o *options) {
		o.fonts = append(o.fonts, configs...)
	}
}

// WithFontConfig registers fonts from raw JSON, validated strictly by
// fonts.ParseConfig when Render starts.
func WithFontConfig(data []byte) Option {
	return func(o *options) {
		o.fontJSON = append(o.fontJSON, data)
	}
}

// WithResourceCache shares an image cache between renders.
func WithResourceCache(c *resource.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithEncoder selects the page image encoder of the output archive.
func WithEncoder(name string) Option {
	return func(o *options) {
		o.encoder = name
	}
}

// WithRasterScale sets the output resolution in pixels per point.
func WithRasterScale(scale float64) Option {
	return func(o *options) {
		o.rasterScale = scale
	}
}

// WithOrigin renders the document from (x, y) instead of its top-left
// corner.
func WithOrigin(x, y float64) Option {
	return func(o *options) {
		o.originX, o.originY = x, y
	}
}

// fontConfigs returns every configured font, parsing raw JSON first.
func (o *options) fontConfigs() ([]fonts.Config, error) {
	out := make([]fonts.Config, 0, len(o.fonts))
	for _, data := range o.fontJSON {
		cs, err := fonts.ParseConfig(data)
		if err != nil {
			return nil, err
		}
		out = append(out, cs...)
	}
	for i, c := range o.fonts {
		if err := c.Validate(); err != nil {
			var ce *fonts.ConfigError
			if errors.As(err, &ce) {
				ce.Index = i
			}
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
