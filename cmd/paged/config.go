package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	paged "github.com/gogpu/paged"
	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/render"
	"github.com/gogpu/paged/resource"
)

// Config is the CLI configuration, read from an optional config file,
// PAGED_* environment variables and flags, in increasing priority.
type Config struct {
	Format     string      `mapstructure:"format"`
	Width      float64     `mapstructure:"width"`
	Height     float64     `mapstructure:"height"`
	Pagination bool        `mapstructure:"pagination"`
	Background string      `mapstructure:"background"`
	Encoder    string      `mapstructure:"encoder"`
	Scale      float64     `mapstructure:"scale"`
	Fonts      string      `mapstructure:"fonts"`
	OriginX    float64     `mapstructure:"origin_x"`
	OriginY    float64     `mapstructure:"origin_y"`
	Header     BandConfig  `mapstructure:"header"`
	Footer     BandConfig  `mapstructure:"footer"`
	Assets     AssetConfig `mapstructure:"assets"`
	Log        LogConfig   `mapstructure:"log"`
}

// BandConfig overrides parts of a header or footer band.
type BandConfig struct {
	Content  string  `mapstructure:"content"`
	Position string  `mapstructure:"position"`
	Height   float64 `mapstructure:"height"`
}

// AssetConfig controls how image URLs are fetched.
type AssetConfig struct {
	Root      string  `mapstructure:"root"`
	RateLimit float64 `mapstructure:"rate_limit"`
	Prefetch  int     `mapstructure:"prefetch"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

var errConfig = errors.New("invalid configuration")

func setDefaults(v *viper.Viper) {
	pc := render.DefaultPageConfig()
	v.SetDefault("format", render.DefaultFormat)
	v.SetDefault("background", "#ffffff")
	v.SetDefault("encoder", "png")
	v.SetDefault("scale", 1.0)
	v.SetDefault("header.content", pc.Header.Content)
	v.SetDefault("header.position", pc.Header.Position.String())
	v.SetDefault("header.height", pc.Header.Height)
	v.SetDefault("footer.content", pc.Footer.Content)
	v.SetDefault("footer.position", pc.Footer.Position.String())
	v.SetDefault("footer.height", pc.Footer.Height)
	v.SetDefault("assets.root", ".")
	v.SetDefault("assets.prefetch", 8)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if (c.Width > 0) != (c.Height > 0) {
		return fmt.Errorf("%w: width and height must be set together", errConfig)
	}
	if c.Width <= 0 {
		if _, err := render.LookupFormat(c.Format); err != nil {
			return fmt.Errorf("%w: %w", errConfig, err)
		}
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", errConfig, c.Scale)
	}
	if _, err := box.ParseColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %w", errConfig, err)
	}
	for _, band := range []struct {
		name string
		b    BandConfig
	}{{"header", c.Header}, {"footer", c.Footer}} {
		name, b := band.name, band.b
		if b.Height < 0 {
			return fmt.Errorf("%w: %s height must not be negative", errConfig, name)
		}
		if _, err := render.ParsePosition(b.Position); err != nil {
			return fmt.Errorf("%w: %s: %w", errConfig, name, err)
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q, want text or json", errConfig, c.Log.Format)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", errConfig, s)
	}
	return l, nil
}

// pageConfig applies the band overrides to the default header and footer.
func (c *Config) pageConfig() render.PageConfig {
	pc := render.DefaultPageConfig()
	apply := func(hf *render.HeaderFooter, b BandConfig) {
		hf.Content = b.Content
		hf.Height = b.Height
		if pos, err := render.ParsePosition(b.Position); err == nil {
			hf.Position = pos
		}
	}
	apply(&pc.Header, c.Header)
	apply(&pc.Footer, c.Footer)
	return pc
}

// options turns a validated Config into render options.
func (c *Config) options() ([]paged.Option, error) {
	bg, _ := box.ParseColor(c.Background)
	opts := []paged.Option{
		paged.WithPagination(c.Pagination),
		paged.WithPageConfig(c.pageConfig()),
		paged.WithBackground(bg),
		paged.WithEncoder(c.Encoder),
		paged.WithRasterScale(c.Scale),
		paged.WithOrigin(c.OriginX, c.OriginY),
		paged.WithResourceCache(resource.NewCache(
			resource.WithFetcher(resource.NewRouter(c.Assets.Root, c.Assets.RateLimit)),
			resource.WithPrefetchLimit(c.Assets.Prefetch),
		)),
	}
	if c.Width > 0 {
		opts = append(opts, paged.WithPageSize(c.Width, c.Height))
	} else {
		opts = append(opts, paged.WithFormat(c.Format))
	}
	if c.Fonts != "" {
		data, err := os.ReadFile(c.Fonts)
		if err != nil {
			return nil, fmt.Errorf("read font config: %w", err)
		}
		opts = append(opts, paged.WithFontConfig(data))
	}
	return opts, nil
}
