package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	paged "github.com/gogpu/paged"
	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/surface"
)

func newRenderCmd(v *viper.Viper, cfg *Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a box tree to a page archive",
		Long: `Render reads a laid-out box tree as JSON (from a file, or stdin for "-")
and writes a zip archive holding one encoded image per page and a manifest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := readTree(cmd, args)
			if err != nil {
				return err
			}
			opts, err := cfg.options()
			if err != nil {
				return err
			}
			if output == "-" {
				return paged.Render(cmd.Context(), root, cmd.OutOrStdout(), opts...)
			}
			return renderFile(cmd, output, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "pages.zip", `output archive, "-" for stdout`)
	f.Bool("pagination", false, "paint the running header and footer text")
	f.String("background", "#ffffff", "page background color")
	f.String("encoder", "png", "page image encoder: "+strings.Join(surface.Encoders(), ", "))
	f.Float64("scale", 1, "raster resolution in pixels per point")
	f.String("fonts", "", "JSON font config file")
	f.String("header", "", "header content; ${currentPage} and ${totalPages} are expanded")
	f.String("header-position", "centerRight", `header anchor name or "x,y"`)
	f.String("footer", "${currentPage}/${totalPages}", "footer content")
	f.String("footer-position", "center", `footer anchor name or "x,y"`)
	f.String("assets", ".", "directory resolving relative image URLs")
	f.Float64("rate-limit", 0, "maximum remote image requests per second, 0 for none")
	bindFlags(v, f, map[string]string{
		"pagination":        "pagination",
		"background":        "background",
		"encoder":           "encoder",
		"scale":             "scale",
		"fonts":             "fonts",
		"header.content":    "header",
		"header.position":   "header-position",
		"footer.content":    "footer",
		"footer.position":   "footer-position",
		"assets.root":       "assets",
		"assets.rate_limit": "rate-limit",
	})
	return cmd
}

// renderFile writes the archive to name, removing the partial file when
// rendering fails.
func renderFile(cmd *cobra.Command, name string, root *box.Box, opts []paged.Option) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(name)
		}
	}()
	if err := paged.Render(cmd.Context(), root, f, opts...); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
