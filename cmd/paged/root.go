package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	paged "github.com/gogpu/paged"
	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/render"
)

// newRootCmd builds the command tree around a private viper instance and
// returns the Config that PersistentPreRunE fills in.
func newRootCmd() (*cobra.Command, *Config) {
	v := viper.New()
	cfg := &Config{}
	var (
		cfgFile string
		closer  io.Closer
	)

	root := &cobra.Command{
		Use:          "paged",
		Short:        "Paginate and paint laid-out HTML box trees",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			if err := v.Unmarshal(cfg); err != nil {
				return fmt.Errorf("decode config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			l, c, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			closer = c
			paged.SetLogger(l)
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			paged.SetLogger(nil)
			if closer != nil {
				return closer.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default ./paged.yaml when present)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "stderr log format: text or json")
	pf.String("log-file", "", "also write JSON logs to this rotating file")
	pf.String("format", render.DefaultFormat, "page format: "+strings.Join(render.FormatNames(), ", "))
	pf.Float64("width", 0, "page width in CSS pixels (overrides --format)")
	pf.Float64("height", 0, "page height in CSS pixels (overrides --format)")
	pf.Float64("origin-x", 0, "document x coordinate painted at the page's left edge")
	pf.Float64("origin-y", 0, "document y coordinate of the first page")
	pf.Float64("header-height", 50, "header band height in CSS pixels")
	pf.Float64("footer-height", 50, "footer band height in CSS pixels")
	bindFlags(v, pf, map[string]string{
		"log.level":     "log-level",
		"log.format":    "log-format",
		"log.file":      "log-file",
		"format":        "format",
		"width":         "width",
		"height":        "height",
		"origin_x":      "origin-x",
		"origin_y":      "origin-y",
		"header.height": "header-height",
		"footer.height": "footer-height",
	})

	setDefaults(v)
	v.SetEnvPrefix("PAGED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	root.AddCommand(newRenderCmd(v, cfg), newInspectCmd(cfg))
	return root, cfg
}

// readConfig loads cfgFile, or ./paged.{yaml,json,toml} when it exists.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("paged")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// bindFlags binds each config key to its flag.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("paged: bind flag %s: %v", name, err))
		}
	}
}

// readTree decodes the box tree from the named file, or stdin for "-" or
// no argument.
func readTree(cmd *cobra.Command, args []string) (*box.Box, error) {
	if len(args) == 0 || args[0] == "-" {
		return box.Decode(cmd.InOrStdin())
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return box.Decode(f)
}
