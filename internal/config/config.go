// Package config provides configuration management for chainfmt.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"chainfmt/pkg/chain"
	"chainfmt/pkg/chain/render"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Render RenderConfig `mapstructure:"render"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds web-surface configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RenderConfig holds output styling configuration.
type RenderConfig struct {
	SheetName   string        `mapstructure:"sheet_name"`
	HighlightK  int           `mapstructure:"highlight_k"`
	MaxColWidth float64       `mapstructure:"max_col_width"`
	Palette     PaletteConfig `mapstructure:"palette"`
}

// PaletteConfig holds the report colours as RRGGBB strings. The OI-change
// and notional-flow palettes are deliberately overridable: the two original
// front-ends of this tool shipped them swapped, and until the owner settles
// the question a deployment can pin either pairing here.
type PaletteConfig struct {
	OIChange      ScaleConfig `mapstructure:"oi_change"`
	Money         ScaleConfig `mapstructure:"money"`
	OpenInterest  ScaleConfig `mapstructure:"open_interest"`
	NegativeFont  string      `mapstructure:"negative_font"`
	HeaderFill    string      `mapstructure:"header_fill"`
	HeaderFont    string      `mapstructure:"header_font"`
	CallHighlight string      `mapstructure:"call_highlight"`
	PutHighlight  string      `mapstructure:"put_highlight"`
}

// ScaleConfig holds the three colours of one gradient.
type ScaleConfig struct {
	Min string `mapstructure:"min"`
	Mid string `mapstructure:"mid"`
	Max string `mapstructure:"max"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chainfmt"
	}
	return filepath.Join(home, ".config", "chainfmt")
}

// Load reads configuration from dir (DefaultConfigDir when empty). A missing
// config file is not an error; defaults cover every setting.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	pal := render.DefaultPalette()

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("render.sheet_name", "OptionChain")
	v.SetDefault("render.highlight_k", render.DefaultHighlightK)
	v.SetDefault("render.max_col_width", 25)

	setScaleDefaults(v, "render.palette.oi_change", pal.OIChange)
	setScaleDefaults(v, "render.palette.money", pal.Money)
	setScaleDefaults(v, "render.palette.open_interest", pal.OpenInterest)
	v.SetDefault("render.palette.negative_font", pal.NegativeFont.Hex())
	v.SetDefault("render.palette.header_fill", pal.HeaderFill.Hex())
	v.SetDefault("render.palette.header_font", pal.HeaderFont.Hex())
	v.SetDefault("render.palette.call_highlight", pal.CallHighlight.Hex())
	v.SetDefault("render.palette.put_highlight", pal.PutHighlight.Hex())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", false)
	v.SetDefault("log.file_path", filepath.Join(DefaultConfigDir(), "logs", "chainfmt.log"))
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
}

func setScaleDefaults(v *viper.Viper, key string, sc render.Scale) {
	v.SetDefault(key+".min", sc.Min.Hex())
	v.SetDefault(key+".mid", sc.Mid.Hex())
	v.SetDefault(key+".max", sc.Max.Hex())
}

// RenderOptions converts the configured styling settings into the options
// the pipeline consumes.
func (c *Config) RenderOptions() (chain.RenderOptions, error) {
	ro := chain.DefaultRenderOptions()
	if c.Render.SheetName != "" {
		ro.SheetName = c.Render.SheetName
	}
	if c.Render.HighlightK > 0 {
		ro.HighlightK = c.Render.HighlightK
	}
	if c.Render.MaxColWidth > 0 {
		ro.MaxColWidth = c.Render.MaxColWidth
	}

	pal, err := c.Render.Palette.Palette()
	if err != nil {
		return ro, err
	}
	ro.Palette = pal
	return ro, nil
}

// Palette converts the configured colours into a render palette, keeping the
// default anchor policies: OI change stays zero-anchored, the notional-flow
// and open-interest pairs stay median-anchored.
func (p PaletteConfig) Palette() (render.Palette, error) {
	pal := render.DefaultPalette()

	if err := applyScale(&pal.OIChange, p.OIChange); err != nil {
		return pal, fmt.Errorf("palette oi_change: %w", err)
	}
	if err := applyScale(&pal.Money, p.Money); err != nil {
		return pal, fmt.Errorf("palette money: %w", err)
	}
	if err := applyScale(&pal.OpenInterest, p.OpenInterest); err != nil {
		return pal, fmt.Errorf("palette open_interest: %w", err)
	}

	fields := []struct {
		dst *render.RGB
		hex string
		key string
	}{
		{&pal.NegativeFont, p.NegativeFont, "negative_font"},
		{&pal.HeaderFill, p.HeaderFill, "header_fill"},
		{&pal.HeaderFont, p.HeaderFont, "header_font"},
		{&pal.CallHighlight, p.CallHighlight, "call_highlight"},
		{&pal.PutHighlight, p.PutHighlight, "put_highlight"},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := render.ParseHex(f.hex)
		if err != nil {
			return pal, fmt.Errorf("palette %s: %w", f.key, err)
		}
		*f.dst = c
	}
	return pal, nil
}

func applyScale(dst *render.Scale, sc ScaleConfig) error {
	for _, part := range []struct {
		dst *render.RGB
		hex string
	}{
		{&dst.Min, sc.Min},
		{&dst.Mid, sc.Mid},
		{&dst.Max, sc.Max},
	} {
		if part.hex == "" {
			continue
		}
		c, err := render.ParseHex(part.hex)
		if err != nil {
			return err
		}
		*part.dst = c
	}
	return nil
}
