package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainfmt/pkg/chain/render"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "OptionChain", cfg.Render.SheetName)
	assert.Equal(t, render.DefaultHighlightK, cfg.Render.HighlightK)
	assert.Equal(t, float64(25), cfg.Render.MaxColWidth)
	assert.Equal(t, "info", cfg.Log.Level)

	ro, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultPalette(), ro.Palette)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  addr: ":9999"
render:
  sheet_name: Chain
  highlight_k: 6
  palette:
    oi_change:
      min: "9DC3E6"
      mid: "FFFFFF"
      max: "1F4E79"
    call_highlight: "ABCDEF"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "Chain", cfg.Render.SheetName)
	assert.Equal(t, 6, cfg.Render.HighlightK)
	assert.Equal(t, "debug", cfg.Log.Level)

	ro, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, "Chain", ro.SheetName)
	assert.Equal(t, 6, ro.HighlightK)

	// The swapped palette overrides only the colours, not the anchor policy.
	assert.Equal(t, render.AnchorZero, ro.Palette.OIChange.Anchor)
	assert.Equal(t, "9DC3E6", ro.Palette.OIChange.Min.Hex())
	assert.Equal(t, "ABCDEF", ro.Palette.CallHighlight.Hex())
	// Untouched colours keep their defaults.
	assert.Equal(t, render.DefaultPalette().PutHighlight, ro.Palette.PutHighlight)
}

func TestLoadBadColour(t *testing.T) {
	dir := t.TempDir()
	yaml := `
render:
  palette:
    negative_font: "not-a-colour"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	_, err = cfg.RenderOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative_font")
}
