package isosurface

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"grid size zero", func(c *Config) { c.GridSize = 0 }},
		{"grid size one", func(c *Config) { c.GridSize = 1 }},
		{"grid size negative", func(c *Config) { c.GridSize = -4 }},
		{"iso NaN", func(c *Config) { c.IsoLevel = math.NaN() }},
		{"iso infinite", func(c *Config) { c.IsoLevel = math.Inf(1) }},
		{"cell size zero", func(c *Config) { c.CellSize = 0 }},
		{"cell size negative", func(c *Config) { c.CellSize = -1 }},
		{"cell size NaN", func(c *Config) { c.CellSize = math.NaN() }},
		{"cell size infinite", func(c *Config) { c.CellSize = math.Inf(1) }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)
		})
	}

	cfg := DefaultConfig()
	cfg.GridSize = 2
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
grid_size = 48
iso_level = 0.5
origin = [-24.0, -24.0, -24.0]
workers = 4
weld = true
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		GridSize: 48,
		IsoLevel: 0.5,
		CellSize: 1,
		Origin:   [3]float64{-24, -24, -24},
		Workers:  4,
		Weld:     true,
	}, cfg)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig(strings.NewReader(`grid_sise = 48`))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = ParseConfig(strings.NewReader(`grid_size = "big"`))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("grid_size = 10\ncell_size = 0.25\n"), 0o644))
	cfg, err := LoadConfig(good)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.GridSize)
	assert.Equal(t, 0.25, cfg.CellSize)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("grid_size = 1\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
