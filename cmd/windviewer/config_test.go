package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8460", cfg.Listen)
	assert.Equal(t, [3]int{40, 30, 10}, cfg.Field.Dims)
	assert.Equal(t, uint64(198412031), cfg.Field.Seed)
	assert.Equal(t, 0.1, cfg.Trace.Radius)
	assert.Equal(t, 1000, cfg.Trace.Resolution)
	assert.Equal(t, 70.0, cfg.Trace.MaxPropagation)
}

func TestLoadConfigOverlay(t *testing.T) {
	text := `listen = ":9000"

[field]
path = "wind.vtk"

[trace]
radius = 0.5
resolution = 64

[log]
file = "windviewer.log"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "wind.vtk", cfg.Field.Path)
	assert.Equal(t, 0.5, cfg.Trace.Radius)
	assert.Equal(t, 64, cfg.Trace.Resolution)
	// untouched keys keep their defaults
	assert.Equal(t, 0.1, cfg.Trace.Step)
	assert.Equal(t, 2000, cfg.Trace.MaxSteps)
	assert.Equal(t, "windviewer.log", cfg.Log.File)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestBuildFieldSynthetic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Dims = [3]int{6, 5, 4}
	cfg.Field.Modes = 4

	g, err := cfg.BuildField()
	require.NoError(t, err)
	assert.Equal(t, 6*5*4, g.Len())

	b := g.Bounds()
	assert.Equal(t, -b.Max[0], b.Min[0])
	assert.Equal(t, -b.Max[1], b.Min[1])
}

func TestBuildFieldMissingPathIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Path = filepath.Join(t.TempDir(), "absent.vtk")

	_, err := cfg.BuildField()
	assert.Error(t, err)
}
