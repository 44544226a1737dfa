package main

import (
	"context"
	"math"
	"testing"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/isosurface"
)

func TestDefaultConfigFor(t *testing.T) {
	terrain := defaultConfigFor("terrain")
	assert.Equal(t, 64, terrain.GridSize)
	assert.Equal(t, 0.5, terrain.IsoLevel)
	assert.Equal(t, 32, defaultConfigFor("sphere").GridSize)
	assert.NoError(t, defaultConfigFor("anything").Validate())
}

func TestNewFieldUnknown(t *testing.T) {
	_, err := newField("torus", isosurface.DefaultConfig(), 1)
	assert.Error(t, err)
}

func TestSphereFieldIsCentred(t *testing.T) {
	cfg := defaultConfigFor("sphere")
	cfg.GridSize = 16
	field, err := newField("sphere", cfg, 1)
	require.NoError(t, err)

	m, err := isosurface.Extract(context.Background(), field, cfg)
	require.NoError(t, err)
	require.NotZero(t, m.TriangleCount())

	radius := 7.5 * 0.7
	for _, p := range m.Positions {
		assert.InDelta(t, radius, p.Len(), 0.5)
	}
	min, max := m.Bounds()
	assert.InDelta(t, 0, min.Add(max).Len(), 1e-9)
}

func TestPlaneFieldSitsAtZero(t *testing.T) {
	cfg := defaultConfigFor("plane")
	cfg.GridSize = 8
	cfg.IsoLevel = 0.3
	field, err := newField("plane", cfg, 1)
	require.NoError(t, err)

	m, err := isosurface.Extract(context.Background(), field, cfg)
	require.NoError(t, err)
	require.NotZero(t, m.TriangleCount())
	for _, p := range m.Positions {
		assert.InDelta(t, 0, p[1], 1e-9)
	}
}

func TestNewFieldKeepsExplicitOrigin(t *testing.T) {
	cfg := isosurface.DefaultConfig()
	cfg.Origin = [3]float64{1, 2, 3}
	cfg.CellSize = 0.5
	field, err := newField("sphere", cfg, 1)
	require.NoError(t, err)

	c, err := field.Sample(2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{2, 2, 3}, c.Position)
}

func TestTerrainDensityIsSeeded(t *testing.T) {
	a := terrainDensity(perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, 42))
	b := terrainDensity(perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, 42))

	for _, p := range []mgl64.Vec3{{5, 7, 3}, {-11.5, 0, 20}, {30, -30, 1}} {
		va, vb := a(p), b(p)
		assert.Equal(t, va, vb)
		assert.False(t, math.IsNaN(va) || math.IsInf(va, 0))
	}
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := loadConfig("isomesh.toml", "sphere")
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.GridSize)
	assert.Equal(t, 0.5, cfg.IsoLevel)
	assert.True(t, cfg.Weld)

	cfg, err = loadConfig("", "terrain")
	require.NoError(t, err)
	assert.Equal(t, defaultConfigFor("terrain"), cfg)
}
