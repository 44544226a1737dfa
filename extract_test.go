package isosurface

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingField struct {
	ScalarField
	samples atomic.Int64
}

func (c *countingField) Sample(x, y, z int) (Corner, error) {
	c.samples.Add(1)
	return c.ScalarField.Sample(x, y, z)
}

func planeField() *FuncField {
	return NewFuncField(func(p mgl64.Vec3) float64 { return p[1] })
}

func sphereField(n int, radius float64) *FuncField {
	f := NewFuncField(func(p mgl64.Vec3) float64 { return p.Len() - radius })
	half := float64(n-1) / 2
	f.Origin = mgl64.Vec3{-half, -half, -half}
	return f
}

func TestExtractRejectsInvalidConfiguration(t *testing.T) {
	for _, size := range []int{-3, 0, 1} {
		field := &countingField{ScalarField: planeField()}
		m, err := ExtractSurface(field, size, 0)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "grid size %d", size)
		assert.Nil(t, m)
		assert.Zero(t, field.samples.Load(), "grid size %d sampled the field", size)
	}

	cfg := DefaultConfig()
	cfg.IsoLevel = math.NaN()
	_, err := Extract(context.Background(), planeField(), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = Extract(context.Background(), nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestExtractUniformFieldIsEmpty(t *testing.T) {
	g := NewGrid(5)
	g.Fill(func(mgl64.Vec3) float64 { return -1 })

	m, err := ExtractSurface(g, 5, 0)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
	assert.Zero(t, m.TriangleCount())

	m, err = ExtractSurface(g, 5, -2)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestExtractSingleCube(t *testing.T) {
	g := NewGrid(2)
	for z := 0; z < 2; z++ {
		for x := 0; x < 2; x++ {
			g.Set(x, 0, z, -1)
			g.Set(x, 1, z, 1)
		}
	}

	m, err := ExtractSurface(g, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, []mgl64.Vec3{
		{1, 0.5, 0}, {0, 0.5, 0}, {1, 0.5, 1},
		{1, 0.5, 1}, {0, 0.5, 0}, {0, 0.5, 1},
	}, m.Positions)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, m.Indices)
}

func TestExtractPlane(t *testing.T) {
	m, err := ExtractSurface(planeField(), 4, 1.5)
	require.NoError(t, err)

	// Only the 3x3 cubes of the middle layer straddle y=1.5.
	require.Equal(t, 18, m.TriangleCount())
	for _, p := range m.Positions {
		assert.InDelta(t, 1.5, p[1], 1e-12)
	}
	for _, n := range m.FaceNormals() {
		assert.InDelta(t, 1, n[1], 1e-12)
	}
	min, max := m.Bounds()
	assert.Equal(t, mgl64.Vec3{0, 1.5, 0}, min)
	assert.Equal(t, mgl64.Vec3{3, 1.5, 3}, max)
}

func TestExtractVisitsCubesInOrder(t *testing.T) {
	m, err := ExtractSurface(planeField(), 4, 1.5)
	require.NoError(t, err)

	prev := -1.0
	for i := 0; i < m.TriangleCount(); i += 2 {
		c := m.Triangle(i).Centroid()
		key := math.Floor(c[2])*3 + math.Floor(c[0])
		assert.Greater(t, key, prev, "triangle %d is out of z, x order", i)
		prev = key
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	field := sphereField(14, 4.3)
	cfg := DefaultConfig()
	cfg.GridSize = 14

	for _, weld := range []bool{false, true} {
		cfg.Weld = weld
		cfg.Workers = 1
		want, err := Extract(context.Background(), field, cfg)
		require.NoError(t, err)
		require.NotZero(t, want.TriangleCount())

		for _, workers := range []int{0, 2, 3, 4, 13, 64} {
			cfg.Workers = workers
			got, err := Extract(context.Background(), field, cfg)
			require.NoError(t, err)
			assert.Equal(t, want.Positions, got.Positions, "weld %v workers %d", weld, workers)
			assert.Equal(t, want.Indices, got.Indices, "weld %v workers %d", weld, workers)
		}
	}
}

func TestExtractWeldSharesVertices(t *testing.T) {
	field := sphereField(12, 3.7)
	cfg := DefaultConfig()
	cfg.GridSize = 12
	cfg.Workers = 3

	plain, err := Extract(context.Background(), field, cfg)
	require.NoError(t, err)
	cfg.Weld = true
	welded, err := Extract(context.Background(), field, cfg)
	require.NoError(t, err)

	assert.Equal(t, plain.TriangleCount(), welded.TriangleCount())
	assert.Equal(t, 3*plain.TriangleCount(), plain.VertexCount())
	assert.Less(t, welded.VertexCount(), plain.VertexCount())
	for i := 0; i < plain.TriangleCount(); i++ {
		assert.Equal(t, plain.Triangle(i), welded.Triangle(i))
	}
}

func TestExtractSphereIsClosedAndOutward(t *testing.T) {
	const (
		n      = 12
		radius = 3.7
	)
	cfg := DefaultConfig()
	cfg.GridSize = n
	cfg.Weld = true
	cfg.Workers = 4
	m, err := Extract(context.Background(), sphereField(n, radius), cfg)
	require.NoError(t, err)
	require.NotZero(t, m.TriangleCount())

	// Every directed edge must meet its reverse exactly once.
	type edge struct{ a, b uint32 }
	directed := make(map[edge]int)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := m.Indices[i : i+3]
		for k := 0; k < 3; k++ {
			directed[edge{tri[k], tri[(k+1)%3]}]++
		}
	}
	for e, count := range directed {
		require.Equal(t, 1, count, "edge %v used %d times", e, count)
		require.Equal(t, 1, directed[edge{e.b, e.a}], "edge %v has no opposite", e)
	}
	euler := m.VertexCount() - len(directed)/2 + m.TriangleCount()
	assert.Equal(t, 2, euler)

	var volume float64
	for _, tri := range m.Triangles() {
		assert.Greater(t, tri.Normal().Dot(tri.Centroid()), 0.0, "inward facing triangle %v", tri)
		volume += tri[0].Dot(tri[1].Cross(tri[2])) / 6
	}
	want := 4.0 / 3.0 * math.Pi * radius * radius * radius
	assert.InEpsilon(t, want, volume, 0.1)
}

func TestExtractSampleUnavailable(t *testing.T) {
	g := NewGrid(4)
	g.Fill(func(p mgl64.Vec3) float64 { return p[1] })

	m, err := ExtractSurface(g, 5, 1.5)
	require.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrSampleUnavailable)

	var sampleErr *SampleError
	require.True(t, errors.As(err, &sampleErr))
	assert.Equal(t, 4, sampleErr.X)
	assert.Equal(t, 0, sampleErr.Y)
	assert.Equal(t, 0, sampleErr.Z)
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.GridSize = 8
	cfg.Workers = 2
	m, err := Extract(ctx, planeField(), cfg)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, m)
}

func TestSplitSlabs(t *testing.T) {
	testCases := []struct {
		cells, workers int
		want           []slab
	}{
		{1, 1, []slab{{0, 1}}},
		{1, 8, []slab{{0, 1}}},
		{7, 3, []slab{{0, 3}, {3, 5}, {5, 7}}},
		{6, 3, []slab{{0, 2}, {2, 4}, {4, 6}}},
		{5, 0, []slab{{0, 5}}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, splitSlabs(tc.cells, tc.workers), "cells %d workers %d", tc.cells, tc.workers)
	}
}
