package isosurface

import "github.com/go-gl/mathgl/mgl64"

// ScalarField supplies lattice samples to the walker. Sample must return an
// error wrapping ErrSampleUnavailable for points it cannot provide.
type ScalarField interface {
	Sample(x, y, z int) (Corner, error)
}

// Grid is a dense n×n×n block of samples laid out x fastest, then y, then z.
type Grid struct {
	Size     int
	Values   []float64
	Origin   mgl64.Vec3
	CellSize float64
}

// NewGrid returns a zeroed grid of size³ samples with unit spacing.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{
		Size:     size,
		Values:   make([]float64, size*size*size),
		CellSize: 1,
	}
}

func (g *Grid) index(x, y, z int) int {
	return x + y*g.Size + z*g.Size*g.Size
}

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.Size && y < g.Size && z < g.Size
}

// Set stores v at (x, y, z). Out of range points are ignored.
func (g *Grid) Set(x, y, z int, v float64) {
	if g.inBounds(x, y, z) {
		g.Values[g.index(x, y, z)] = v
	}
}

// At returns the raw value at (x, y, z) and whether it exists.
func (g *Grid) At(x, y, z int) (float64, bool) {
	if !g.inBounds(x, y, z) {
		return 0, false
	}
	i := g.index(x, y, z)
	if i >= len(g.Values) {
		return 0, false
	}
	return g.Values[i], true
}

// Position returns the world position of lattice point (x, y, z).
func (g *Grid) Position(x, y, z int) mgl64.Vec3 {
	return latticePosition(g.Origin, g.CellSize, x, y, z)
}

func (g *Grid) Sample(x, y, z int) (Corner, error) {
	v, ok := g.At(x, y, z)
	if !ok {
		return Corner{}, &SampleError{X: x, Y: y, Z: z, Err: ErrSampleUnavailable}
	}
	return Corner{Position: g.Position(x, y, z), Value: v}, nil
}

// Fill evaluates fn at every lattice position and stores the result.
func (g *Grid) Fill(fn func(p mgl64.Vec3) float64) {
	for z := 0; z < g.Size; z++ {
		for y := 0; y < g.Size; y++ {
			for x := 0; x < g.Size; x++ {
				g.Values[g.index(x, y, z)] = fn(g.Position(x, y, z))
			}
		}
	}
}

// FuncField samples a density function on an unbounded lattice.
type FuncField struct {
	Fn       func(p mgl64.Vec3) float64
	Origin   mgl64.Vec3
	CellSize float64
}

// NewFuncField returns a field sampling fn with unit spacing from the origin.
func NewFuncField(fn func(p mgl64.Vec3) float64) *FuncField {
	return &FuncField{Fn: fn, CellSize: 1}
}

func (f *FuncField) Sample(x, y, z int) (Corner, error) {
	if f.Fn == nil {
		return Corner{}, &SampleError{X: x, Y: y, Z: z, Err: ErrSampleUnavailable}
	}
	p := latticePosition(f.Origin, f.CellSize, x, y, z)
	return Corner{Position: p, Value: f.Fn(p)}, nil
}

func latticePosition(origin mgl64.Vec3, cell float64, x, y, z int) mgl64.Vec3 {
	return origin.Add(mgl64.Vec3{float64(x), float64(y), float64(z)}.Mul(cell))
}
