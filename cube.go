package isosurface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used when a corner value sits on the iso-level or
// two corners hold the same value.
const Epsilon = 1e-5

// Corner is one lattice sample: where it is and what the field holds there.
type Corner struct {
	Position mgl64.Vec3
	Value    float64
}

// Cube holds the 8 corners of one cell in canonical order (see CornerOffset).
type Cube [8]Corner

// NewCube builds the cube whose corner 0 is at origin, spacing corners by
// size and taking values in canonical corner order.
func NewCube(origin mgl64.Vec3, size float64, values [8]float64) Cube {
	var c Cube
	for i := range c {
		off := cornerOffsets[i]
		c[i] = Corner{
			Position: origin.Add(mgl64.Vec3{float64(off[0]), float64(off[1]), float64(off[2])}.Mul(size)),
			Value:    values[i],
		}
	}
	return c
}

// Classify returns the topology case of cube. Values equal to iso count as
// not below, for every cube, so neighbouring cubes agree on shared corners.
func Classify(cube Cube, iso float64) CubeIndex {
	var index CubeIndex
	for k := range cube {
		if cube[k].Value < iso {
			index |= 1 << k
		}
	}
	return index
}

// InterpolateEdge returns the point between a and b where the field crosses
// iso, assuming the field is linear along the edge. A corner sitting on iso
// is returned as is, and so is a when both values match, so the result is
// never NaN or infinite.
func InterpolateEdge(a, b Corner, iso float64) mgl64.Vec3 {
	if cornerLess(b, a) {
		a, b = b, a
	}
	switch {
	case math.Abs(iso-a.Value) < Epsilon:
		return a.Position
	case math.Abs(iso-b.Value) < Epsilon:
		return b.Position
	case math.Abs(a.Value-b.Value) < Epsilon:
		return a.Position
	}
	mu := (iso - a.Value) / (b.Value - a.Value)
	return a.Position.Add(b.Position.Sub(a.Position).Mul(mu))
}

// cornerLess orders corners by position then value, so an edge is always
// interpolated from the same end.
func cornerLess(a, b Corner) bool {
	for i := 0; i < 3; i++ {
		if a.Position[i] != b.Position[i] {
			return a.Position[i] < b.Position[i]
		}
	}
	return a.Value < b.Value
}
