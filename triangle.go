package isosurface

import "github.com/go-gl/mathgl/mgl64"

// Triangle is one emitted face. Vertex order follows the triangulation table:
// the right-hand normal points toward increasing field values.
type Triangle [3]mgl64.Vec3

// Normal returns the unit face normal, or the zero vector for a degenerate
// triangle.
func (t Triangle) Normal() mgl64.Vec3 {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// Centroid returns the average of the three vertices.
func (t Triangle) Centroid() mgl64.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Mul(1.0 / 3.0)
}

// Area returns the triangle's surface area.
func (t Triangle) Area() float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Len() / 2
}
