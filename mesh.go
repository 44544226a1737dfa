package isosurface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is the extraction output: a position buffer and an index buffer where
// every 3 consecutive indices form one triangle.
type Mesh struct {
	Positions []mgl64.Vec3
	Indices   []uint32

	// pointIndex is non-nil for welded meshes and maps a position to the
	// index of its first occurrence.
	pointIndex map[mgl64.Vec3]uint32
}

// NewMesh returns an empty mesh that stores three fresh vertices per
// triangle.
func NewMesh() *Mesh {
	return &Mesh{}
}

// NewWeldedMesh returns an empty mesh that shares identical positions
// between triangles.
func NewWeldedMesh() *Mesh {
	return &Mesh{pointIndex: make(map[mgl64.Vec3]uint32)}
}

// Welded reports whether the mesh deduplicates positions.
func (m *Mesh) Welded() bool {
	return m.pointIndex != nil
}

// AddPoint appends p, or returns the existing index of p on a welded mesh.
func (m *Mesh) AddPoint(p mgl64.Vec3) uint32 {
	if m.pointIndex != nil {
		if index, found := m.pointIndex[p]; found {
			return index
		}
	}
	index := uint32(len(m.Positions))
	m.Positions = append(m.Positions, p)
	if m.pointIndex != nil {
		m.pointIndex[p] = index
	}
	return index
}

// AddTriangle appends t keeping its vertex order.
func (m *Mesh) AddTriangle(t Triangle) {
	a := m.AddPoint(t[0])
	b := m.AddPoint(t[1])
	c := m.AddPoint(t[2])
	m.Indices = append(m.Indices, a, b, c)
}

// Append adds every triangle of other after the ones already in m.
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	if m.pointIndex == nil {
		offset := uint32(len(m.Positions))
		m.Positions = append(m.Positions, other.Positions...)
		for _, i := range other.Indices {
			m.Indices = append(m.Indices, i+offset)
		}
		return
	}
	for i := 0; i < other.TriangleCount(); i++ {
		m.AddTriangle(other.Triangle(i))
	}
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0 && len(m.Indices) == 0
}

// Triangle returns triangle i resolved to positions.
func (m *Mesh) Triangle(i int) Triangle {
	return Triangle{
		m.Positions[m.Indices[i*3]],
		m.Positions[m.Indices[i*3+1]],
		m.Positions[m.Indices[i*3+2]],
	}
}

// Triangles resolves every face of the mesh.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, m.TriangleCount())
	for i := range out {
		out[i] = m.Triangle(i)
	}
	return out
}

// PositionBuffer flattens positions to x, y, z float32 triples for upload.
func (m *Mesh) PositionBuffer() []float32 {
	buf := make([]float32, 0, len(m.Positions)*3)
	for _, p := range m.Positions {
		buf = append(buf, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	return buf
}

// FaceNormals returns one unit normal per triangle.
func (m *Mesh) FaceNormals() []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, m.TriangleCount())
	for i := range normals {
		normals[i] = m.Triangle(i).Normal()
	}
	return normals
}

// Bounds returns the axis aligned box enclosing all positions. An empty mesh
// gives two zero vectors.
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Positions) == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], p[k])
			max[k] = math.Max(max[k], p[k])
		}
	}
	return min, max
}

// Centre moves all points so the centre of the bounding box is at the origin
// and returns the offset that was subtracted.
func (m *Mesh) Centre() mgl64.Vec3 {
	if len(m.Positions) == 0 {
		return mgl64.Vec3{}
	}
	min, max := m.Bounds()
	centre := min.Add(max).Mul(0.5)
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Sub(centre)
	}
	if m.pointIndex != nil {
		m.reindex()
	}
	return centre
}

func (m *Mesh) reindex() {
	m.pointIndex = make(map[mgl64.Vec3]uint32, len(m.Positions))
	for i, p := range m.Positions {
		if _, found := m.pointIndex[p]; !found {
			m.pointIndex[p] = uint32(i)
		}
	}
}

// Copy returns a deep copy of the mesh.
func (m *Mesh) Copy() *Mesh {
	c := &Mesh{
		Positions: append([]mgl64.Vec3(nil), m.Positions...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	if m.pointIndex != nil {
		c.pointIndex = make(map[mgl64.Vec3]uint32, len(m.pointIndex))
		for key, value := range m.pointIndex {
			c.pointIndex[key] = value
		}
	}
	return c
}
