package isosurface

import "github.com/go-gl/mathgl/mgl64"

// edgeVertex is one slot of the per-cube vertex cache. Only slots whose edge
// bit is set in the edge mask are filled.
type edgeVertex struct {
	pos mgl64.Vec3
	set bool
}

// Polygonize returns the triangles approximating the iso-surface inside
// cube, using the classic tables. Cubes entirely above or below iso give nil.
func Polygonize(cube Cube, iso float64) []Triangle {
	return AppendPolygons(nil, ClassicTables, cube, iso)
}

// AppendPolygons appends the triangles of cube to dst using tables and
// returns the extended slice.
//
// It panics with a *TableError if the triangulation row names an edge the
// edge mask left inactive.
func AppendPolygons(dst []Triangle, tables LookupTable, cube Cube, iso float64) []Triangle {
	index := Classify(cube, iso)
	if index == 0 || index == 255 {
		return dst
	}

	var verts [12]edgeVertex
	mask := tables.EdgeMask(index)
	for e := 0; e < 12; e++ {
		if mask&(1<<e) == 0 {
			continue
		}
		c := tables.EdgeCorners(e)
		verts[e] = edgeVertex{pos: InterpolateEdge(cube[c[0]], cube[c[1]], iso), set: true}
	}

	row := tables.TriangleEdges(index)
	for i := 0; i+2 < len(row) && row[i] != NoEdge; i += 3 {
		var t Triangle
		for j := 0; j < 3; j++ {
			e := int(row[i+j])
			if e < 0 || e >= len(verts) || !verts[e].set {
				panic(&TableError{Index: index, Edge: e})
			}
			t[j] = verts[e].pos
		}
		dst = append(dst, t)
	}
	return dst
}
