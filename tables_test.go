package isosurface

import "testing"

func TestEdgeMaskMatchesCornerSigns(t *testing.T) {
	for i := 0; i < 256; i++ {
		index := CubeIndex(i)
		mask := EdgeMask(index)
		for e := 0; e < 12; e++ {
			c := EdgeCorners(e)
			crossed := (i>>c[0])&1 != (i>>c[1])&1
			if got := mask&(1<<e) != 0; got != crossed {
				t.Fatalf("EdgeMask(%d) edge %d = %v, want %v", i, e, got, crossed)
			}
		}
	}
}

func TestTriangleRowsUseActiveEdges(t *testing.T) {
	for i := 0; i < 256; i++ {
		index := CubeIndex(i)
		row := TriangleEdges(index)
		mask := EdgeMask(index)

		n := 0
		for n < len(row) && row[n] != NoEdge {
			e := row[n]
			if e < 0 || e > 11 {
				t.Fatalf("case %d: entry %d = %d out of range", i, n, e)
			}
			if mask&(1<<e) == 0 {
				t.Fatalf("case %d: edge %d is used but not active", i, e)
			}
			n++
		}
		if n%3 != 0 || n > 15 {
			t.Fatalf("case %d: %d entries before the sentinel", i, n)
		}
		for k := n; k < len(row); k++ {
			if row[k] != NoEdge {
				t.Fatalf("case %d: entry %d after the sentinel is %d", i, k, row[k])
			}
		}
		if got := TriangleCount(index); got != n/3 {
			t.Errorf("TriangleCount(%d) = %d, want %d", i, got, n/3)
		}
	}
}

func TestEdgesJoinNeighbouringCorners(t *testing.T) {
	for e := 0; e < 12; e++ {
		c := EdgeCorners(e)
		a, b := CornerOffset(c[0]), CornerOffset(c[1])
		diff := 0
		for k := 0; k < 3; k++ {
			if a[k] != b[k] {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("edge %d joins corners %v and %v which differ on %d axes", e, a, b, diff)
		}
	}
}

func TestBottomFaceIsBelowTopFace(t *testing.T) {
	for k := 0; k < 4; k++ {
		bottom, top := CornerOffset(k), CornerOffset(k+4)
		if bottom[1] != 0 || top[1] != 1 || bottom[0] != top[0] || bottom[2] != top[2] {
			t.Errorf("corner %d %v is not directly below corner %d %v", k, bottom, k+4, top)
		}
	}
}

func TestKnownTableEntries(t *testing.T) {
	testCases := []struct {
		index CubeIndex
		mask  uint16
		edges []int8
	}{
		{0, 0x000, nil},
		{1, 0x109, []int8{0, 8, 3}},
		{15, 0xf00, []int8{9, 8, 10, 10, 8, 11}},
		{254, 0x109, []int8{0, 3, 8}},
		{255, 0x000, nil},
	}

	for _, tc := range testCases {
		if got := EdgeMask(tc.index); got != tc.mask {
			t.Errorf("EdgeMask(%d) = %#x, want %#x", tc.index, got, tc.mask)
		}
		row := TriangleEdges(tc.index)
		for i, e := range tc.edges {
			if row[i] != e {
				t.Errorf("TriangleEdges(%d)[%d] = %d, want %d", tc.index, i, row[i], e)
			}
		}
		if row[len(tc.edges)] != NoEdge {
			t.Errorf("TriangleEdges(%d) is not terminated after %d entries", tc.index, len(tc.edges))
		}
	}
}

func TestTriangleEdgesReturnsCopy(t *testing.T) {
	row := TriangleEdges(1)
	row[0] = 11
	if TriangleEdges(1)[0] != 0 {
		t.Fatal("modifying a returned row changed the table")
	}
}
