package isosurface

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// ExtractSurface polygonizes every cube of a gridSize³ lattice sampled from
// field and returns the resulting mesh. Cubes are visited z, then y, then x,
// and the mesh keeps that order.
func ExtractSurface(field ScalarField, gridSize int, iso float64) (*Mesh, error) {
	cfg := DefaultConfig()
	cfg.GridSize = gridSize
	cfg.IsoLevel = iso
	cfg.Workers = 1
	return Extract(context.Background(), field, cfg)
}

// Extract is ExtractSurface with full settings. The z range of cubes is
// split into slabs processed concurrently; slab meshes are merged in slab
// order so the output does not depend on cfg.Workers. ctx is checked between
// rows of cubes.
func Extract(ctx context.Context, field ScalarField, cfg Config) (*Mesh, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if field == nil {
		return nil, fmt.Errorf("%w: nil field", ErrInvalidConfiguration)
	}

	start := time.Now()
	cells := cfg.GridSize - 1
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	slabs := splitSlabs(cells, workers)
	Logger().Debug("extracting surface",
		"gridSize", cfg.GridSize,
		"isoLevel", cfg.IsoLevel,
		"cubes", cells*cells*cells,
		"slabs", len(slabs))

	parts := make([]*Mesh, len(slabs))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range slabs {
		i, s := i, s
		g.Go(func() error {
			m, err := extractSlab(gctx, field, cfg, s)
			if err != nil {
				return err
			}
			parts[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := newMeshFor(cfg)
	for _, p := range parts {
		out.Append(p)
	}
	Logger().Info("surface extracted",
		"triangles", out.TriangleCount(),
		"vertices", out.VertexCount(),
		"elapsed", time.Since(start))
	return out, nil
}

func newMeshFor(cfg Config) *Mesh {
	if cfg.Weld {
		return NewWeldedMesh()
	}
	return NewMesh()
}

// slab is a half open range of cube z coordinates.
type slab struct {
	z0, z1 int
}

func splitSlabs(cells, workers int) []slab {
	if workers < 1 {
		workers = 1
	}
	if workers > cells {
		workers = cells
	}
	slabs := make([]slab, 0, workers)
	size, rest := cells/workers, cells%workers
	z := 0
	for i := 0; i < workers; i++ {
		n := size
		if i < rest {
			n++
		}
		slabs = append(slabs, slab{z0: z, z1: z + n})
		z += n
	}
	return slabs
}

// sampleLayer reads the n×n samples of lattice plane z, x fastest.
func sampleLayer(field ScalarField, n, z int, dst []Corner) error {
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c, err := field.Sample(x, y, z)
			if err != nil {
				return fmt.Errorf("sampling field: %w", err)
			}
			dst[x+y*n] = c
		}
	}
	return nil
}

func extractSlab(ctx context.Context, field ScalarField, cfg Config, s slab) (*Mesh, error) {
	n := cfg.GridSize
	lower := make([]Corner, n*n)
	upper := make([]Corner, n*n)
	if err := sampleLayer(field, n, s.z0, lower); err != nil {
		return nil, err
	}

	m := newMeshFor(cfg)
	tris := make([]Triangle, 0, 5)
	for z := s.z0; z < s.z1; z++ {
		if err := sampleLayer(field, n, z+1, upper); err != nil {
			return nil, err
		}
		layers := [2][]Corner{lower, upper}
		for y := 0; y < n-1; y++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for x := 0; x < n-1; x++ {
				var cube Cube
				for k := range cube {
					off := cornerOffsets[k]
					cube[k] = layers[off[2]][(x+off[0])+(y+off[1])*n]
				}
				tris = AppendPolygons(tris[:0], ClassicTables, cube, cfg.IsoLevel)
				for _, t := range tris {
					m.AddTriangle(t)
				}
			}
		}
		lower, upper = upper, lower
	}
	return m, nil
}
