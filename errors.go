package isosurface

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned before any sampling when the
	// extraction settings cannot describe a single cube.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSampleUnavailable is returned when a field has no sample for a
	// lattice point the walker needs.
	ErrSampleUnavailable = errors.New("sample unavailable")
)

// SampleError records which lattice point could not be sampled.
type SampleError struct {
	X, Y, Z int
	Err     error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample (%d,%d,%d): %v", e.X, e.Y, e.Z, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}

// TableError is the panic value raised when a triangulation row references an
// edge whose bit is not set in the edge mask. It means the lookup tables are
// corrupt, never that the input data is bad.
type TableError struct {
	Index CubeIndex
	Edge  int
}

func (e *TableError) Error() string {
	return fmt.Sprintf("lookup table inconsistency: case %d references inactive edge %d", e.Index, e.Edge)
}
