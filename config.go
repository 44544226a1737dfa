package isosurface

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the extraction settings.
type Config struct {
	// GridSize is the number of samples along each axis; n samples give
	// (n-1)³ cubes.
	GridSize int `toml:"grid_size"`
	// IsoLevel is the field value the surface follows.
	IsoLevel float64 `toml:"iso_level"`
	// CellSize spaces lattice points in world units. Fields built from the
	// config use it; the walker itself takes positions from the field.
	CellSize float64 `toml:"cell_size"`
	// Origin is the world position of lattice point (0,0,0).
	Origin [3]float64 `toml:"origin"`
	// Workers caps the goroutines used by Extract. Zero means one per CPU.
	Workers int `toml:"workers"`
	// Weld shares identical vertices between triangles.
	Weld bool `toml:"weld"`
}

func DefaultConfig() Config {
	return Config{
		GridSize: 32,
		IsoLevel: 0,
		CellSize: 1,
	}
}

// Validate reports settings that cannot produce a single cube.
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("%w: grid size %d is below 2", ErrInvalidConfiguration, c.GridSize)
	}
	if math.IsNaN(c.IsoLevel) || math.IsInf(c.IsoLevel, 0) {
		return fmt.Errorf("%w: iso level %v is not finite", ErrInvalidConfiguration, c.IsoLevel)
	}
	if !(c.CellSize > 0) || math.IsInf(c.CellSize, 0) {
		return fmt.Errorf("%w: cell size %v must be positive and finite", ErrInvalidConfiguration, c.CellSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfiguration, c.Workers)
	}
	return nil
}

// ParseConfig decodes a TOML document on top of DefaultConfig. Unknown keys
// are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(fileName string) (Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return Config{}, fmt.Errorf("could not open config file %s: %w", fileName, err)
	}
	defer file.Close()

	cfg, err := ParseConfig(file)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", fileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
