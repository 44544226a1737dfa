// Command isomesh extracts an iso-surface from a built-in density field,
// writes it to a mesh file and optionally shows it.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/smasonuk/isosurface"
	"github.com/smasonuk/isosurface/viewer"
)

func main() {
	var (
		configFile = flag.String("config", "", "TOML config file, see isomesh.toml")
		fieldName  = flag.String("field", "terrain", "density field: sphere, plane or terrain")
		gridSize   = flag.Int("size", 0, "samples per axis (overrides config)")
		isoLevel   = flag.Float64("iso", 0, "iso level (overrides config)")
		cellSize   = flag.Float64("cell", 0, "cell size (overrides config)")
		workers    = flag.Int("workers", -1, "worker goroutines, 0 for one per CPU (overrides config)")
		weld       = flag.Bool("weld", false, "share identical vertices")
		seed       = flag.Int64("seed", 1234, "terrain noise seed")
		out        = flag.String("out", "", "output mesh file (.ply, .obj or .dxf)")
		view       = flag.Bool("view", false, "open the viewer")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	isosurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(*configFile, *fieldName)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.GridSize = *gridSize
		case "iso":
			cfg.IsoLevel = *isoLevel
		case "cell":
			cfg.CellSize = *cellSize
		case "workers":
			cfg.Workers = *workers
		case "weld":
			cfg.Weld = *weld
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	field, err := newField(*fieldName, cfg, *seed)
	if err != nil {
		log.Fatalf("Error creating field: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Extracting %s field: %d³ samples, iso %.3f", *fieldName, cfg.GridSize, cfg.IsoLevel)
	mesh, err := isosurface.Extract(ctx, field, cfg)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
	log.Printf("Triangles: %d", mesh.TriangleCount())
	log.Printf("Vertices: %d", mesh.VertexCount())

	if *out != "" {
		if err := isosurface.SaveMesh(mesh, *out); err != nil {
			log.Fatalf("Error saving mesh: %v", err)
		}
		log.Printf("Mesh written to %s", *out)
	}

	if *view {
		if mesh.IsEmpty() {
			log.Println("Nothing to show: the mesh is empty.")
			return
		}
		if err := viewer.New(mesh, viewer.DefaultOptions()).Run("isomesh - " + *fieldName); err != nil {
			log.Fatal(err)
		}
	}
}

func loadConfig(fileName, fieldName string) (isosurface.Config, error) {
	if fileName != "" {
		return isosurface.LoadConfig(fileName)
	}
	return defaultConfigFor(fieldName), nil
}
