package main

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/isosurface"
)

const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3

	terrainScale = 32.0
)

// defaultConfigFor returns settings that frame the named field.
func defaultConfigFor(fieldName string) isosurface.Config {
	cfg := isosurface.DefaultConfig()
	switch fieldName {
	case "terrain":
		cfg.GridSize = 64
		cfg.IsoLevel = 0.5
	case "sphere", "plane":
		cfg.GridSize = 32
	}
	return cfg
}

// newField builds a density field centred on the origin, spanning the
// config's lattice.
func newField(name string, cfg isosurface.Config, seed int64) (isosurface.ScalarField, error) {
	half := float64(cfg.GridSize-1) * cfg.CellSize / 2
	origin := mgl64.Vec3{cfg.Origin[0], cfg.Origin[1], cfg.Origin[2]}
	if origin == (mgl64.Vec3{}) {
		origin = mgl64.Vec3{-half, -half, -half}
	}

	var fn func(p mgl64.Vec3) float64
	switch name {
	case "sphere":
		fn = sphereDensity(mgl64.Vec3{}, half*0.7)
	case "plane":
		fn = planeDensity(cfg.IsoLevel)
	case "terrain":
		fn = terrainDensity(perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed))
	default:
		return nil, fmt.Errorf("unknown field %q", name)
	}

	return &isosurface.FuncField{Fn: fn, Origin: origin, CellSize: cfg.CellSize}, nil
}

// sphereDensity is the signed distance to a sphere: negative inside.
func sphereDensity(centre mgl64.Vec3, radius float64) func(mgl64.Vec3) float64 {
	return func(p mgl64.Vec3) float64 {
		return p.Sub(centre).Len() - radius
	}
}

// planeDensity puts a horizontal surface at y = 0 for the given iso level.
func planeDensity(iso float64) func(mgl64.Vec3) float64 {
	return func(p mgl64.Vec3) float64 {
		return p[1] + iso
	}
}

// terrainDensity maps noise in [-1,1] to 1 - 2*noise, sampled at 1/32 scale,
// with a gentle vertical gradient so the ground has a top.
func terrainDensity(noise *perlin.Perlin) func(mgl64.Vec3) float64 {
	return func(p mgl64.Vec3) float64 {
		n := noise.Noise3D(p[0]/terrainScale, p[1]/terrainScale, p[2]/terrainScale)
		return 1 - 2*n + math.Max(0, p[1])/terrainScale
	}
}
