// Package viewer shows an extracted iso-surface in an ebiten window.
package viewer

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/isosurface"
)

const (
	screenWidth  = 800
	screenHeight = 600
	rotateStep   = 0.03
	dragScale    = 0.01
)

// Options controls how the mesh is painted.
type Options struct {
	Color         color.RGBA
	DrawOutlines  bool
	BackfaceCull  bool
	ShowStatistic bool
}

func DefaultOptions() Options {
	return Options{
		Color:         color.RGBA{R: 90, G: 200, B: 120, A: 255},
		ShowStatistic: true,
	}
}

// Viewer is an ebiten.Game drawing one mesh.
type Viewer struct {
	mesh    *isosurface.Mesh
	normals []mgl64.Vec3
	camera  *Camera
	opts    Options
	faces   *faceStore
	white   *ebiten.Image

	dragging     bool
	lastX, lastY int
}

// New prepares a viewer framing the whole mesh.
func New(mesh *isosurface.Mesh, opts Options) *Viewer {
	min, max := mesh.Bounds()
	centre := min.Add(max).Mul(0.5)
	radius := max.Sub(min).Len() / 2
	if radius == 0 {
		radius = 1
	}
	log.Printf("Viewer: %d triangles, radius %.2f", mesh.TriangleCount(), radius)

	return &Viewer{
		mesh:    mesh,
		normals: mesh.FaceNormals(),
		camera:  NewCamera(centre, radius*2.5),
		opts:    opts,
		faces:   newFaceStore(mesh.TriangleCount()),
	}
}

// Camera returns the orbit camera so callers can set an initial view.
func (v *Viewer) Camera() *Camera {
	return v.camera
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run(title string) error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

func (v *Viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		v.camera.AddAngle(0, rotateStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		v.camera.AddAngle(0, -rotateStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		v.camera.AddAngle(rotateStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		v.camera.AddAngle(-rotateStep, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		v.opts.DrawOutlines = !v.opts.DrawOutlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.opts.BackfaceCull = !v.opts.BackfaceCull
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		v.camera.Zoom(math.Pow(0.9, dy))
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if v.dragging {
			v.camera.AddAngle(float64(y-v.lastY)*dragScale, float64(v.lastX-x)*dragScale)
		}
		v.dragging = true
	} else {
		v.dragging = false
	}
	v.lastX, v.lastY = x, y
	return nil
}

// collectFaces transforms every triangle into camera space, drops those that
// cross the near plane or face away when culling, and sorts back to front.
func (v *Viewer) collectFaces() {
	m := v.camera.Matrix()
	v.faces.reset()
	for i := 0; i < v.mesh.TriangleCount(); i++ {
		t := v.mesh.Triangle(i)
		pts := [3]mgl64.Vec3{
			transformPoint(m, t[0]),
			transformPoint(m, t[1]),
			transformPoint(m, t[2]),
		}
		if behindNearPlane(pts) {
			continue
		}
		n := transformNormal(m, v.normals[i])
		if v.opts.BackfaceCull && n.Dot(pts[0]) >= 0 {
			continue
		}
		v.faces.addFace(pts, n)
	}
	v.faces.sortByDistance()
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.white == nil {
		v.white = whitePixel()
	}
	screen.Fill(color.RGBA{R: 20, G: 20, B: 30, A: 255})

	v.collectFaces()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	xp := make([]float32, 3)
	yp := make([]float32, 3)
	outline := color.RGBA{R: 30, G: 30, B: 30, A: 120}
	for _, f := range v.faces.faces {
		for k, p := range f.points {
			xp[k], yp[k] = toScreen(float64(w), float64(h), p)
		}
		fillConvexPolygon(screen, v.white, xp, yp, shade(f.points[0], f.normal, v.opts.Color))
		if v.opts.DrawOutlines {
			drawPolygonOutline(screen, v.white, xp, yp, 1.0, outline)
		}
	}

	if v.opts.ShowStatistic {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %0.1f  faces %d/%d\narrows/drag rotate, wheel zoom, O outlines, C culling",
			ebiten.ActualTPS(), v.faces.faceCount(), v.mesh.TriangleCount()))
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
