package viewer

import (
	"github.com/go-gl/mathgl/mgl64"
)

const nearPlaneZ = 0.1

// conversionFactor scales projected coordinates relative to the screen width.
const conversionFactor = 1.1

// transformPoint applies m to p as a point.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, m)
}

// transformNormal applies the rotation part of m to n.
func transformNormal(m mgl64.Mat4, n mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformNormal(n, m)
}

// toScreen projects a camera space point. y is flipped because screen rows
// grow downwards.
func toScreen(width, height float64, p mgl64.Vec3) (float32, float32) {
	f := conversionFactor * width
	x := f*p[0]/p[2] + width/2
	y := -f*p[1]/p[2] + height/2
	return float32(x), float32(y)
}

// fromScreen inverts toScreen for a known depth z.
func fromScreen(width, height float64, sx, sy, z float64) (float64, float64) {
	f := conversionFactor * width
	x := (sx - width/2) * z / f
	y := -(sy - height/2) * z / f
	return x, y
}

// behindNearPlane reports whether any vertex is too close to project.
func behindNearPlane(pts [3]mgl64.Vec3) bool {
	for _, p := range pts {
		if p[2] < nearPlaneZ {
			return true
		}
	}
	return false
}
