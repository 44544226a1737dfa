package viewer

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// shade darkens col for a face at point with unit normal, both in camera
// space. Light comes from the eye: an ambient term plus a spotlight along the
// view axis. Faces are lit from either side.
func shade(point, normal mgl64.Vec3, col color.RGBA) color.RGBA {
	const ambientLight = 0.65
	const spotlightConePower = 10.0
	const spotlightLightAmount = 1.0 - ambientLight

	diffuseFactor := math.Abs(normal[2])

	spotlightFactor := 1.0
	if l := point.Len(); l > 0 {
		cosAngle := point[2] / l
		if cosAngle < 0 {
			cosAngle = 0
		}
		spotlightFactor = math.Pow(cosAngle, spotlightConePower)
	}

	finalBrightness := ambientLight + diffuseFactor*spotlightFactor*spotlightLightAmount

	c := 240 - int(finalBrightness*240)
	min := 7
	return color.RGBA{
		R: uint8(clamp(int(col.R)-c, min, 255)),
		G: uint8(clamp(int(col.G)-c, min, 255)),
		B: uint8(clamp(int(col.B)-c, min, 255)),
		A: col.A,
	}
}
