package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits a target point. Camera space has x right, y up and z pointing
// away from the viewer.
type Camera struct {
	Target   mgl64.Vec3
	Distance float64
	Yaw      float64
	Pitch    float64
}

const maxPitch = math.Pi/2 - 0.01

func NewCamera(target mgl64.Vec3, distance float64) *Camera {
	return &Camera{Target: target, Distance: distance, Pitch: 0.4}
}

// AddAngle turns the camera around the target, keeping it off the poles.
func (c *Camera) AddAngle(pitch, yaw float64) {
	c.Yaw += yaw
	c.Pitch += pitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	} else if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Zoom scales the distance to the target by factor.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance *= factor
}

// Matrix returns the world to camera transform.
func (c *Camera) Matrix() mgl64.Mat4 {
	toTarget := mgl64.Translate3D(-c.Target[0], -c.Target[1], -c.Target[2])
	rotY := mgl64.HomogRotate3DY(c.Yaw)
	rotX := mgl64.HomogRotate3DX(c.Pitch)
	back := mgl64.Translate3D(0, 0, c.Distance)
	return back.Mul4(rotX).Mul4(rotY).Mul4(toTarget)
}
