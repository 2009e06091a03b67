package geometry

import (
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera is looking at
	Up     core.Vec3 // Up direction (usually (0,1,0))
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
	VFov   float64   // Vertical field of view in degrees
	Near   float64   // Near clip plane distance
	Far    float64   // Far clip plane distance
}

// DefaultCameraConfig returns a camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  400,
		Height: 300,
		VFov:   60,
		Near:   0.3,
		Far:    1000,
	}
}

// Camera is a pinhole perspective camera. Camera-local space has +z
// pointing forward; screen space has its origin at the bottom-left pixel
// corner with y up and z holding eye depth.
type Camera struct {
	config   CameraConfig
	view     mgl64.Mat4
	invView  mgl64.Mat4
	viewProj mgl64.Mat4
}

// NewCamera creates a camera from the configuration
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{config: config}
	c.update()
	return c
}

// update rebuilds the matrices
func (c *Camera) update() {
	aspect := 1.0
	if c.config.Height > 0 {
		aspect = float64(c.config.Width) / float64(c.config.Height)
	}
	c.view = mgl64.LookAtV(c.config.Center.Mgl(), c.config.LookAt.Mgl(), c.config.Up.Mgl())
	c.invView = c.view.Inv()
	proj := mgl64.Perspective(mgl64.DegToRad(c.config.VFov), aspect, c.config.Near, c.config.Far)
	c.viewProj = proj.Mul4(c.view)
}

// Resize changes the output resolution, keeping the vertical field of view
func (c *Camera) Resize(width, height int) {
	c.config.Width = width
	c.config.Height = height
	c.update()
}

// Config returns the current configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Width returns the screen width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the screen height in pixels
func (c *Camera) Height() int { return c.config.Height }

// Near returns the near clip distance
func (c *Camera) Near() float64 { return c.config.Near }

// Far returns the far clip distance
func (c *Camera) Far() float64 { return c.config.Far }

// ToLocal transforms a world point into camera-local space (+z forward)
func (c *Camera) ToLocal(world core.Vec3) core.Vec3 {
	v := mgl64.TransformCoordinate(world.Mgl(), c.view)
	return core.NewVec3(v[0], v[1], -v[2])
}

// ToWorld transforms a camera-local point back into world space
func (c *Camera) ToWorld(local core.Vec3) core.Vec3 {
	v := mgl64.TransformCoordinate(mgl64.Vec3{local.X, local.Y, -local.Z}, c.invView)
	return core.FromMgl(v)
}

// WorldToScreen projects a world point to pixel coordinates with eye
// depth in z. Points behind the camera come back with negative depth and
// their xy mirrored through the screen centre by the perspective divide.
func (c *Camera) WorldToScreen(world core.Vec3) core.Vec3 {
	clip := c.viewProj.Mul4x1(world.Mgl().Vec4(1))
	w := clip.W()
	if math.Abs(w) < 1e-12 {
		w = math.Copysign(1e-12, w)
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	return core.NewVec3(
		(ndcX*0.5+0.5)*float64(c.config.Width),
		(ndcY*0.5+0.5)*float64(c.config.Height),
		clip.W(),
	)
}

// PixelRay returns the ray from the eye through screen position (x, y),
// the inverse of WorldToScreen. The direction is unit length.
func (c *Camera) PixelRay(x, y float64) (origin, direction core.Vec3) {
	aspect := 1.0
	if c.config.Height > 0 {
		aspect = float64(c.config.Width) / float64(c.config.Height)
	}
	tanHalf := math.Tan(mgl64.DegToRad(c.config.VFov) / 2)
	ndcX := 2*x/float64(c.config.Width) - 1
	ndcY := 2*y/float64(c.config.Height) - 1

	local := core.NewVec3(ndcX*tanHalf*aspect, ndcY*tanHalf, 1)
	origin = c.config.Center
	direction = c.ToWorld(local).Subtract(origin).Normalize()
	return origin, direction
}
