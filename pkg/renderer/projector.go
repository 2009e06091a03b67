package renderer

import (
	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
)

// Projector clips world segments against the camera near plane and maps
// them into screen space
type Projector struct {
	camera *geometry.Camera
}

// NewProjector creates a projector for the camera
func NewProjector(camera *geometry.Camera) *Projector {
	return &Projector{camera: camera}
}

// Project builds the screen segment for a ray that travelled from its
// origin to end. It reports false when the whole segment lies behind the
// near plane.
func (p *Projector) Project(ray core.Ray, end core.Vec3, normalizedIntensity float64) (ScreenSegment, bool) {
	start, clippedEnd, startRatio, endRatio, ok := p.clip(ray.Origin, end)
	if !ok {
		return ScreenSegment{}, false
	}

	length := end.Subtract(ray.Origin).Length()
	screenStart := p.ToScreen(start)
	screenEnd := p.ToScreen(clippedEnd)

	return ScreenSegment{
		Start:                    screenStart,
		Delta:                    screenEnd.Subtract(screenStart),
		Color:                    ray.Color,
		WorldLength:              length,
		NormalizedStartIntensity: normalizedIntensity,
		StartDistance:            startRatio * length,
		EndDistance:              endRatio * length,
	}, true
}

// ToScreen maps a world point to (x, y, depth code). Points behind the
// camera have their xy mirrored back through the screen centre.
func (p *Projector) ToScreen(world core.Vec3) core.Vec3 {
	s := p.camera.WorldToScreen(world)
	if s.Z < 0 {
		s.X = float64(p.camera.Width()) - s.X
		s.Y = float64(p.camera.Height()) - s.Y
	}
	s.Z = InverseLinearEyeDepth(s.Z, p.camera.Near(), p.camera.Far())
	return s
}

// clip returns the part of start..end in front of the near plane and the
// fractions along the original segment where it begins and ends
func (p *Projector) clip(start, end core.Vec3) (core.Vec3, core.Vec3, float64, float64, bool) {
	near := p.camera.Near()
	zs := p.camera.ToLocal(start).Z
	ze := p.camera.ToLocal(end).Z

	startBehind := zs < near
	endBehind := ze < near
	if startBehind && endBehind {
		return core.Vec3{}, core.Vec3{}, 0, 0, false
	}

	startRatio, endRatio := 0.0, 1.0
	if startBehind || endBehind {
		crossing := (near - zs) / (ze - zs)
		if startBehind {
			startRatio = crossing
		} else {
			endRatio = crossing
		}
	}

	return start.Lerp(end, startRatio), start.Lerp(end, endRatio), startRatio, endRatio, true
}

// InverseLinearEyeDepth maps eye depth d to a code that is 0 at the near
// plane and 1 at the far plane, linear in 1/d. Non-positive depths map to 0.
func InverseLinearEyeDepth(d, near, far float64) float64 {
	if d <= 0 {
		return 0
	}
	return ((1 / d) - (1 / near)) / ((1 / far) - (1 / near))
}

// inverseDepthFromCode inverts InverseLinearEyeDepth, returning 1/d
func inverseDepthFromCode(code, near, far float64) float64 {
	return 1/near + code*((1/far)-(1/near))
}
