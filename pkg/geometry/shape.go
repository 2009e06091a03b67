package geometry

import "github.com/df07/literal-raytracer/pkg/core"

// HitRecord contains information about a ray-shape intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, facing the incoming ray
	T         float64   // Distance along the (unit) ray direction
	UV        core.Vec2 // Surface coordinates for texture lookup
	FrontFace bool      // Whether the ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(direction, outwardNormal core.Vec3) {
	h.FrontFace = direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(origin, direction core.Vec3, tMin, tMax float64) (HitRecord, bool)
}
