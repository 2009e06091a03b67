package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SurfaceID identifies a surface in the host scene.
// Materials are resolved and cached per surface.
type SurfaceID int

// Hit is the result of a single scene query. It is not retained past the
// tick that produced it.
type Hit struct {
	Point    Vec3
	Normal   Vec3 // unit, facing the incoming ray
	Distance float64
	Surface  SurfaceID
	UV       Vec2
}

// Intersector is the host's ray-scene hit test.
type Intersector interface {
	// Intersect returns the closest hit along direction within maxDistance.
	Intersect(origin, direction Vec3, maxDistance float64) (Hit, bool)
}
