package core

// Ray is a single simulated light path segment travelling from a light
// source through the scene. It is queued once and consumed once.
type Ray struct {
	Origin         Vec3
	Direction      Vec3    // unit length
	Color          Vec3    // accumulated color filter, never negative
	StartIntensity float64 // intensity at Origin, never negative
	Bounces        int
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Child creates the next ray in this lineage leaving from origin
func (r Ray) Child(origin, direction, color Vec3, intensity float64) Ray {
	return Ray{
		Origin:         origin,
		Direction:      direction,
		Color:          color,
		StartIntensity: intensity,
		Bounces:        r.Bounces + 1,
	}
}
