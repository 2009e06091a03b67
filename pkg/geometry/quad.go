package geometry

import (
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // U × V, normalized
	D      float64   // Plane equation constant: normal · corner
	W      core.Vec3 // Cached n / (n · n) for planar coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      n.Multiply(1 / n.Dot(n)),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(origin, direction core.Vec3, tMin, tMax float64) (HitRecord, bool) {
	denominator := direction.Dot(q.Normal)

	// Parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return HitRecord{}, false
	}

	t := (q.D - origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	point := origin.Add(direction.Multiply(t))
	planar := point.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return HitRecord{}, false
	}

	record := HitRecord{
		T:     t,
		Point: point,
		UV:    core.NewVec2(alpha, beta),
	}
	record.SetFaceNormal(direction, q.Normal)
	return record, true
}

// BoundingBox returns the box around the four corners, padded so flat
// quads keep a non-zero thickness
func (q *Quad) BoundingBox() AABB {
	return NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(1e-4)
}
