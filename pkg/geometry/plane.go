package geometry

import (
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal.
// UVs tile once per world unit.
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
	u, v   core.Vec3 // in-plane basis for UVs
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	var helper core.Vec3
	if math.Abs(n.X) > 0.9 {
		helper = core.NewVec3(0, 1, 0)
	} else {
		helper = core.NewVec3(1, 0, 0)
	}
	u := helper.Cross(n).Normalize()
	return &Plane{
		Point:  point,
		Normal: n,
		u:      u,
		v:      n.Cross(u),
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(origin, direction core.Vec3, tMin, tMax float64) (HitRecord, bool) {
	denominator := direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		return HitRecord{}, false
	}

	t := p.Point.Subtract(origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	point := origin.Add(direction.Multiply(t))
	planar := point.Subtract(p.Point)
	record := HitRecord{
		T:     t,
		Point: point,
		UV:    core.NewVec2(planar.Dot(p.u), planar.Dot(p.v)),
	}
	record.SetFaceNormal(direction, p.Normal)
	return record, true
}
