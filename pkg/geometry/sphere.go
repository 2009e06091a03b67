package geometry

import (
	"math"

	"github.com/df07/literal-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(origin, direction core.Vec3, tMin, tMax float64) (HitRecord, bool) {
	oc := origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := direction.LengthSquared()
	halfB := oc.Dot(direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return HitRecord{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearest root in range
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return HitRecord{}, false
		}
	}

	point := origin.Add(direction.Multiply(root))
	outward := point.Subtract(s.Center).Multiply(1 / s.Radius)
	record := HitRecord{
		T:     root,
		Point: point,
		UV:    sphereUV(outward),
	}
	record.SetFaceNormal(direction, outward)
	return record, true
}

// sphereUV maps a unit normal to equirectangular coordinates
func sphereUV(n core.Vec3) core.Vec2 {
	theta := math.Acos(max(-1, min(1, -n.Y)))
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned box around the sphere
func (s *Sphere) BoundingBox() AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}
