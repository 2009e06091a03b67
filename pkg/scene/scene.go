package scene

import (
	"fmt"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
	"github.com/df07/literal-raytracer/pkg/lights"
	"github.com/df07/literal-raytracer/pkg/material"
	"github.com/df07/literal-raytracer/pkg/renderer"
)

// hitEpsilon keeps rays leaving a surface from hitting it again
const hitEpsilon = 1e-4

// Scene contains the geometry, materials, emitters and camera setup of a
// light simulation. It answers hit tests and material lookups by surface id.
type Scene struct {
	CameraConfig geometry.CameraConfig
	Emitters     []lights.Emitter

	shapes    []geometry.Shape
	materials []material.Descriptor
	bounded   []int // surface ids of shapes in the BVH, by BVH index
	unbounded []int // surface ids of infinite shapes
	bvh       *geometry.BVH
}

// Ensure Scene satisfies the simulation's collaborators
var (
	_ core.Intersector = (*Scene)(nil)
	_ material.Source  = (*Scene)(nil)
)

// New creates an empty scene
func New(cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{CameraConfig: cameraConfig}
}

// AddShape adds a surface with its material and returns its id
func (s *Scene) AddShape(shape geometry.Shape, desc material.Descriptor) core.SurfaceID {
	id := core.SurfaceID(len(s.shapes))
	s.shapes = append(s.shapes, shape)
	s.materials = append(s.materials, desc)
	s.bvh = nil
	return id
}

// AddEmitter adds a light source
func (s *Scene) AddEmitter(e lights.Emitter) {
	s.Emitters = append(s.Emitters, e)
}

// NewGroundQuad creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	return geometry.NewQuad(corner, core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0))
}

// Preprocess builds the acceleration structure. It is called lazily by
// Intersect when shapes changed.
func (s *Scene) Preprocess() {
	s.bounded = s.bounded[:0]
	s.unbounded = s.unbounded[:0]
	var items []geometry.Bounded
	for id, shape := range s.shapes {
		if b, ok := shape.(geometry.Bounded); ok {
			items = append(items, b)
			s.bounded = append(s.bounded, id)
		} else {
			s.unbounded = append(s.unbounded, id)
		}
	}
	s.bvh = geometry.NewBVH(items)
}

// Intersect returns the closest surface hit within maxDistance
func (s *Scene) Intersect(origin, direction core.Vec3, maxDistance float64) (core.Hit, bool) {
	if s.bvh == nil {
		s.Preprocess()
	}

	record, index, ok := s.bvh.Hit(origin, direction, hitEpsilon, maxDistance)
	surface := -1
	if ok {
		surface = s.bounded[index]
		maxDistance = record.T
	}
	for _, id := range s.unbounded {
		if r, hit := s.shapes[id].Hit(origin, direction, hitEpsilon, maxDistance); hit {
			record, surface, maxDistance = r, id, r.T
		}
	}
	if surface < 0 {
		return core.Hit{}, false
	}

	return core.Hit{
		Point:    record.Point,
		Normal:   record.Normal,
		Distance: record.T * direction.Length(),
		Surface:  core.SurfaceID(surface),
		UV:       record.UV,
	}, true
}

// MaterialOf returns the descriptor of a surface
func (s *Scene) MaterialOf(surface core.SurfaceID) (material.Descriptor, error) {
	if surface < 0 || int(surface) >= len(s.materials) {
		return material.Descriptor{}, fmt.Errorf("%w: %d", material.ErrUnknownSurface, surface)
	}
	return s.materials[surface], nil
}

// Shape returns the geometry of a surface, or nil for an unknown id
func (s *Scene) Shape(surface core.SurfaceID) geometry.Shape {
	if surface < 0 || int(surface) >= len(s.shapes) {
		return nil
	}
	return s.shapes[surface]
}

// ShapeCount returns the number of surfaces in the scene
func (s *Scene) ShapeCount() int {
	return len(s.shapes)
}

// Host builds the simulation collaborators with a fresh camera sized to
// width x height
func (s *Scene) Host(width, height int) renderer.Host {
	config := s.CameraConfig
	config.Width, config.Height = width, height
	return renderer.Host{
		Emitters:    s.Emitters,
		Intersector: s,
		Materials:   s,
		Camera:      geometry.NewCamera(config),
	}
}
