package material

import (
	"fmt"

	"github.com/df07/literal-raytracer/pkg/core"
)

// Cached is a resolved material ready for repeated sampling.
// Entries never change once created.
type Cached struct {
	desc Descriptor
}

// newCached validates the descriptor against the supported shading model
func newCached(desc Descriptor) (*Cached, error) {
	if desc.ShadingModel != ShadingModelLit {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShadingModel, desc.ShadingModel)
	}
	return &Cached{desc: desc}, nil
}

// Sample evaluates the material at uv
func (c *Cached) Sample(uv core.Vec2) Snapshot {
	albedo := c.desc.BaseColorTexture.Sample(uv).Color.MultiplyVec(c.desc.BaseColor)

	smoothness := c.desc.Smoothness
	metallic := c.desc.Metallic
	if c.desc.MaskTexture != nil {
		mask := c.desc.MaskTexture.Sample(uv)
		smoothness = c.desc.SmoothnessRange.Remap(mask.A)
		metallic = c.desc.MetallicRange.Remap(mask.Color.X)
	}

	return Snapshot{
		BaseColor:  albedo.Clamp(0, 1),
		Metallic:   clamp01(metallic),
		Smoothness: clamp01(smoothness),
	}
}

// Cache memoizes resolved materials per surface for the session.
// There is no eviction: one entry per distinct surface ever hit.
type Cache struct {
	source  Source
	entries map[core.SurfaceID]*Cached
}

// NewCache creates a cache over the given source
func NewCache(source Source) *Cache {
	return &Cache{
		source:  source,
		entries: make(map[core.SurfaceID]*Cached),
	}
}

// Get returns the cached material for a surface, resolving it on first use
func (c *Cache) Get(surface core.SurfaceID) (*Cached, error) {
	if cached, ok := c.entries[surface]; ok {
		return cached, nil
	}

	desc, err := c.source.MaterialOf(surface)
	if err != nil {
		return nil, fmt.Errorf("surface %d: %w", surface, err)
	}
	cached, err := newCached(desc)
	if err != nil {
		return nil, fmt.Errorf("surface %d: %w", surface, err)
	}

	c.entries[surface] = cached
	return cached, nil
}

// Sample resolves the surface and samples it at uv
func (c *Cache) Sample(surface core.SurfaceID, uv core.Vec2) (Snapshot, error) {
	cached, err := c.Get(surface)
	if err != nil {
		return Snapshot{}, err
	}
	return cached.Sample(uv), nil
}

// Len returns the number of cached surfaces
func (c *Cache) Len() int {
	return len(c.entries)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
