package geometry

import "github.com/df07/literal-raytracer/pkg/core"

// Bounded is a shape with a finite bounding box
type Bounded interface {
	Shape
	BoundingBox() AABB
}

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Items       []int // Shape indices for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Hits report the index of the shape in the slice the BVH was built from.
type BVH struct {
	Root   *BVHNode
	Center core.Vec3 // Center of the bounded world
	Radius float64   // Radius of a sphere enclosing the bounded world
	shapes []Bounded
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH over the shapes
func NewBVH(shapes []Bounded) *BVH {
	bvh := &BVH{shapes: append([]Bounded(nil), shapes...)}
	if len(shapes) == 0 {
		return bvh
	}

	items := make([]int, len(shapes))
	for i := range items {
		items[i] = i
	}
	bvh.Root = bvh.build(items)
	bvh.Center = bvh.Root.BoundingBox.Center()
	bvh.Radius = bvh.Root.BoundingBox.Max.Subtract(bvh.Center).Length()
	return bvh
}

// build recursively splits items at the midpoint of the longest axis
func (bvh *BVH) build(items []int) *BVHNode {
	box := bvh.shapes[items[0]].BoundingBox()
	for _, i := range items[1:] {
		box = box.Union(bvh.shapes[i].BoundingBox())
	}

	leaf := &BVHNode{BoundingBox: box, Items: items}
	if len(items) <= leafThreshold {
		return leaf
	}

	a := box.LongestAxis()
	lo, hi := axis(box.Min, a), axis(box.Max, a)
	if hi <= lo {
		return leaf
	}
	split := (lo + hi) * 0.5

	var left, right []int
	for _, i := range items {
		if axis(bvh.shapes[i].BoundingBox().Center(), a) < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &BVHNode{
		BoundingBox: box,
		Left:        bvh.build(left),
		Right:       bvh.build(right),
	}
}

// Hit returns the closest intersection and the index of the shape hit
func (bvh *BVH) Hit(origin, direction core.Vec3, tMin, tMax float64) (HitRecord, int, bool) {
	if bvh.Root == nil {
		return HitRecord{}, -1, false
	}
	return bvh.hitNode(bvh.Root, origin, direction, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, origin, direction core.Vec3, tMin, tMax float64) (HitRecord, int, bool) {
	if !node.BoundingBox.Hit(origin, direction, tMin, tMax) {
		return HitRecord{}, -1, false
	}

	var closest HitRecord
	index := -1
	closestSoFar := tMax

	if node.Items != nil {
		for _, i := range node.Items {
			if hit, ok := bvh.shapes[i].Hit(origin, direction, tMin, closestSoFar); ok {
				closest, index, closestSoFar = hit, i, hit.T
			}
		}
		return closest, index, index >= 0
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if hit, i, ok := bvh.hitNode(child, origin, direction, tMin, closestSoFar); ok {
			closest, index, closestSoFar = hit, i, hit.T
		}
	}
	return closest, index, index >= 0
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() AABB {
	if bvh.Root == nil {
		return AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leafNodes  int
	maxDepth   int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	var stats bvhStats
	if bvh.Root != nil {
		bvh.collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.Items != nil {
		stats.leafNodes++
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
