package renderer

import "github.com/df07/literal-raytracer/pkg/core"

// RayQueue is a FIFO of in-flight rays backed by a growable ring buffer.
// It is owned by the simulation thread and not safe for concurrent use.
type RayQueue struct {
	rays   []core.Ray
	head   int // index of the oldest ray
	length int
}

// NewRayQueue creates a queue with room for capacity rays before growing
func NewRayQueue(capacity int) *RayQueue {
	return &RayQueue{rays: make([]core.Ray, max(capacity, 1))}
}

// Push appends a ray at the back
func (q *RayQueue) Push(ray core.Ray) {
	if q.length == len(q.rays) {
		q.grow()
	}
	q.rays[(q.head+q.length)%len(q.rays)] = ray
	q.length++
}

// Pop removes and returns the oldest ray
func (q *RayQueue) Pop() (core.Ray, bool) {
	if q.length == 0 {
		return core.Ray{}, false
	}
	ray := q.rays[q.head]
	q.head = (q.head + 1) % len(q.rays)
	q.length--
	return ray, true
}

// Len returns the number of queued rays
func (q *RayQueue) Len() int {
	return q.length
}

// Rays returns a copy of the queued rays, oldest first
func (q *RayQueue) Rays() []core.Ray {
	result := make([]core.Ray, q.length)
	for i := range result {
		result[i] = q.rays[(q.head+i)%len(q.rays)]
	}
	return result
}

// Clear removes all queued rays
func (q *RayQueue) Clear() {
	q.head = 0
	q.length = 0
}

// grow doubles the buffer, unwrapping it so head is at index 0
func (q *RayQueue) grow() {
	grown := make([]core.Ray, len(q.rays)*2)
	copy(grown, q.Rays())
	q.rays = grown
	q.head = 0
}
