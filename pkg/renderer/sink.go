package renderer

// Sink receives the segments drawn during one tick, in draw order
type Sink interface {
	Submit(segments []ScreenSegment) error
}

// Resizer is implemented by sinks that hold resolution dependent state
type Resizer interface {
	Resize(width, height int)
}

// SegmentCollector is the sink for hosts with their own line rasterizer.
// It keeps a copy of the most recent tick's segments and optionally
// forwards them.
type SegmentCollector struct {
	segments []ScreenSegment
	total    int
	forward  func([]ScreenSegment) error
}

// NewSegmentCollector creates a collector; forward may be nil
func NewSegmentCollector(forward func([]ScreenSegment) error) *SegmentCollector {
	return &SegmentCollector{forward: forward}
}

// Submit replaces the stored segments with this tick's list
func (c *SegmentCollector) Submit(segments []ScreenSegment) error {
	c.segments = append(c.segments[:0], segments...)
	c.total += len(segments)
	if c.forward != nil {
		return c.forward(c.Segments())
	}
	return nil
}

// Segments returns a copy of the last tick's segments
func (c *SegmentCollector) Segments() []ScreenSegment {
	return append([]ScreenSegment(nil), c.segments...)
}

// Total returns how many segments have been submitted overall
func (c *SegmentCollector) Total() int {
	return c.total
}
