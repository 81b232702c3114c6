// Package primitives provides the data objects spectral records are built
// from: per-channel energy boundary tables, good time intervals, the
// two-dimensional time/energy count histogram, and the one-dimensional
// spectrum payloads integrated from it.
//
// All types here are immutable after construction; selection and merge
// operations allocate fresh results. Validation happens eagerly in the
// constructors so that a successfully constructed value always satisfies
// its shape and ordering invariants.
package primitives

// Range is a numeric interval with Lo < Hi, used for both time and energy
// selections.
type Range struct {
	Lo float64
	Hi float64
}

// Overlaps reports whether r and other share any interior point.
// Intervals that only touch at an edge do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Lo < other.Hi && other.Lo < r.Hi
}

// Width returns Hi - Lo.
func (r Range) Width() float64 {
	return r.Hi - r.Lo
}

// Center returns the midpoint of the range.
func (r Range) Center() float64 {
	return 0.5 * (r.Lo + r.Hi)
}
