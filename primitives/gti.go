package primitives

import (
	"sort"

	"github.com/spexlab/spex/errs"
)

// Gti is an ordered, non-overlapping list of good time intervals.
//
// Intervals are sorted ascending by start time. When the owning record
// carries a trigger time, GTI values are expressed relative to it.
type Gti struct {
	start []float64
	stop  []float64
}

// GtiFromList builds a Gti from raw (start, stop) pairs. The pairs are
// sorted by start time; inverted or mutually overlapping intervals are
// rejected.
func GtiFromList(intervals []Range) (*Gti, error) {
	if len(intervals) == 0 {
		return nil, errs.ErrInvertedInterval
	}

	sorted := make([]Range, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	g := &Gti{
		start: make([]float64, 0, len(sorted)),
		stop:  make([]float64, 0, len(sorted)),
	}
	for i, iv := range sorted {
		if iv.Lo >= iv.Hi {
			return nil, errs.ErrInvertedInterval
		}
		if i > 0 && iv.Lo < sorted[i-1].Hi {
			return nil, errs.ErrOverlappingGti
		}
		g.start = append(g.start, iv.Lo)
		g.stop = append(g.stop, iv.Hi)
	}

	return g, nil
}

// MergeRanges normalizes raw intervals into a Gti, merging any that
// overlap or touch. It is used to turn a set of requested time selections
// into the good time intervals of an integrated spectrum.
func MergeRanges(intervals []Range) (*Gti, error) {
	if len(intervals) == 0 {
		return nil, errs.ErrInvertedInterval
	}

	sorted := make([]Range, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	merged := make([]Range, 0, len(sorted))
	for _, iv := range sorted {
		if iv.Lo >= iv.Hi {
			return nil, errs.ErrInvertedInterval
		}
		n := len(merged)
		if n > 0 && iv.Lo <= merged[n-1].Hi {
			if iv.Hi > merged[n-1].Hi {
				merged[n-1].Hi = iv.Hi
			}
			continue
		}
		merged = append(merged, iv)
	}

	return GtiFromList(merged)
}

// Len returns the number of intervals.
func (g *Gti) Len() int {
	return len(g.start)
}

// LowEdges returns a copy of the interval start times.
func (g *Gti) LowEdges() []float64 {
	out := make([]float64, len(g.start))
	copy(out, g.start)

	return out
}

// HighEdges returns a copy of the interval stop times.
func (g *Gti) HighEdges() []float64 {
	out := make([]float64, len(g.stop))
	copy(out, g.stop)

	return out
}

// Interval returns the i-th interval.
func (g *Gti) Interval(i int) Range {
	return Range{Lo: g.start[i], Hi: g.stop[i]}
}

// Range returns the span from the earliest start to the latest stop.
func (g *Gti) Range() Range {
	return Range{Lo: g.start[0], Hi: g.stop[len(g.stop)-1]}
}

// Contains reports whether t lies within any interval.
func (g *Gti) Contains(t float64) bool {
	// Intervals are sorted; find the first interval ending after t.
	i := sort.Search(len(g.stop), func(i int) bool { return g.stop[i] > t })
	if i == len(g.stop) {
		return false
	}

	return g.start[i] <= t && t < g.stop[i]
}
