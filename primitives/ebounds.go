package primitives

import "github.com/spexlab/spex/errs"

// Ebounds is the ordered table of per-channel low/high energy edges.
//
// Channels are sorted ascending in energy and each low edge is strictly
// below its high edge. Contiguity between adjacent channels is not
// required. The table is immutable; Select returns a new Ebounds holding a
// subset of the original entries in their original relative order.
type Ebounds struct {
	lo []float64
	hi []float64
}

// NewEbounds creates an energy boundary table from parallel edge slices.
// The slices are copied.
func NewEbounds(lo, hi []float64) (*Ebounds, error) {
	if len(lo) == 0 || len(lo) != len(hi) {
		return nil, errs.ErrUnsortedEdges
	}

	for i := range lo {
		if lo[i] >= hi[i] {
			return nil, errs.ErrUnsortedEdges
		}
		if i > 0 && lo[i] < lo[i-1] {
			return nil, errs.ErrUnsortedEdges
		}
	}

	eb := &Ebounds{
		lo: make([]float64, len(lo)),
		hi: make([]float64, len(hi)),
	}
	copy(eb.lo, lo)
	copy(eb.hi, hi)

	return eb, nil
}

// NumChans returns the number of channels in the table.
func (e *Ebounds) NumChans() int {
	return len(e.lo)
}

// LowEdges returns a copy of the per-channel low edges.
func (e *Ebounds) LowEdges() []float64 {
	out := make([]float64, len(e.lo))
	copy(out, e.lo)

	return out
}

// HighEdges returns a copy of the per-channel high edges.
func (e *Ebounds) HighEdges() []float64 {
	out := make([]float64, len(e.hi))
	copy(out, e.hi)

	return out
}

// Channel returns the energy range of channel i.
func (e *Ebounds) Channel(i int) Range {
	return Range{Lo: e.lo[i], Hi: e.hi[i]}
}

// Range returns the full energy span of the table, from the lowest low
// edge to the highest high edge over all channels.
func (e *Ebounds) Range() Range {
	lo := e.lo[0]
	hi := e.hi[0]
	for i := 1; i < len(e.lo); i++ {
		if e.lo[i] < lo {
			lo = e.lo[i]
		}
		if e.hi[i] > hi {
			hi = e.hi[i]
		}
	}

	return Range{Lo: lo, Hi: hi}
}

// Select returns a new Ebounds containing the channels at the given
// ascending indices, in their original relative order.
func (e *Ebounds) Select(indices []int) (*Ebounds, error) {
	if len(indices) == 0 {
		return nil, errs.ErrEmptySelection
	}

	lo := make([]float64, 0, len(indices))
	hi := make([]float64, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(e.lo) {
			return nil, errs.ErrEmptySelection
		}
		lo = append(lo, e.lo[idx])
		hi = append(hi, e.hi[idx])
	}

	return NewEbounds(lo, hi)
}

// Overlapping returns the ascending indices of channels whose bounds
// overlap r.
func (e *Ebounds) Overlapping(r Range) []int {
	var indices []int
	for i := range e.lo {
		if e.Channel(i).Overlaps(r) {
			indices = append(indices, i)
		}
	}

	return indices
}

// OverlappingAny returns the ascending indices of channels whose bounds
// overlap at least one of the given ranges.
func (e *Ebounds) OverlappingAny(ranges []Range) []int {
	var indices []int
	for i := range e.lo {
		ch := e.Channel(i)
		for _, r := range ranges {
			if ch.Overlaps(r) {
				indices = append(indices, i)
				break
			}
		}
	}

	return indices
}
