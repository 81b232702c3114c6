package primitives

import (
	"math"

	"github.com/spexlab/spex/errs"
)

// EnergySpectrum is the per-channel integer count payload of a source
// spectrum, paired with its energy boundary table and the live exposure of
// the selection it was integrated from.
type EnergySpectrum struct {
	counts   []int64
	eb       *Ebounds
	exposure float64
}

// NewEnergySpectrum creates a count spectrum over the given channel edges.
func NewEnergySpectrum(counts []int64, lo, hi []float64, exposure float64) (*EnergySpectrum, error) {
	eb, err := NewEbounds(lo, hi)
	if err != nil {
		return nil, err
	}
	if len(counts) != eb.NumChans() {
		return nil, errs.ErrShapeMismatch
	}
	if exposure < 0 {
		return nil, errs.ErrNegativeExposure
	}
	for _, c := range counts {
		if c < 0 {
			return nil, errs.ErrNegativeCounts
		}
	}

	s := &EnergySpectrum{
		counts:   make([]int64, len(counts)),
		eb:       eb,
		exposure: exposure,
	}
	copy(s.counts, counts)

	return s, nil
}

// NumChans returns the number of energy channels.
func (s *EnergySpectrum) NumChans() int {
	return len(s.counts)
}

// Counts returns a copy of the per-channel counts.
func (s *EnergySpectrum) Counts() []int64 {
	out := make([]int64, len(s.counts))
	copy(out, s.counts)

	return out
}

// Ebounds returns the channel boundary table.
func (s *EnergySpectrum) Ebounds() *Ebounds {
	return s.eb
}

// Exposure returns the live exposure time of the selection.
func (s *EnergySpectrum) Exposure() float64 {
	return s.exposure
}

// Select returns a new spectrum keeping only the channels at the given
// ascending indices. Exposure is unchanged; a time selection is not being
// altered, only the energy axis.
func (s *EnergySpectrum) Select(indices []int) (*EnergySpectrum, error) {
	eb, err := s.eb.Select(indices)
	if err != nil {
		return nil, err
	}

	counts := make([]int64, 0, len(indices))
	for _, idx := range indices {
		counts = append(counts, s.counts[idx])
	}

	return NewEnergySpectrum(counts, eb.LowEdges(), eb.HighEdges(), s.exposure)
}

// MergeGroups returns a new spectrum where each [start, end) index group is
// merged into a single channel: counts are summed and the group's outer
// edges become the merged channel's bounds. Groups must be ascending and
// non-overlapping; channels not covered by any group are dropped.
func (s *EnergySpectrum) MergeGroups(groups [][2]int) (*EnergySpectrum, error) {
	if len(groups) == 0 {
		return nil, errs.ErrEmptySelection
	}

	counts := make([]int64, 0, len(groups))
	lo := make([]float64, 0, len(groups))
	hi := make([]float64, 0, len(groups))
	for _, g := range groups {
		if g[0] < 0 || g[1] > len(s.counts) || g[0] >= g[1] {
			return nil, errs.ErrEmptySelection
		}
		var sum int64
		for i := g[0]; i < g[1]; i++ {
			sum += s.counts[i]
		}
		counts = append(counts, sum)
		lo = append(lo, s.eb.lo[g[0]])
		hi = append(hi, s.eb.hi[g[1]-1])
	}

	return NewEnergySpectrum(counts, lo, hi, s.exposure)
}

// BackgroundSpectrum is the per-channel background payload: modeled count
// rate and its 1-sigma uncertainty, paired with the channel boundary table
// and the exposure of the background selection.
type BackgroundSpectrum struct {
	rates    []float64
	uncert   []float64
	eb       *Ebounds
	exposure float64
}

// NewBackgroundSpectrum creates a background rate spectrum over the given
// channel edges.
func NewBackgroundSpectrum(rates, uncert, lo, hi []float64, exposure float64) (*BackgroundSpectrum, error) {
	eb, err := NewEbounds(lo, hi)
	if err != nil {
		return nil, err
	}
	if len(rates) != eb.NumChans() || len(uncert) != eb.NumChans() {
		return nil, errs.ErrShapeMismatch
	}
	if exposure < 0 {
		return nil, errs.ErrNegativeExposure
	}
	for _, r := range rates {
		if r < 0 {
			return nil, errs.ErrNegativeRate
		}
	}

	s := &BackgroundSpectrum{
		rates:    make([]float64, len(rates)),
		uncert:   make([]float64, len(uncert)),
		eb:       eb,
		exposure: exposure,
	}
	copy(s.rates, rates)
	copy(s.uncert, uncert)

	return s, nil
}

// NumChans returns the number of energy channels.
func (s *BackgroundSpectrum) NumChans() int {
	return len(s.rates)
}

// Rates returns a copy of the per-channel background rates.
func (s *BackgroundSpectrum) Rates() []float64 {
	out := make([]float64, len(s.rates))
	copy(out, s.rates)

	return out
}

// Uncertainty returns a copy of the per-channel rate uncertainties.
func (s *BackgroundSpectrum) Uncertainty() []float64 {
	out := make([]float64, len(s.uncert))
	copy(out, s.uncert)

	return out
}

// Ebounds returns the channel boundary table.
func (s *BackgroundSpectrum) Ebounds() *Ebounds {
	return s.eb
}

// Exposure returns the exposure time of the background selection.
func (s *BackgroundSpectrum) Exposure() float64 {
	return s.exposure
}

// Select returns a new background spectrum keeping only the channels at
// the given ascending indices.
func (s *BackgroundSpectrum) Select(indices []int) (*BackgroundSpectrum, error) {
	eb, err := s.eb.Select(indices)
	if err != nil {
		return nil, err
	}

	rates := make([]float64, 0, len(indices))
	uncert := make([]float64, 0, len(indices))
	for _, idx := range indices {
		rates = append(rates, s.rates[idx])
		uncert = append(uncert, s.uncert[idx])
	}

	return NewBackgroundSpectrum(rates, uncert, eb.LowEdges(), eb.HighEdges(), s.exposure)
}

// MergeGroups returns a new background spectrum where each [start, end)
// index group is merged into a single channel: rates are summed,
// uncertainties are combined in quadrature, and the group's outer edges
// become the merged channel's bounds.
func (s *BackgroundSpectrum) MergeGroups(groups [][2]int) (*BackgroundSpectrum, error) {
	if len(groups) == 0 {
		return nil, errs.ErrEmptySelection
	}

	rates := make([]float64, 0, len(groups))
	uncert := make([]float64, 0, len(groups))
	lo := make([]float64, 0, len(groups))
	hi := make([]float64, 0, len(groups))
	for _, g := range groups {
		if g[0] < 0 || g[1] > len(s.rates) || g[0] >= g[1] {
			return nil, errs.ErrEmptySelection
		}
		var rateSum, varSum float64
		for i := g[0]; i < g[1]; i++ {
			rateSum += s.rates[i]
			varSum += s.uncert[i] * s.uncert[i]
		}
		rates = append(rates, rateSum)
		uncert = append(uncert, math.Sqrt(varSum))
		lo = append(lo, s.eb.lo[g[0]])
		hi = append(hi, s.eb.hi[g[1]-1])
	}

	return NewBackgroundSpectrum(rates, uncert, lo, hi, s.exposure)
}
