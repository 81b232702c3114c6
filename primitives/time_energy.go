package primitives

import "github.com/spexlab/spex/errs"

// TimeEnergyBins is the two-dimensional count histogram measured by the
// detector: counts[i][j] accumulated in time bin i and energy channel j,
// with per-bin live exposure. It is the raw object spectra are integrated
// from and is immutable after construction.
type TimeEnergyBins struct {
	counts   [][]int64
	tstart   []float64
	tstop    []float64
	exposure []float64
	eb       *Ebounds
}

// NewTimeEnergyBins creates a time/energy histogram.
//
// All per-time-bin slices must have the same length, every count row must
// match the channel count implied by emin/emax, each bin must satisfy
// tstart < tstop with non-negative exposure, and the channel edges must be
// ascending with low < high.
func NewTimeEnergyBins(counts [][]int64, tstart, tstop, exposure, emin, emax []float64) (*TimeEnergyBins, error) {
	eb, err := NewEbounds(emin, emax)
	if err != nil {
		return nil, err
	}

	n := len(counts)
	if n == 0 || len(tstart) != n || len(tstop) != n || len(exposure) != n {
		return nil, errs.ErrShapeMismatch
	}

	b := &TimeEnergyBins{
		counts:   make([][]int64, n),
		tstart:   make([]float64, n),
		tstop:    make([]float64, n),
		exposure: make([]float64, n),
		eb:       eb,
	}
	for i, row := range counts {
		if len(row) != eb.NumChans() {
			return nil, errs.ErrShapeMismatch
		}
		if tstart[i] >= tstop[i] {
			return nil, errs.ErrInvertedInterval
		}
		if exposure[i] < 0 {
			return nil, errs.ErrNegativeExposure
		}
		for _, c := range row {
			if c < 0 {
				return nil, errs.ErrNegativeCounts
			}
		}
		b.counts[i] = make([]int64, len(row))
		copy(b.counts[i], row)
	}
	copy(b.tstart, tstart)
	copy(b.tstop, tstop)
	copy(b.exposure, exposure)

	return b, nil
}

// NumTimes returns the number of time bins.
func (b *TimeEnergyBins) NumTimes() int {
	return len(b.tstart)
}

// NumChans returns the number of energy channels.
func (b *TimeEnergyBins) NumChans() int {
	return b.eb.NumChans()
}

// Ebounds returns the channel boundary table.
func (b *TimeEnergyBins) Ebounds() *Ebounds {
	return b.eb
}

// TimeBin returns the time interval of bin i.
func (b *TimeEnergyBins) TimeBin(i int) Range {
	return Range{Lo: b.tstart[i], Hi: b.tstop[i]}
}

// BinExposure returns the live exposure of time bin i.
func (b *TimeEnergyBins) BinExposure(i int) float64 {
	return b.exposure[i]
}

// TimeRange returns the span from the earliest bin start to the latest bin
// stop.
func (b *TimeEnergyBins) TimeRange() Range {
	lo := b.tstart[0]
	hi := b.tstop[0]
	for i := 1; i < len(b.tstart); i++ {
		if b.tstart[i] < lo {
			lo = b.tstart[i]
		}
		if b.tstop[i] > hi {
			hi = b.tstop[i]
		}
	}

	return Range{Lo: lo, Hi: hi}
}

// ChannelRates returns the count rate of channel ch in every time bin,
// counts divided by the bin exposure. Bins with zero exposure report a
// zero rate.
func (b *TimeEnergyBins) ChannelRates(ch int) []float64 {
	rates := make([]float64, len(b.counts))
	for i, row := range b.counts {
		if b.exposure[i] > 0 {
			rates[i] = float64(row[ch]) / b.exposure[i]
		}
	}

	return rates
}

// BinCenters returns the midpoint of every time bin.
func (b *TimeEnergyBins) BinCenters() []float64 {
	centers := make([]float64, len(b.tstart))
	for i := range b.tstart {
		centers[i] = 0.5 * (b.tstart[i] + b.tstop[i])
	}

	return centers
}

// selectRows returns the indices of time bins overlapping any of the
// requested ranges, or all bins when no range is given.
func (b *TimeEnergyBins) selectRows(timeRanges []Range) []int {
	if len(timeRanges) == 0 {
		rows := make([]int, len(b.tstart))
		for i := range rows {
			rows[i] = i
		}

		return rows
	}

	var rows []int
	for i := range b.tstart {
		bin := b.TimeBin(i)
		for _, r := range timeRanges {
			if bin.Overlaps(r) {
				rows = append(rows, i)
				break
			}
		}
	}

	return rows
}

// Integrate sums the histogram over every time bin overlapping any of the
// requested ranges, producing a single energy spectrum across the full
// channel set. Exposure is the sum of the selected bins' exposures.
// Passing no ranges integrates the whole histogram.
func (b *TimeEnergyBins) Integrate(timeRanges ...Range) (*EnergySpectrum, error) {
	rows := b.selectRows(timeRanges)
	if len(rows) == 0 {
		return nil, errs.ErrEmptySelection
	}

	counts := make([]int64, b.NumChans())
	var exposure float64
	for _, i := range rows {
		for j, c := range b.counts[i] {
			counts[j] += c
		}
		exposure += b.exposure[i]
	}

	return NewEnergySpectrum(counts, b.eb.LowEdges(), b.eb.HighEdges(), exposure)
}
