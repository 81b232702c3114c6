package pha

import (
	"path/filepath"

	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
	"github.com/spexlab/spex/internal/options"
	"github.com/spexlab/spex/phafile"
	"github.com/spexlab/spex/primitives"
	"github.com/spexlab/spex/rebin"
)

// Pha is a source spectrum record: accumulated counts per energy channel
// for one time selection.
type Pha struct {
	record
	data *primitives.EnergySpectrum
}

// FromData constructs a source record from a count spectrum.
//
// The spectrum supplies the counts, energy boundaries and exposure; the
// options bind the GTI, trigger time, headers and channel mask. Derived
// header keys are injected into the bound header set, or into a freshly
// constructed default set when none is supplied.
func FromData(data *primitives.EnergySpectrum, opts ...RecordOption) (*Pha, error) {
	if data == nil {
		return nil, errs.ErrNilSpectrumData
	}

	cfg := &recordConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	rec, err := newRecord(data.Ebounds(), data.Exposure(), cfg)
	if err != nil {
		return nil, err
	}

	return &Pha{record: rec, data: data}, nil
}

// FromHistogram integrates a time/energy histogram into a source record.
//
// All histogram rows overlapping any requested time range are summed per
// channel; the exposure is the sum of the selected rows' exposures. The
// full channel set is carried and the channel mask marks the channels
// whose bounds overlap energyRange (a zero-width range selects all
// channels). Unless WithGti overrides it, the union of the requested time
// ranges becomes the record's GTI.
func FromHistogram(bins *primitives.TimeEnergyBins, timeRanges []primitives.Range, energyRange primitives.Range, opts ...RecordOption) (*Pha, error) {
	if bins == nil {
		return nil, errs.ErrNilSpectrumData
	}

	spectrum, err := bins.Integrate(timeRanges...)
	if err != nil {
		return nil, err
	}

	cfg := &recordConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	mask := make([]bool, bins.NumChans())
	if energyRange.Width() > 0 {
		for _, idx := range bins.Ebounds().Overlapping(energyRange) {
			mask[idx] = true
		}
	} else {
		for i := range mask {
			mask[i] = true
		}
	}
	if cfg.maskSet {
		if cfg.mask == nil {
			return nil, errs.ErrNilChannelMask
		}
		if len(cfg.mask) != len(mask) {
			return nil, errs.ErrChannelMaskLength
		}
		for i := range mask {
			mask[i] = mask[i] && cfg.mask[i]
		}
	}
	cfg.mask = mask
	cfg.maskSet = true

	if !cfg.gtiSet {
		selected := timeRanges
		if len(selected) == 0 {
			selected = []primitives.Range{bins.TimeRange()}
		}
		gti, err := primitives.MergeRanges(selected)
		if err != nil {
			return nil, err
		}
		cfg.gti = gti
		cfg.gtiSet = true
	}

	rec, err := newRecord(spectrum.Ebounds(), spectrum.Exposure(), cfg)
	if err != nil {
		return nil, err
	}

	return &Pha{record: rec, data: spectrum}, nil
}

// Data returns the underlying count spectrum.
func (p *Pha) Data() *primitives.EnergySpectrum {
	return p.data
}

// Counts returns a copy of the per-channel counts.
func (p *Pha) Counts() []int64 {
	return p.data.Counts()
}

// RebinEnergy returns a new record with channels merged according to the
// method. Counts are summed per group, edges become the group's outer
// bounds, and a merged channel is valid only if its whole source group was
// valid. The source record is untouched.
func (p *Pha) RebinEnergy(m rebin.Method) (*Pha, error) {
	groups, err := m(p.NumChans())
	if err != nil {
		return nil, err
	}

	return p.rebinGroups(groups)
}

// RebinEnergyRange rebins only the contiguous span of channels whose
// bounds overlap (emin, emax); channels outside the span pass through
// unmerged.
func (p *Pha) RebinEnergyRange(m rebin.Method, emin, emax float64) (*Pha, error) {
	groups, err := rangeGroups(p.eb, m, emin, emax)
	if err != nil {
		return nil, err
	}

	return p.rebinGroups(groups)
}

func (p *Pha) rebinGroups(groups [][2]int) (*Pha, error) {
	data, err := p.data.MergeGroups(groups)
	if err != nil {
		return nil, err
	}

	return &Pha{
		record: p.derive(data.Ebounds(), groupMask(p.mask, groups)),
		data:   data,
	}, nil
}

// SliceEnergy returns a new record keeping only the channels whose bounds
// overlap at least one of the requested ranges, in original order with
// original edges.
func (p *Pha) SliceEnergy(ranges ...primitives.Range) (*Pha, error) {
	indices := p.eb.OverlappingAny(ranges)
	if len(indices) == 0 {
		return nil, errs.ErrEmptySelection
	}

	data, err := p.data.Select(indices)
	if err != nil {
		return nil, err
	}

	return &Pha{
		record: p.derive(data.Ebounds(), selectMask(p.mask, indices)),
		data:   data,
	}, nil
}

// Write persists the record under directory. The target name comes from
// WithFilename, falling back to the record's current name; a record that
// has never been named fails with a naming error. An existing target is
// only replaced when WithOverwrite is given.
func (p *Pha) Write(directory string, opts ...WriteOption) error {
	cfg := &writeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	name, err := p.resolveWriteName(cfg)
	if err != nil {
		return err
	}

	enc, err := phafile.NewEncoder(cfg.encOpts...)
	if err != nil {
		return err
	}
	if err := enc.WriteFile(filepath.Join(directory, name), p.toFile(), cfg.overwrite); err != nil {
		return err
	}

	p.filename = name
	p.closed = false

	return nil
}

func (p *Pha) toFile() *phafile.File {
	f := &phafile.File{
		Kind:           format.KindPha,
		Counts:         p.data.Counts(),
		ChannelMask:    p.ChannelMask(),
		EboundsLo:      p.eb.LowEdges(),
		EboundsHi:      p.eb.HighEdges(),
		Exposure:       p.exposure,
		TriggerTime:    p.trigger,
		HasTriggerTime: p.hasTrigger,
		Headers:        p.headers,
	}
	if p.gti != nil {
		f.GtiStart = p.gti.LowEdges()
		f.GtiStop = p.gti.HighEdges()
	}

	return f
}

// Open reads a source spectrum container and reconstructs the record and
// its headers. The record's filename becomes the base name of path.
func Open(path string) (*Pha, error) {
	f, err := phafile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if f.Kind != format.KindPha {
		return nil, errs.ErrInvalidMagicNumber
	}

	spectrum, err := primitives.NewEnergySpectrum(f.Counts, f.EboundsLo, f.EboundsHi, f.Exposure)
	if err != nil {
		return nil, err
	}

	opts, err := fileOptions(f)
	if err != nil {
		return nil, err
	}

	p, err := FromData(spectrum, opts...)
	if err != nil {
		return nil, err
	}
	p.filename = filepath.Base(path)

	return p, nil
}

// fileOptions rebuilds the record options carried by a decoded container.
func fileOptions(f *phafile.File) ([]RecordOption, error) {
	opts := []RecordOption{WithChannelMask(f.ChannelMask)}
	if f.Headers != nil {
		opts = append(opts, WithHeaders(f.Headers))
	}
	if len(f.GtiStart) > 0 {
		intervals := make([]primitives.Range, len(f.GtiStart))
		for i := range f.GtiStart {
			intervals[i] = primitives.Range{Lo: f.GtiStart[i], Hi: f.GtiStop[i]}
		}
		gti, err := primitives.GtiFromList(intervals)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithGti(gti))
	}
	if f.HasTriggerTime {
		opts = append(opts, WithTriggerTime(f.TriggerTime))
	}

	return opts, nil
}
