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

// Bak is a background spectrum record: modeled count rate and 1-sigma
// uncertainty per energy channel for a background time selection.
type Bak struct {
	record
	data *primitives.BackgroundSpectrum
}

// BakFromData constructs a background record from a rate spectrum. The
// options and validation mirror FromData.
func BakFromData(data *primitives.BackgroundSpectrum, opts ...RecordOption) (*Bak, error) {
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

	return &Bak{record: rec, data: data}, nil
}

// Data returns the underlying rate spectrum.
func (b *Bak) Data() *primitives.BackgroundSpectrum {
	return b.data
}

// Rates returns a copy of the per-channel background rates.
func (b *Bak) Rates() []float64 {
	return b.data.Rates()
}

// Uncertainty returns a copy of the per-channel rate uncertainties.
func (b *Bak) Uncertainty() []float64 {
	return b.data.Uncertainty()
}

// RebinEnergy returns a new record with channels merged according to the
// method. Rates are summed per group and uncertainties combined in
// quadrature; a merged channel is valid only if its whole source group was
// valid.
func (b *Bak) RebinEnergy(m rebin.Method) (*Bak, error) {
	groups, err := m(b.NumChans())
	if err != nil {
		return nil, err
	}

	return b.rebinGroups(groups)
}

// RebinEnergyRange rebins only the contiguous span of channels whose
// bounds overlap (emin, emax); channels outside the span pass through
// unmerged.
func (b *Bak) RebinEnergyRange(m rebin.Method, emin, emax float64) (*Bak, error) {
	groups, err := rangeGroups(b.eb, m, emin, emax)
	if err != nil {
		return nil, err
	}

	return b.rebinGroups(groups)
}

func (b *Bak) rebinGroups(groups [][2]int) (*Bak, error) {
	data, err := b.data.MergeGroups(groups)
	if err != nil {
		return nil, err
	}

	return &Bak{
		record: b.derive(data.Ebounds(), groupMask(b.mask, groups)),
		data:   data,
	}, nil
}

// SliceEnergy returns a new record keeping only the channels whose bounds
// overlap at least one of the requested ranges.
func (b *Bak) SliceEnergy(ranges ...primitives.Range) (*Bak, error) {
	indices := b.eb.OverlappingAny(ranges)
	if len(indices) == 0 {
		return nil, errs.ErrEmptySelection
	}

	data, err := b.data.Select(indices)
	if err != nil {
		return nil, err
	}

	return &Bak{
		record: b.derive(data.Ebounds(), selectMask(b.mask, indices)),
		data:   data,
	}, nil
}

// Write persists the record under directory; see Pha.Write for naming and
// overwrite semantics.
func (b *Bak) Write(directory string, opts ...WriteOption) error {
	cfg := &writeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	name, err := b.resolveWriteName(cfg)
	if err != nil {
		return err
	}

	enc, err := phafile.NewEncoder(cfg.encOpts...)
	if err != nil {
		return err
	}
	if err := enc.WriteFile(filepath.Join(directory, name), b.toFile(), cfg.overwrite); err != nil {
		return err
	}

	b.filename = name
	b.closed = false

	return nil
}

func (b *Bak) toFile() *phafile.File {
	f := &phafile.File{
		Kind:           format.KindBak,
		Rates:          b.data.Rates(),
		Uncert:         b.data.Uncertainty(),
		ChannelMask:    b.ChannelMask(),
		EboundsLo:      b.eb.LowEdges(),
		EboundsHi:      b.eb.HighEdges(),
		Exposure:       b.exposure,
		TriggerTime:    b.trigger,
		HasTriggerTime: b.hasTrigger,
		Headers:        b.headers,
	}
	if b.gti != nil {
		f.GtiStart = b.gti.LowEdges()
		f.GtiStop = b.gti.HighEdges()
	}

	return f
}

// OpenBak reads a background spectrum container and reconstructs the
// record and its headers. The record's filename becomes the base name of
// path.
func OpenBak(path string) (*Bak, error) {
	f, err := phafile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if f.Kind != format.KindBak {
		return nil, errs.ErrInvalidMagicNumber
	}

	spectrum, err := primitives.NewBackgroundSpectrum(f.Rates, f.Uncert, f.EboundsLo, f.EboundsHi, f.Exposure)
	if err != nil {
		return nil, err
	}

	opts, err := fileOptions(f)
	if err != nil {
		return nil, err
	}

	b, err := BakFromData(spectrum, opts...)
	if err != nil {
		return nil, err
	}
	b.filename = filepath.Base(path)

	return b, nil
}
