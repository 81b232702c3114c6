// Package pha provides the source (Pha) and background (Bak) spectrum
// record types: a per-channel data payload bound to its energy boundary
// table, channel validity mask, good time intervals, optional trigger time
// and keyword headers.
//
// Records are immutable: every transformation (RebinEnergy, SliceEnergy)
// returns a new record with freshly synchronized headers and leaves the
// source untouched. The only mutable state is the file binding established
// by Write and Open and released by Close.
package pha

import (
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/header"
	"github.com/spexlab/spex/internal/options"
	"github.com/spexlab/spex/primitives"
)

// recordConfig collects the optional construction parameters before
// validation.
type recordConfig struct {
	gti        *primitives.Gti
	gtiSet     bool
	trigger    float64
	triggerSet bool
	headers    *header.FileHeaders
	headersSet bool
	mask       []bool
	maskSet    bool
}

// RecordOption configures record construction.
type RecordOption = options.Option[*recordConfig]

// WithGti binds a good time interval set to the record. Interval times are
// trigger-relative when a trigger time is also bound.
func WithGti(gti *primitives.Gti) RecordOption {
	return options.NoError(func(cfg *recordConfig) {
		cfg.gti = gti
		cfg.gtiSet = true
	})
}

// WithTriggerTime binds the absolute reference epoch all record-relative
// times are offset from. Must be non-negative.
func WithTriggerTime(trigger float64) RecordOption {
	return options.NoError(func(cfg *recordConfig) {
		cfg.trigger = trigger
		cfg.triggerSet = true
	})
}

// WithHeaders binds a caller-supplied header set. The set is cloned; the
// record re-derives DETCHANS, EXPOSURE, TSTART, TSTOP and TRIGTIME into
// the clone.
func WithHeaders(headers *header.FileHeaders) RecordOption {
	return options.NoError(func(cfg *recordConfig) {
		cfg.headers = headers
		cfg.headersSet = true
	})
}

// WithChannelMask binds a per-channel validity mask. Length must match the
// data's channel count.
func WithChannelMask(mask []bool) RecordOption {
	return options.NoError(func(cfg *recordConfig) {
		cfg.mask = mask
		cfg.maskSet = true
	})
}

// record is the state shared by Pha and Bak: everything except the
// per-channel data payload itself.
type record struct {
	eb         *primitives.Ebounds
	mask       []bool
	gti        *primitives.Gti
	headers    *header.FileHeaders
	trigger    float64
	hasTrigger bool
	exposure   float64
	filename   string
	closed     bool
}

// newRecord validates the optional parameters in a fixed order and builds
// the shared record state. Validation order: GTI, trigger time, headers,
// mask presence, mask length.
func newRecord(eb *primitives.Ebounds, exposure float64, cfg *recordConfig) (record, error) {
	if cfg.gtiSet && cfg.gti == nil {
		return record{}, errs.ErrNilGti
	}
	if cfg.triggerSet && cfg.trigger < 0 {
		return record{}, errs.ErrNegativeTrigger
	}
	if cfg.headersSet && cfg.headers == nil {
		return record{}, errs.ErrNilHeaders
	}
	if cfg.maskSet && cfg.mask == nil {
		return record{}, errs.ErrNilChannelMask
	}
	if cfg.maskSet && len(cfg.mask) != eb.NumChans() {
		return record{}, errs.ErrChannelMaskLength
	}

	r := record{
		eb:       eb,
		exposure: exposure,
	}
	if cfg.gtiSet {
		r.gti = cfg.gti
	}
	if cfg.triggerSet {
		r.trigger = cfg.trigger
		r.hasTrigger = true
	}

	r.mask = make([]bool, eb.NumChans())
	if cfg.maskSet {
		copy(r.mask, cfg.mask)
	} else {
		for i := range r.mask {
			r.mask[i] = true
		}
	}

	if cfg.headersSet {
		r.headers = cfg.headers.Clone()
	} else {
		r.headers = header.DefaultHeaders()
	}
	r.syncHeaders()

	return r, nil
}

// NumChans returns the number of energy channels.
func (r *record) NumChans() int {
	return r.eb.NumChans()
}

// Ebounds returns the channel boundary table.
func (r *record) Ebounds() *primitives.Ebounds {
	return r.eb
}

// ChannelMask returns a copy of the per-channel validity mask.
func (r *record) ChannelMask() []bool {
	out := make([]bool, len(r.mask))
	copy(out, r.mask)

	return out
}

// ValidChannels returns the ascending indices of channels flagged valid.
func (r *record) ValidChannels() []int {
	var indices []int
	for i, ok := range r.mask {
		if ok {
			indices = append(indices, i)
		}
	}

	return indices
}

// EnergyRange returns the full energy span over all channels, regardless
// of the mask.
func (r *record) EnergyRange() primitives.Range {
	return r.eb.Range()
}

// Gti returns the good time interval set, or nil when none is bound.
func (r *record) Gti() *primitives.Gti {
	return r.gti
}

// TimeRange returns the span of the good time intervals, or (0, exposure)
// when no GTI is bound.
func (r *record) TimeRange() primitives.Range {
	if r.gti == nil {
		return primitives.Range{Lo: 0, Hi: r.exposure}
	}

	return r.gti.Range()
}

// Headers returns the record's header set.
func (r *record) Headers() *header.FileHeaders {
	return r.headers
}

// Exposure returns the live exposure time of the selection.
func (r *record) Exposure() float64 {
	return r.exposure
}

// TriggerTime returns the reference epoch and whether one is bound.
func (r *record) TriggerTime() (float64, bool) {
	return r.trigger, r.hasTrigger
}

// Filename returns the base name of the backing file, or the empty string
// for an in-memory record.
func (r *record) Filename() string {
	return r.filename
}

// Close releases the record's file binding. The in-memory data stays
// usable; a subsequent Write must name the record again. Idempotent.
func (r *record) Close() error {
	r.filename = ""
	r.closed = true

	return nil
}

// syncHeaders projects the derived keys into the header blocks, creating
// missing blocks as needed. The record is the single source of truth; the
// headers only carry a snapshot.
func (r *record) syncHeaders() {
	tr := r.TimeRange()

	primary := r.ensureBlock(header.BlockPrimary)
	_ = primary.Set(header.KeyTstart, tr.Lo, "")
	_ = primary.Set(header.KeyTstop, tr.Hi, "")
	if r.hasTrigger {
		_ = primary.Set(header.KeyTrigTime, r.trigger, "")
	}

	chans := int64(r.NumChans())
	_ = r.ensureBlock(header.BlockEbounds).Set(header.KeyDetChans, chans, "")

	spectrum := r.ensureBlock(header.BlockSpectrum)
	_ = spectrum.Set(header.KeyDetChans, chans, "")
	_ = spectrum.Set(header.KeyExposure, r.exposure, "")
}

func (r *record) ensureBlock(name string) *header.Block {
	if b := r.headers.Block(name); b != nil {
		return b
	}

	b := header.NewBlock(name)
	r.headers.Add(b)

	return b
}

// derive builds the shared state of a transformed record: same GTI,
// trigger and exposure, new edges and mask, cloned and re-synchronized
// headers, no file binding.
func (r *record) derive(eb *primitives.Ebounds, mask []bool) record {
	out := record{
		eb:         eb,
		mask:       mask,
		gti:        r.gti,
		headers:    r.headers.Clone(),
		trigger:    r.trigger,
		hasTrigger: r.hasTrigger,
		exposure:   r.exposure,
	}
	out.syncHeaders()

	return out
}

// groupMask folds the validity mask over merge groups: a merged channel is
// valid only if every source channel in its group was valid.
func groupMask(mask []bool, groups [][2]int) []bool {
	out := make([]bool, len(groups))
	for i, g := range groups {
		valid := true
		for j := g[0]; j < g[1]; j++ {
			valid = valid && mask[j]
		}
		out[i] = valid
	}

	return out
}

// selectMask picks mask entries at the given indices.
func selectMask(mask []bool, indices []int) []bool {
	out := make([]bool, len(indices))
	for i, idx := range indices {
		out[i] = mask[idx]
	}

	return out
}

// rangeGroups builds the merge groups for a range-restricted rebin: the
// contiguous span of channels overlapping the energy range is partitioned
// by the method, channels outside pass through unmerged.
func rangeGroups(eb *primitives.Ebounds, m func(n int) ([][2]int, error), emin, emax float64) ([][2]int, error) {
	indices := eb.Overlapping(primitives.Range{Lo: emin, Hi: emax})
	if len(indices) == 0 {
		return nil, errs.ErrEmptySelection
	}

	lo := indices[0]
	hi := indices[len(indices)-1] + 1

	inner, err := m(hi - lo)
	if err != nil {
		return nil, err
	}

	groups := make([][2]int, 0, lo+len(inner)+(eb.NumChans()-hi))
	for i := 0; i < lo; i++ {
		groups = append(groups, [2]int{i, i + 1})
	}
	for _, g := range inner {
		groups = append(groups, [2]int{g[0] + lo, g[1] + lo})
	}
	for i := hi; i < eb.NumChans(); i++ {
		groups = append(groups, [2]int{i, i + 1})
	}

	return groups, nil
}
