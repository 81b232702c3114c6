// Package phafile implements the binary container format for spectrum
// records.
//
// A file is a fixed 48-byte header, a keyword header payload, an energy
// boundary table, a spectrum table, a good time interval table, and an
// xxHash64 checksum trailer over all preceding bytes. Section boundaries
// are implied by the offsets recorded in the file header; the header
// payload and each table may be independently compressed.
//
// The package works on the neutral File representation. The pha package
// converts records to and from File values; this layering keeps byte
// layout concerns out of the record types.
package phafile

import (
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
	"github.com/spexlab/spex/header"
)

// File is the decoded content of a spectrum container, independent of the
// record types layered on top.
//
// Counts is populated for source records; Rates and Uncert for background
// records. The remaining fields are shared by both kinds.
type File struct {
	Kind format.RecordKind

	Counts []int64   // per-channel counts, source records only
	Rates  []float64 // per-channel background rates, background records only
	Uncert []float64 // per-channel rate uncertainties, background records only

	ChannelMask []bool
	EboundsLo   []float64
	EboundsHi   []float64
	GtiStart    []float64
	GtiStop     []float64

	Exposure       float64
	TriggerTime    float64
	HasTriggerTime bool

	Headers *header.FileHeaders
}

// NumChans returns the number of energy channels.
func (f *File) NumChans() int {
	return len(f.EboundsLo)
}

// validate checks the cross-field shape invariants before encoding.
func (f *File) validate() error {
	n := len(f.EboundsLo)
	if n == 0 || len(f.EboundsHi) != n {
		return errs.ErrShapeMismatch
	}

	switch f.Kind {
	case format.KindPha:
		if len(f.Counts) != n {
			return errs.ErrShapeMismatch
		}
	case format.KindBak:
		if len(f.Rates) != n || len(f.Uncert) != n {
			return errs.ErrShapeMismatch
		}
	default:
		return errs.ErrInvalidMagicNumber
	}

	if len(f.ChannelMask) != n {
		return errs.ErrChannelMaskLength
	}
	if len(f.GtiStart) != len(f.GtiStop) {
		return errs.ErrShapeMismatch
	}
	if f.Exposure < 0 {
		return errs.ErrNegativeExposure
	}

	return nil
}
