// Package spex provides a compact binary format and data model for
// energy-binned count-rate spectra, as used in gamma-ray burst analysis
// pipelines.
//
// The core objects are the source spectrum record (Pha: counts per energy
// channel) and the background spectrum record (Bak: rate and uncertainty
// per channel), each carrying its energy boundary table, channel validity
// mask, good time intervals, optional trigger time and keyword headers.
// Records round-trip losslessly through a self-describing binary
// container with an xxHash64 integrity trailer and optional section
// compression (Zstd, S2, LZ4).
//
// # Core Features
//
//   - Immutable records: rebin, slice and mask always return a new record
//   - Energy rebinning with pluggable grouping methods (rebin.ByFactor)
//   - Energy slicing to one or more sub-bands
//   - Header keyword blocks kept synchronized with the record's derived
//     fields (DETCHANS, EXPOSURE, TSTART, TSTOP, TRIGTIME)
//   - Time/energy histogram integration into source spectra
//   - Polynomial background fitting and interpolation
//   - Little- or big-endian containers with xxHash64 checksums
//
// # Basic Usage
//
// Integrating a histogram and persisting the spectrum:
//
//	import "github.com/spexlab/spex"
//
//	src, _ := pha.FromHistogram(bins,
//	    []primitives.Range{{Lo: 0.0, Hi: 0.1}},
//	    primitives.Range{Lo: 8.0, Hi: 900.0},
//	    pha.WithTriggerTime(356223561.133346))
//	_ = src.Write(dir, pha.WithFilename("burst.pha"))
//
// Reopening it later:
//
//	src, _ := spex.OpenPha(filepath.Join(dir, "burst.pha"))
//	counts := src.Counts()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the pha
// package, simplifying the most common use cases. For record
// construction, transformation and fine-grained control, use the pha,
// primitives, rebin and background packages directly.
package spex

import (
	"github.com/spexlab/spex/pha"
)

// OpenPha reads a source spectrum container (.pha) and reconstructs the
// record together with its headers.
func OpenPha(path string) (*pha.Pha, error) {
	return pha.Open(path)
}

// OpenBak reads a background spectrum container (.bak) and reconstructs
// the record together with its headers.
func OpenBak(path string) (*pha.Bak, error) {
	return pha.OpenBak(path)
}
