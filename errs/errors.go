// Package errs defines the sentinel errors shared across the spex packages.
//
// Errors fall into three caller-facing kinds, each a sentinel that more
// specific sentinels wrap. Use errors.Is against a kind to classify a
// failure without matching the exact cause:
//
//	if errors.Is(err, errs.ErrInvalidValue) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Every validation error wraps exactly one of these.
var (
	// ErrInvalidType reports an object that is not of the required type,
	// such as a nil data payload where spectral data is required.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidValue reports a value outside its permitted domain.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNoFilename reports an operation that requires a file identity
	// which has not been established.
	ErrNoFilename = errors.New("no filename")
)

// Record construction and transformation errors.
var (
	ErrNilSpectrumData    = fmt.Errorf("%w: spectrum data is required", ErrInvalidType)
	ErrNilGti             = fmt.Errorf("%w: gti must be a valid good time interval set", ErrInvalidType)
	ErrNilHeaders         = fmt.Errorf("%w: headers must be a valid file header set", ErrInvalidType)
	ErrNilChannelMask     = fmt.Errorf("%w: channel mask must be a boolean sequence", ErrInvalidType)
	ErrNegativeTrigger    = fmt.Errorf("%w: trigger time must be non-negative", ErrInvalidValue)
	ErrChannelMaskLength  = fmt.Errorf("%w: channel mask length does not match channel count", ErrInvalidValue)
	ErrNegativeExposure   = fmt.Errorf("%w: exposure must be non-negative", ErrInvalidValue)
	ErrUnsortedEdges      = fmt.Errorf("%w: channel edges must be ascending with low < high", ErrInvalidValue)
	ErrOverlappingGti     = fmt.Errorf("%w: good time intervals must not overlap", ErrInvalidValue)
	ErrInvertedInterval   = fmt.Errorf("%w: interval start must precede stop", ErrInvalidValue)
	ErrShapeMismatch      = fmt.Errorf("%w: histogram array lengths are inconsistent", ErrInvalidValue)
	ErrNegativeCounts     = fmt.Errorf("%w: counts must be non-negative", ErrInvalidValue)
	ErrNegativeRate       = fmt.Errorf("%w: rates must be non-negative", ErrInvalidValue)
	ErrInvalidRebinFactor = fmt.Errorf("%w: rebin factor must be positive", ErrInvalidValue)
	ErrEmptySelection     = fmt.Errorf("%w: selection matches no channels", ErrInvalidValue)
	ErrRecordUnnamed      = fmt.Errorf("%w: record has never been named; supply a filename", ErrNoFilename)
)

// Container format errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid file header size")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrInvalidHeaderFlags   = errors.New("invalid file header flags")
	ErrInvalidSectionOffset = errors.New("invalid section offset")
	ErrInvalidSectionSize   = errors.New("section size does not match row count")
	ErrInvalidHeaderPayload = errors.New("malformed header payload")
	ErrChecksumMismatch     = errors.New("payload checksum mismatch")
	ErrFileExists           = errors.New("target file already exists")
	ErrRecordClosed         = errors.New("record has been closed")
)
