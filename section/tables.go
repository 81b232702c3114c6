package section

import (
	"math"

	"github.com/spexlab/spex/endian"
	"github.com/spexlab/spex/errs"
)

// Fixed-width table codecs. Each table is a packed sequence of rows with no
// framing; the row count comes from the file header and the byte length is
// implied by the section offsets.

// EncodeEboundsTable serializes the energy boundary table: per channel, the
// low edge and high edge as f64.
func EncodeEboundsTable(lo, hi []float64, engine endian.EndianEngine) []byte {
	buf := make([]byte, 0, len(lo)*EboundsRowSize)
	for i := range lo {
		buf = engine.AppendUint64(buf, math.Float64bits(lo[i]))
		buf = engine.AppendUint64(buf, math.Float64bits(hi[i]))
	}

	return buf
}

// DecodeEboundsTable parses an energy boundary table of n channels.
func DecodeEboundsTable(data []byte, n int, engine endian.EndianEngine) (lo, hi []float64, err error) {
	if len(data) != n*EboundsRowSize {
		return nil, nil, errs.ErrInvalidSectionSize
	}

	lo = make([]float64, n)
	hi = make([]float64, n)
	for i := 0; i < n; i++ {
		off := i * EboundsRowSize
		lo[i] = math.Float64frombits(engine.Uint64(data[off : off+8]))
		hi[i] = math.Float64frombits(engine.Uint64(data[off+8 : off+16]))
	}

	return lo, hi, nil
}

// EncodePhaTable serializes the source spectrum table: per channel, the
// counts as i64 and the valid flag as a single byte.
func EncodePhaTable(counts []int64, mask []bool, engine endian.EndianEngine) []byte {
	buf := make([]byte, 0, len(counts)*PhaRowSize)
	for i, c := range counts {
		buf = engine.AppendUint64(buf, uint64(c))
		if mask[i] {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	return buf
}

// DecodePhaTable parses a source spectrum table of n channels.
func DecodePhaTable(data []byte, n int, engine endian.EndianEngine) (counts []int64, mask []bool, err error) {
	if len(data) != n*PhaRowSize {
		return nil, nil, errs.ErrInvalidSectionSize
	}

	counts = make([]int64, n)
	mask = make([]bool, n)
	for i := 0; i < n; i++ {
		off := i * PhaRowSize
		counts[i] = int64(engine.Uint64(data[off : off+8]))
		mask[i] = data[off+8] != 0
	}

	return counts, mask, nil
}

// EncodeBakTable serializes the background spectrum table: per channel, the
// rate and uncertainty as f64 and the valid flag as a single byte.
func EncodeBakTable(rates, uncert []float64, mask []bool, engine endian.EndianEngine) []byte {
	buf := make([]byte, 0, len(rates)*BakRowSize)
	for i := range rates {
		buf = engine.AppendUint64(buf, math.Float64bits(rates[i]))
		buf = engine.AppendUint64(buf, math.Float64bits(uncert[i]))
		if mask[i] {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	return buf
}

// DecodeBakTable parses a background spectrum table of n channels.
func DecodeBakTable(data []byte, n int, engine endian.EndianEngine) (rates, uncert []float64, mask []bool, err error) {
	if len(data) != n*BakRowSize {
		return nil, nil, nil, errs.ErrInvalidSectionSize
	}

	rates = make([]float64, n)
	uncert = make([]float64, n)
	mask = make([]bool, n)
	for i := 0; i < n; i++ {
		off := i * BakRowSize
		rates[i] = math.Float64frombits(engine.Uint64(data[off : off+8]))
		uncert[i] = math.Float64frombits(engine.Uint64(data[off+8 : off+16]))
		mask[i] = data[off+16] != 0
	}

	return rates, uncert, mask, nil
}

// EncodeGtiTable serializes the good time interval table: per interval, the
// start and stop times as f64.
func EncodeGtiTable(start, stop []float64, engine endian.EndianEngine) []byte {
	buf := make([]byte, 0, len(start)*GtiRowSize)
	for i := range start {
		buf = engine.AppendUint64(buf, math.Float64bits(start[i]))
		buf = engine.AppendUint64(buf, math.Float64bits(stop[i]))
	}

	return buf
}

// DecodeGtiTable parses a good time interval table of n intervals.
func DecodeGtiTable(data []byte, n int, engine endian.EndianEngine) (start, stop []float64, err error) {
	if len(data) != n*GtiRowSize {
		return nil, nil, errs.ErrInvalidSectionSize
	}

	start = make([]float64, n)
	stop = make([]float64, n)
	for i := 0; i < n; i++ {
		off := i * GtiRowSize
		start[i] = math.Float64frombits(engine.Uint64(data[off : off+8]))
		stop[i] = math.Float64frombits(engine.Uint64(data[off+8 : off+16]))
	}

	return start, stop, nil
}
