package phafile

import (
	"fmt"
	"os"

	"github.com/spexlab/spex/compress"
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
	"github.com/spexlab/spex/internal/hash"
	"github.com/spexlab/spex/section"
)

// Decode parses a complete container byte slice into a File.
//
// The checksum trailer is verified against the preceding bytes before any
// section is parsed; a mismatch reports ErrChecksumMismatch and no partial
// result.
func Decode(data []byte) (*File, error) {
	if len(data) < section.HeaderSize+section.ChecksumSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	hdr, err := section.ParseFileHeader(data)
	if err != nil {
		return nil, err
	}
	engine := hdr.Flag.GetEndianEngine()

	payloadLen := len(data) - section.ChecksumSize
	stored := engine.Uint64(data[payloadLen:])
	if computed := hash.Checksum(data[:payloadLen]); computed != stored {
		return nil, fmt.Errorf("%w: stored %#016x, computed %#016x",
			errs.ErrChecksumMismatch, stored, computed)
	}

	if err := hdr.ValidateOffsets(payloadLen); err != nil {
		return nil, err
	}

	headerCodec, err := compress.GetCodec(hdr.Flag.HeaderCompression())
	if err != nil {
		return nil, err
	}
	tableCodec, err := compress.GetCodec(hdr.Flag.TableCompression())
	if err != nil {
		return nil, err
	}

	headerPayload, err := headerCodec.Decompress(data[hdr.HeaderPayloadOffset:hdr.EboundsOffset])
	if err != nil {
		return nil, fmt.Errorf("decompress header payload: %w", err)
	}
	headers, err := section.DecodeHeaderPayload(headerPayload, engine)
	if err != nil {
		return nil, err
	}

	n := int(hdr.ChannelCount)
	gtiCount := int(hdr.GtiCount)

	eboundsTable, err := tableCodec.Decompress(data[hdr.EboundsOffset:hdr.SpectrumOffset])
	if err != nil {
		return nil, fmt.Errorf("decompress ebounds table: %w", err)
	}
	lo, hi, err := section.DecodeEboundsTable(eboundsTable, n, engine)
	if err != nil {
		return nil, err
	}

	spectrumTable, err := tableCodec.Decompress(data[hdr.SpectrumOffset:hdr.GtiOffset])
	if err != nil {
		return nil, fmt.Errorf("decompress spectrum table: %w", err)
	}

	f := &File{
		Kind:           hdr.Flag.RecordKind(),
		EboundsLo:      lo,
		EboundsHi:      hi,
		Exposure:       hdr.Exposure,
		HasTriggerTime: hdr.Flag.HasTriggerTime(),
		Headers:        headers,
	}
	if f.HasTriggerTime {
		f.TriggerTime = hdr.TriggerTime
	}

	switch f.Kind {
	case format.KindBak:
		f.Rates, f.Uncert, f.ChannelMask, err = section.DecodeBakTable(spectrumTable, n, engine)
	default:
		f.Counts, f.ChannelMask, err = section.DecodePhaTable(spectrumTable, n, engine)
	}
	if err != nil {
		return nil, err
	}

	gtiTable, err := tableCodec.Decompress(data[hdr.GtiOffset:payloadLen])
	if err != nil {
		return nil, fmt.Errorf("decompress gti table: %w", err)
	}
	f.GtiStart, f.GtiStop, err = section.DecodeGtiTable(gtiTable, gtiCount, engine)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// ReadFile reads and decodes the container at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}
