package section

import (
	"math"

	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
)

// FileHeader represents the fixed-size header section at the start of a
// spectrum file.
//
// Section boundaries are implied by consecutive offsets: the header payload
// spans [HeaderPayloadOffset, EboundsOffset), the energy boundary table
// spans [EboundsOffset, SpectrumOffset), the spectrum table spans
// [SpectrumOffset, GtiOffset), and the good time interval table runs from
// GtiOffset to the checksum trailer.
type FileHeader struct {
	// ChannelCount is the number of energy channels, max to 4294967295.
	ChannelCount uint32 // byte offset 4-7
	// GtiCount is the number of good time intervals.
	GtiCount uint32 // byte offset 8-11
	// HeaderPayloadOffset is the byte offset to the start of the keyword
	// header payload section. It always equals HeaderSize in version 1.
	HeaderPayloadOffset uint32 // byte offset 12-15
	// EboundsOffset is the byte offset to the start of the energy boundary
	// table. It records the offset after the compressed (if any) header payload.
	EboundsOffset uint32 // byte offset 16-19
	// SpectrumOffset is the byte offset to the start of the spectrum table.
	SpectrumOffset uint32 // byte offset 20-23
	// GtiOffset is the byte offset to the start of the good time interval table.
	GtiOffset uint32 // byte offset 24-27
	// TriggerTime is the reference event time. Only meaningful when the
	// flag's trigger time bit is set; zero otherwise.
	TriggerTime float64 // byte offset 28-35
	// Exposure is the live exposure time of the record in seconds.
	Exposure float64 // byte offset 36-43

	// Flag is a packed field for various flags and magic number.
	Flag FileFlag // byte offset 0-3, bytes 44-47 reserved
}

// NewFileHeader creates a new FileHeader for the given record kind.
// The counts and section offsets are set when the encoder finishes.
func NewFileHeader(kind format.RecordKind) *FileHeader {
	return &FileHeader{
		Flag:                NewFileFlag(kind),
		HeaderPayloadOffset: HeaderPayloadOffsetStart,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 48 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 48 bytes, or flag validation errors
func (h *FileHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Parse options first to determine endianness (always little-endian for Options field itself)
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]

	engine := h.Flag.GetEndianEngine()

	h.ChannelCount = engine.Uint32(data[4:8])
	h.GtiCount = engine.Uint32(data[8:12])
	h.HeaderPayloadOffset = engine.Uint32(data[12:16])
	h.EboundsOffset = engine.Uint32(data[16:20])
	h.SpectrumOffset = engine.Uint32(data[20:24])
	h.GtiOffset = engine.Uint32(data[24:28])
	h.TriggerTime = math.Float64frombits(engine.Uint64(data[28:36]))
	h.Exposure = math.Float64frombits(engine.Uint64(data[36:44]))

	return h.Flag.Validate()
}

// Bytes serializes the FileHeader into a byte slice.
func (h *FileHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	// The Options word is always stored little-endian so a reader can
	// recover the endianness bit before picking an engine, mirroring Parse.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	engine.PutUint32(b[4:8], h.ChannelCount)
	engine.PutUint32(b[8:12], h.GtiCount)
	engine.PutUint32(b[12:16], h.HeaderPayloadOffset)
	engine.PutUint32(b[16:20], h.EboundsOffset)
	engine.PutUint32(b[20:24], h.SpectrumOffset)
	engine.PutUint32(b[24:28], h.GtiOffset)
	engine.PutUint64(b[28:36], math.Float64bits(h.TriggerTime))
	engine.PutUint64(b[36:44], math.Float64bits(h.Exposure))

	return b
}

// ValidateOffsets checks the section offsets against the total payload
// length (file length minus the checksum trailer). Offsets must be
// monotonically increasing, start at the end of the fixed header, and stay
// within the payload.
func (h *FileHeader) ValidateOffsets(payloadLen int) error {
	if h.HeaderPayloadOffset != HeaderPayloadOffsetStart {
		return errs.ErrInvalidSectionOffset
	}
	if h.EboundsOffset < h.HeaderPayloadOffset || h.SpectrumOffset < h.EboundsOffset {
		return errs.ErrInvalidSectionOffset
	}
	if h.GtiOffset < h.SpectrumOffset || int(h.GtiOffset) > payloadLen {
		return errs.ErrInvalidSectionOffset
	}

	return nil
}

// ParseFileHeader parses a FileHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 48 bytes)
//
// Returns:
//   - FileHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < HeaderSize {
		return FileHeader{}, errs.ErrInvalidHeaderSize
	}

	h := FileHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return FileHeader{}, err
	}

	return h, nil
}
