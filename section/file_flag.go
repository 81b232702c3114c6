package section

import (
	"github.com/spexlab/spex/endian"
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/format"
)

// FileFlag represents the packed flag fields in the file header.
type FileFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is trigger time presence flag, 0 means no trigger time, 1 means present.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are magic number to identify the file format:
	//   - 0xEC10 (0b1110_1100_0001_0000): Source spectrum file format v1
	//   - 0xED10 (0b1110_1101_0001_0000): Background spectrum file format v1
	Options uint16

	// CompressionType is an enum indicating the compression used for this file.
	// bit 0-3 for table compression, bit 4-7 for header payload compression.
	CompressionType uint8
}

var (
	validTableCompressions = map[uint8]struct{}{
		uint8(format.CompressionNone): {},
		uint8(format.CompressionZstd): {},
		uint8(format.CompressionS2):   {},
		uint8(format.CompressionLZ4):  {},
	}

	validHeaderCompressions = map[uint8]struct{}{
		uint8(format.CompressionNone): {},
		uint8(format.CompressionZstd): {},
		uint8(format.CompressionS2):   {},
		uint8(format.CompressionLZ4):  {},
	}
)

// NewFileFlag creates a new FileFlag for the given record kind with default
// settings: little-endian, no trigger time, uncompressed sections.
func NewFileFlag(kind format.RecordKind) FileFlag {
	flag := FileFlag{
		CompressionType: TableCompressionNone | HeaderCompressionNone,
	}
	switch kind {
	case format.KindBak:
		flag.Options = MagicBakV1Opt
	default:
		flag.Options = MagicPhaV1Opt
	}
	flag.WithLittleEndian()

	return flag
}

// HasTriggerTime returns whether a trigger time is recorded.
func (f FileFlag) HasTriggerTime() bool {
	return (f.Options & TriggerTimeMask) != 0
}

// SetHasTriggerTime enables or disables the trigger time field.
func (f *FileFlag) SetHasTriggerTime(enabled bool) {
	if enabled {
		f.Options |= TriggerTimeMask
	} else {
		f.Options &^= TriggerTimeMask
	}
}

// IsLittleEndian returns whether the data is little-endian.
func (f FileFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f FileFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *FileFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *FileFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f FileFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// RecordKind returns the record kind identified by the magic number.
func (f FileFlag) RecordKind() format.RecordKind {
	switch f.GetMagicNumber() {
	case MagicPhaV1Opt:
		return format.KindPha
	case MagicBakV1Opt:
		return format.KindBak
	default:
		return 0
	}
}

// TableCompression returns the table compression type from bits 0-3 of CompressionType.
func (f FileFlag) TableCompression() format.CompressionType {
	return format.CompressionType(f.CompressionType & 0x0F)
}

// SetTableCompression sets the table compression type in bits 0-3 of CompressionType.
func (f *FileFlag) SetTableCompression(compression format.CompressionType) {
	f.CompressionType &^= 0x0F // Clear bits 0-3
	f.CompressionType |= (uint8(compression) & 0x0F)
}

// HeaderCompression returns the header payload compression type from bits 4-7 of CompressionType.
func (f FileFlag) HeaderCompression() format.CompressionType {
	return format.CompressionType((f.CompressionType >> 4) & 0x0F)
}

// SetHeaderCompression sets the header payload compression type in bits 4-7 of CompressionType.
func (f *FileFlag) SetHeaderCompression(compression format.CompressionType) {
	f.CompressionType &^= 0xF0 // Clear bits 4-7
	f.CompressionType |= (uint8(compression) & 0x0F) << 4
}

// IsValidMagicNumber checks if the magic number is valid.
func (f FileFlag) IsValidMagicNumber() bool {
	magic := f.GetMagicNumber()
	return magic == MagicPhaV1Opt || magic == MagicBakV1Opt
}

// IsValidCompression checks if the compression types are valid.
func (f FileFlag) IsValidCompression() bool {
	tableCompression := f.CompressionType & 0x0F
	headerCompression := (f.CompressionType >> 4) & 0x0F

	_, validTable := validTableCompressions[tableCompression]
	_, validHeader := validHeaderCompressions[headerCompression]

	return validTable && validHeader
}

// Validate checks if the flag header contains valid values.
func (f FileFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}

	if (f.Options & ReservedBitsMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.IsValidCompression() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f FileFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
