package section

import "github.com/spexlab/spex/format"

const (
	// Bit masks for the file header flag word
	TriggerTimeMask  = 0x0001 // Mask for trigger time presence bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicPhaV1Opt = 0xEC10 // MagicPhaV1Opt is the version 1 magic number for source spectrum files.
	MagicBakV1Opt = 0xED10 // MagicBakV1Opt is the version 1 magic number for background spectrum files.

	// Table compression (bits 0-3 of the compression byte)
	TableCompressionNone = uint8(format.CompressionNone) // TableCompressionNone represents uncompressed tables.
	TableCompressionZstd = uint8(format.CompressionZstd) // TableCompressionZstd represents Zstandard compression for tables.
	TableCompressionS2   = uint8(format.CompressionS2)   // TableCompressionS2 represents S2 compression for tables.
	TableCompressionLZ4  = uint8(format.CompressionLZ4)  // TableCompressionLZ4 represents LZ4 compression for tables.

	// Header payload compression (bits 4-7 of the compression byte)
	HeaderCompressionNone = uint8(format.CompressionNone) << 4 // HeaderCompressionNone represents an uncompressed header payload.
	HeaderCompressionZstd = uint8(format.CompressionZstd) << 4 // HeaderCompressionZstd represents Zstandard compression for the header payload.
	HeaderCompressionS2   = uint8(format.CompressionS2) << 4   // HeaderCompressionS2 represents S2 compression for the header payload.
	HeaderCompressionLZ4  = uint8(format.CompressionLZ4) << 4  // HeaderCompressionLZ4 represents LZ4 compression for the header payload.
)

// offset and section sizes in the spectrum file
const (
	HeaderSize               = 48         // fixed file header size in bytes (shared by both record kinds)
	EboundsRowSize           = 16         // energy boundary row: low edge f64 + high edge f64
	PhaRowSize               = 9          // source spectrum row: counts i64 + valid flag u8
	BakRowSize               = 17         // background spectrum row: rate f64 + uncertainty f64 + valid flag u8
	GtiRowSize               = 16         // good time interval row: start f64 + stop f64
	ChecksumSize             = 8          // xxHash64 trailer over all preceding bytes
	HeaderPayloadOffsetStart = HeaderSize // byte offset where the header payload section starts
)
