package format

type (
	RecordKind      uint8
	CompressionType uint8
)

const (
	KindPha RecordKind = 0x1 // KindPha is a source spectrum record (counts per channel).
	KindBak RecordKind = 0x2 // KindBak is a background spectrum record (rate and uncertainty per channel).

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k RecordKind) String() string {
	switch k {
	case KindPha:
		return "Pha"
	case KindBak:
		return "Bak"
	default:
		return "Unknown"
	}
}

// Extension returns the conventional file extension for the record kind.
func (k RecordKind) Extension() string {
	switch k {
	case KindPha:
		return ".pha"
	case KindBak:
		return ".bak"
	default:
		return ""
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
