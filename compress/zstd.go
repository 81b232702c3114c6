package compress

// ZstdCompressor provides Zstandard compression, the default for the
// header payload whose repetitive keyword names and comments compress well.
//
// Two implementations exist behind build tags: a cgo binding to libzstd
// (valyala/gozstd) when cgo is available, and a pure-Go fallback
// (klauspost/compress/zstd) otherwise. Both produce standard zstd frames
// and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
