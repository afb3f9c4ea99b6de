package compress

// ZstdCompressor compresses snapshot payloads with Zstandard. It has the
// best compression ratio of the supported codecs and suits cold storage of
// dictionaries that are loaded rarely and read many times.
//
// Two implementations are selected at build time: a cgo binding when cgo is
// available, and a pure-Go fallback otherwise. Both produce standard zstd
// frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
