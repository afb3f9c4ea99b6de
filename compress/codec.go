// Package compress provides the compression codecs used by dictionary
// snapshot containers.
//
// Serialized dictionaries are dominated by sorted byte-string values with
// heavy shared prefixes, which general-purpose compressors handle well.
// Four algorithms are supported:
//
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fast decompression, moderate compression
//
// Codecs are stateless values safe for concurrent use; implementations pool
// their encoder state internally where the underlying library benefits from
// reuse.
package compress

import (
	"fmt"

	"github.com/skdict/skdict/format"
)

// Compressor compresses a serialized dictionary payload.
type Compressor interface {
	// Compress compresses the input and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously produced by the matching
// Compressor.
type Decompressor interface {
	// Decompress decompresses the input and returns a newly allocated
	// result. It returns an error if the data is corrupted or was produced
	// by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
