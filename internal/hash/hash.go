// Package hash wraps the xxHash64 primitives used for dictionary content
// fingerprints.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given bytes.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewDigest returns a streaming xxHash64 digest. The digest implements
// io.Writer, so serialized forms can be streamed straight into it.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
