// Package skdict implements a surrogate-key dictionary: a bidirectional
// mapping between byte-string values and small dense integer IDs, used to
// compress high-cardinality columns in analytical storage.
//
// Because one big search-tree dictionary is expensive to build and hold in
// memory, the value space is partitioned across independent sub-dictionaries
// arranged as a forest. The forest routes lookups to the owning partition
// and lays the partitions' local ID ranges end to end, so callers see a
// single ordered dictionary with one contiguous ID space.
//
// # Core Features
//
//   - Exact and nearest-match ("rounding") value→ID lookup
//   - Dense, contiguous IDs across partitions, offset by a composable base ID
//   - Pluggable value converters, resolved by name on load
//   - Custom binary wire format plus a compressed snapshot container
//     (None, Zstd, S2, LZ4)
//   - Immutable after construction: safe for unsynchronized concurrent reads
//
// # Basic Usage
//
// Building and querying a forest of two partitions:
//
//	p0, _ := dict.NewStringBlock([]string{"apple", "banana"}, 0)
//	p1, _ := dict.NewStringBlock([]string{"cherry", "damson"}, 0)
//	f, _ := skdict.NewStringForest(
//	    []dict.Codec{p0, p1},
//	    [][]byte{[]byte("apple"), []byte("cherry")}, // per-partition minimum
//	    []int{0, 2},                                 // accumulated offsets
//	    0,                                           // base ID
//	)
//
//	id, _ := f.IDOf("cherry", dict.RoundNone) // 2
//	v, _ := f.ValueOf(3)                      // "damson"
//	id, _ = f.IDOf("blueberry", dict.RoundUp) // 2, nearest larger entry
//
// Persisting and loading:
//
//	var buf bytes.Buffer
//	_ = f.WriteSnapshot(&buf, format.CompressionZstd)
//	loaded, _ := skdict.LoadSnapshot[string](&buf)
//
// # Package Structure
//
// This package provides thin wrappers over the forest package for the most
// common value types. The dict package holds the partition contract and a
// sorted-block partition; converter holds the value codecs and their
// registry; compress and format back the snapshot container.
package skdict

import (
	"io"

	"github.com/skdict/skdict/converter"
	"github.com/skdict/skdict/dict"
	"github.com/skdict/skdict/forest"
)

type (
	// StringForest is a forest over string values.
	StringForest = forest.Forest[string]
	// BytesForest is a forest over raw byte-string values.
	BytesForest = forest.Forest[[]byte]
)

// NewStringForest builds a forest over string values using the built-in
// string converter. See forest.New for the meaning of the arguments.
func NewStringForest(trees []dict.Codec, divides [][]byte, offsets []int, baseID int) (*StringForest, error) {
	return forest.New[string](trees, divides, offsets, converter.String{}, baseID)
}

// NewBytesForest builds a forest over raw byte-string values with no
// converter.
func NewBytesForest(trees []dict.Codec, divides [][]byte, offsets []int, baseID int) (*BytesForest, error) {
	return forest.New[[]byte](trees, divides, offsets, nil, baseID)
}

// Load reconstructs a forest from its bare wire form.
func Load[T any](r io.Reader, opts ...forest.DeserializeOption) (*forest.Forest[T], error) {
	return forest.Deserialize[T](r, opts...)
}

// LoadSnapshot reconstructs a forest from a snapshot container.
func LoadSnapshot[T any](r io.Reader, opts ...forest.DeserializeOption) (*forest.Forest[T], error) {
	return forest.ReadSnapshot[T](r, opts...)
}
