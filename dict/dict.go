// Package dict defines the dictionary contracts of skdict.
//
// A dictionary is a bidirectional mapping between byte-string values and
// small dense integer IDs, used to compress high-cardinality columns. The
// package defines two contracts:
//
//   - Codec, the partition-level contract over raw byte strings. A partition
//     covers one contiguous slice of the sorted value space and is composed
//     into a forest by the forest package.
//   - Dictionary, the typed whole-dictionary contract satisfied by
//     forest.Forest.
//
// It also provides Block, a sorted-array Codec implementation.
//
// All implementations are write-once, read-many: once constructed or
// deserialized they are never mutated, so reads need no synchronization.
package dict

import "io"

// Rounding selects the lookup behavior when the exact value is absent.
//
// The sign carries the semantics: a positive value rounds up to the nearest
// larger existing value, a negative value rounds down to the nearest smaller
// one, and zero requires an exact match.
type Rounding int

const (
	// RoundNone requires an exact match; a miss is errs.ErrValueNotFound.
	RoundNone Rounding = 0
	// RoundUp substitutes the nearest larger existing value on a miss.
	RoundUp Rounding = 1
	// RoundDown substitutes the nearest smaller existing value on a miss.
	RoundDown Rounding = -1
)

// Codec is the contract a single partition dictionary must satisfy to be
// composed into a forest. IDs here are partition-local; the forest layers
// its offset arithmetic on top.
type Codec interface {
	// MinID returns the smallest local ID.
	MinID() int
	// MaxID returns the largest local ID.
	MaxID() int
	// SizeOfID returns the number of bytes needed to represent any local ID.
	SizeOfID() int
	// SizeOfValue returns the byte length of the longest stored value.
	SizeOfValue() int

	// IDOf returns the local ID of value, applying the rounding policy on a
	// miss. Returns errs.ErrValueNotFound when no entry satisfies the
	// lookup.
	IDOf(value []byte, rounding Rounding) (int, error)

	// ValueBytesOf returns the value stored under the local ID. The returned
	// slice must not be modified. Returns errs.ErrIDNotFound for IDs outside
	// the local range.
	ValueBytesOf(id int) ([]byte, error)

	// AppendValueBytes appends the value stored under the local ID to dst
	// and returns the extended slice.
	AppendValueBytes(dst []byte, id int) ([]byte, error)

	// Serialize writes the partition in its self-delimiting binary form.
	Serialize(w io.Writer) error
	// Deserialize reads the partition back, consuming exactly the bytes
	// Serialize produced.
	Deserialize(r io.Reader) error

	// Equal reports structural equality with another partition.
	Equal(other Codec) bool

	// Dump writes a human-readable rendering for diagnostics. The output is
	// best effort and not a stable contract.
	Dump(w io.Writer)
}

// Factory produces empty Codec instances for deserialization.
type Factory func() Codec

// Dictionary is the typed contract of a complete dictionary over values of
// type T.
type Dictionary[T any] interface {
	// MinID returns the smallest assigned ID.
	MinID() int
	// MaxID returns the largest assigned ID. For an empty dictionary this is
	// MinID()-1, giving a valid empty range.
	MaxID() int
	// Size returns the number of entries, MaxID()-MinID()+1.
	Size() int
	// SizeOfID returns the number of bytes needed to represent any ID, or -1
	// for an empty dictionary.
	SizeOfID() int
	// SizeOfValue returns the byte length of the longest stored value.
	SizeOfValue() int

	// IDOf returns the ID of value, applying the rounding policy on a miss.
	IDOf(value T, rounding Rounding) (int, error)
	// ValueOf returns the value stored under id.
	ValueOf(id int) (T, error)
	// ContainsValue reports whether value has an exact entry.
	ContainsValue(value T) bool
}

// SizeForValue returns the number of bytes needed to represent maxValue,
// i.e. the smallest n with maxValue < 256^n. Zero and negative values need
// no bytes.
func SizeForValue(maxValue int) int {
	size := 0
	for maxValue > 0 {
		size++
		maxValue >>= 8
	}

	return size
}
