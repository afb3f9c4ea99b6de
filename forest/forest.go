// Package forest composes independent partition dictionaries into one large
// ordered dictionary.
//
// A single search-tree dictionary gets expensive to build and hold in memory
// as cardinality grows, so the value space is split across partitions, each
// an independent dict.Codec over a contiguous slice of the sorted values.
// Forest adds the routing layer on top: a sorted array of partition lower
// boundaries picks the owning partition for a value, and accumulated
// ID-space offsets plus a base ID turn partition-local IDs into one globally
// dense, contiguous ID space. To callers the forest behaves exactly like one
// dictionary.
//
// A forest is immutable once constructed or deserialized; all lookups are
// pure reads and safe for unsynchronized concurrent use.
package forest

import (
	"bytes"
	"cmp"
	"fmt"
	"io"

	"github.com/skdict/skdict/converter"
	"github.com/skdict/skdict/dict"
	"github.com/skdict/skdict/errs"
	"github.com/skdict/skdict/internal/hash"
)

// Forest presents an ordered list of partition dictionaries as a single
// dictionary over values of type T.
//
// Global IDs are computed as localID + accumulatedOffset[partition] + baseID,
// so the ID space is dense across partition boundaries. A non-zero baseID
// lets multiple dictionaries be composed into disjoint ID ranges.
type Forest[T any] struct {
	trees   []dict.Codec
	divides [][]byte
	offsets []int
	conv    converter.Converter[T]
	baseID  int

	// treeMax caches each partition's largest value. Derived from trees at
	// construction and after deserialization, never persisted.
	treeMax [][]byte
}

var _ dict.Dictionary[string] = (*Forest[string])(nil)

// New builds a forest over trees, which must be ordered by the value ranges
// they cover.
//
// divides holds one boundary per partition: the smallest value the partition
// covers, strictly ascending. offsets holds the accumulated ID-space sizes
// of all preceding partitions, with offsets[0] == 0. conv may be nil, in
// which case T must be []byte and values are used as-is.
//
// The input slices are retained; callers must not modify them afterwards.
func New[T any](trees []dict.Codec, divides [][]byte, offsets []int, conv converter.Converter[T], baseID int) (*Forest[T], error) {
	if len(offsets) != len(trees) {
		return nil, fmt.Errorf("%w: %d trees, %d offsets", errs.ErrLengthMismatch, len(trees), len(offsets))
	}
	if len(offsets) > 0 && offsets[0] != 0 {
		return nil, fmt.Errorf("%w: first accumulated offset is %d, want 0", errs.ErrLengthMismatch, offsets[0])
	}
	if len(divides) > len(trees) {
		return nil, fmt.Errorf("%w: %d trees, %d divides", errs.ErrLengthMismatch, len(trees), len(divides))
	}
	for i := 1; i < len(divides); i++ {
		if bytes.Compare(divides[i-1], divides[i]) >= 0 {
			return nil, fmt.Errorf("%w: index %d", errs.ErrUnsortedDivides, i)
		}
	}

	f := &Forest[T]{
		trees:   trees,
		divides: divides,
		offsets: offsets,
		conv:    conv,
		baseID:  baseID,
	}
	if err := f.initTreeMax(); err != nil {
		return nil, err
	}

	return f, nil
}

// initTreeMax recomputes the per-partition maximum values. Called after
// construction and deserialization, the only two points where the partition
// list changes.
func (f *Forest[T]) initTreeMax() error {
	f.treeMax = make([][]byte, 0, len(f.trees))
	for i, tree := range f.trees {
		maxValue, err := tree.ValueBytesOf(tree.MaxID())
		if err != nil {
			return fmt.Errorf("resolving max value of partition %d: %w", i, err)
		}
		f.treeMax = append(f.treeMax, maxValue)
	}

	return nil
}

// BaseID returns the global offset added to every ID.
func (f *Forest[T]) BaseID() int {
	return f.baseID
}

// Converter returns the configured converter, or nil if values are raw byte
// strings.
func (f *Forest[T]) Converter() converter.Converter[T] {
	return f.conv
}

// Trees returns the ordered partition list. The returned slice is a copy;
// the partitions themselves are shared and must not be mutated.
func (f *Forest[T]) Trees() []dict.Codec {
	out := make([]dict.Codec, len(f.trees))
	copy(out, f.trees)

	return out
}

// MinID returns the smallest assigned ID, or baseID for an empty forest.
func (f *Forest[T]) MinID() int {
	if len(f.trees) == 0 {
		return f.baseID
	}

	return f.trees[0].MinID() + f.baseID
}

// MaxID returns the largest assigned ID. For an empty forest this is
// baseID-1, an empty but internally consistent range.
func (f *Forest[T]) MaxID() int {
	if len(f.trees) == 0 {
		return f.baseID - 1
	}
	last := len(f.trees) - 1

	return f.offsets[last] + f.trees[last].MaxID() + f.baseID
}

// Size returns the number of entries.
func (f *Forest[T]) Size() int {
	return f.MaxID() - f.MinID() + 1
}

// SizeOfID returns the number of bytes needed to represent one past the
// largest assigned ID, or -1 for an empty forest.
func (f *Forest[T]) SizeOfID() int {
	if len(f.trees) == 0 {
		return -1
	}
	last := len(f.trees) - 1

	return dict.SizeForValue(f.baseID + f.offsets[last] + f.trees[last].MaxID() + 1)
}

// SizeOfValue returns the byte length of the longest stored value across all
// partitions, or -1 for an empty forest.
func (f *Forest[T]) SizeOfValue() int {
	maxSize := -1
	for _, tree := range f.trees {
		maxSize = max(maxSize, tree.SizeOfValue())
	}

	return maxSize
}

// IDOf returns the ID assigned to value, applying the rounding policy on a
// miss.
func (f *Forest[T]) IDOf(value T, rounding dict.Rounding) (int, error) {
	b, err := f.encode(value)
	if err != nil {
		return 0, err
	}

	return f.IDOfBytes(b, rounding)
}

// IDOfBytes returns the ID assigned to the byte-string value.
//
// On a miss with dict.RoundUp, a value smaller than every entry resolves to
// MinID and a value falling in the gap after a partition's maximum advances
// into the next partition; past the last partition the lookup fails even
// under rounding. dict.RoundDown rounds within the routed partition only.
func (f *Forest[T]) IDOfBytes(value []byte, rounding dict.Rounding) (int, error) {
	var index int
	if len(f.trees) == 1 {
		// A singleton forest cannot misroute.
		index = 0
	} else {
		index = f.findTreeByValue(value)
		if index < 0 {
			if rounding > 0 {
				// Searching value smaller than the smallest value in dict.
				return f.MinID(), nil
			}

			return 0, fmt.Errorf("%w: %q", errs.ErrValueNotFound, value)
		}

		if rounding > 0 {
			if bytes.Compare(value, f.treeMax[index]) > 0 {
				index++
			}
			if index >= len(f.trees) {
				return 0, fmt.Errorf("%w: %q", errs.ErrValueNotFound, value)
			}
		}
	}

	id, err := f.trees[index].IDOf(value, rounding)
	if err != nil {
		return 0, err
	}

	return id + f.offsets[index] + f.baseID, nil
}

// ValueOf returns the value stored under id, decoded through the converter.
func (f *Forest[T]) ValueOf(id int) (T, error) {
	var zero T
	b, err := f.ValueBytesOf(id)
	if err != nil {
		return zero, err
	}

	return f.decode(b)
}

// ValueBytesOf returns the byte-string value stored under id. The returned
// slice must not be modified.
func (f *Forest[T]) ValueBytesOf(id int) ([]byte, error) {
	index, err := f.routeID(id)
	if err != nil {
		return nil, err
	}

	return f.trees[index].ValueBytesOf(f.treeInnerID(id, index))
}

// AppendValueBytes appends the byte-string value stored under id to dst and
// returns the extended slice.
func (f *Forest[T]) AppendValueBytes(dst []byte, id int) ([]byte, error) {
	index, err := f.routeID(id)
	if err != nil {
		return dst, err
	}

	return f.trees[index].AppendValueBytes(dst, f.treeInnerID(id, index))
}

// ContainsValue reports whether value has an exact entry.
func (f *Forest[T]) ContainsValue(value T) bool {
	_, err := f.IDOf(value, dict.RoundNone)

	return err == nil
}

// Contains reports whether every entry of other is also present in f.
//
// Per-value misses are treated as "absent", not propagated: this is a
// tolerant structural subset check over other's full ID range, not a
// set-equality test.
func (f *Forest[T]) Contains(other dict.Dictionary[T]) bool {
	if other.Size() > f.Size() {
		return false
	}

	for id := other.MinID(); id <= other.MaxID(); id++ {
		v, err := other.ValueOf(id)
		if err != nil {
			return false
		}
		if !f.ContainsValue(v) {
			return false
		}
	}

	return true
}

// Equal reports whether other has the same base ID and an equal ordered
// partition list. Divides, offsets and the converter are derivable from the
// partitions plus base ID and do not take part in equality.
func (f *Forest[T]) Equal(other *Forest[T]) bool {
	if other == nil {
		return false
	}
	if f.baseID != other.baseID || len(f.trees) != len(other.trees) {
		return false
	}
	for i, tree := range f.trees {
		if !tree.Equal(other.trees[i]) {
			return false
		}
	}

	return true
}

// Fingerprint returns the xxHash64 of the forest's serialized form, a cheap
// content identity to accompany Equal.
func (f *Forest[T]) Fingerprint() (uint64, error) {
	digest := hash.NewDigest()
	if err := f.Serialize(digest); err != nil {
		return 0, err
	}

	return digest.Sum64(), nil
}

// Dump writes a human-readable rendering of the forest for diagnostics. The
// output is best effort and not a stable contract.
func (f *Forest[T]) Dump(w io.Writer) {
	fmt.Fprintln(w, "DictionaryForest")
	fmt.Fprintf(w, "baseID:%d\n", f.baseID)
	fmt.Fprint(w, "value divides:")
	for _, d := range f.divides {
		fmt.Fprintf(w, " %q", d)
	}
	fmt.Fprint(w, "\noffset divides:")
	for _, o := range f.offsets {
		fmt.Fprintf(w, " %d", o)
	}
	fmt.Fprintln(w)
	for i, tree := range f.trees {
		fmt.Fprintf(w, "----tree %d--------\n", i)
		tree.Dump(w)
	}
}

// findTreeByValue routes a value to the partition whose range should be
// checked. A negative result means the value is smaller than every
// partition's boundary.
func (f *Forest[T]) findTreeByValue(value []byte) int {
	return lowerBound(value, f.divides, bytes.Compare)
}

// findTreeByID routes a global ID to its partition. A negative result is an
// ID outside any partition's range.
func (f *Forest[T]) findTreeByID(id int) (int, error) {
	index := lowerBound(id-f.baseID, f.offsets, cmp.Compare)
	if index < 0 {
		return 0, fmt.Errorf("%w: id %d", errs.ErrIDNotFound, id)
	}

	return index, nil
}

func (f *Forest[T]) routeID(id int) (int, error) {
	if len(f.trees) == 1 {
		return 0, nil
	}

	return f.findTreeByID(id)
}

// treeInnerID translates a global ID to the partition-local ID.
func (f *Forest[T]) treeInnerID(id int, index int) int {
	return id - f.baseID - f.offsets[index]
}

func (f *Forest[T]) encode(value T) ([]byte, error) {
	if f.conv != nil {
		return f.conv.Encode(value), nil
	}

	b, ok := any(value).([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: cannot encode %T", errs.ErrNoConverter, value)
	}

	return b, nil
}

func (f *Forest[T]) decode(b []byte) (T, error) {
	if f.conv != nil {
		return f.conv.Decode(b), nil
	}

	v, ok := any(b).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: cannot decode into %T", errs.ErrNoConverter, zero)
	}

	return v, nil
}
