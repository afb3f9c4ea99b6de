package dict

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/skdict/skdict/errs"
	"github.com/skdict/skdict/internal/wire"
)

// Block is a partition dictionary backed by a sorted array of byte-string
// values. Local IDs are assigned densely from minID in value order.
//
// Block trades the memory compactness of a prefix tree for simplicity; it
// satisfies the same Codec contract, so forests are built the same way over
// either. Immutable after construction or deserialization.
type Block struct {
	minID  int
	values [][]byte

	// maxLen is derived from values, never persisted.
	maxLen int
}

var _ Codec = (*Block)(nil)

// NewBlock builds a Block over values, which must be non-empty and strictly
// ascending in byte-lexicographic order. The slice is retained; the caller
// must not modify it afterwards.
func NewBlock(values [][]byte, minID int) (*Block, error) {
	if len(values) == 0 {
		return nil, errs.ErrEmptyPartition
	}
	for i := 1; i < len(values); i++ {
		if bytes.Compare(values[i-1], values[i]) >= 0 {
			return nil, fmt.Errorf("%w: index %d", errs.ErrUnsortedValues, i)
		}
	}

	b := &Block{minID: minID, values: values}
	b.initMaxLen()

	return b, nil
}

// NewStringBlock builds a Block over the UTF-8 bytes of values. The strings
// must be strictly ascending.
func NewStringBlock(values []string, minID int) (*Block, error) {
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = []byte(v)
	}

	return NewBlock(raw, minID)
}

func (b *Block) initMaxLen() {
	b.maxLen = 0
	for _, v := range b.values {
		if len(v) > b.maxLen {
			b.maxLen = len(v)
		}
	}
}

// MinID returns the smallest local ID.
func (b *Block) MinID() int {
	return b.minID
}

// MaxID returns the largest local ID.
func (b *Block) MaxID() int {
	return b.minID + len(b.values) - 1
}

// Len returns the number of entries.
func (b *Block) Len() int {
	return len(b.values)
}

// SizeOfID returns the number of bytes needed to represent one past the
// largest local ID.
func (b *Block) SizeOfID() int {
	return SizeForValue(b.MaxID() + 1)
}

// SizeOfValue returns the byte length of the longest stored value.
func (b *Block) SizeOfValue() int {
	return b.maxLen
}

// IDOf returns the local ID of value. On a miss, RoundUp resolves to the
// first larger entry and RoundDown to the last smaller one; RoundNone fails.
func (b *Block) IDOf(value []byte, rounding Rounding) (int, error) {
	idx, found := slices.BinarySearchFunc(b.values, value, bytes.Compare)
	if found {
		return b.minID + idx, nil
	}

	switch {
	case rounding > 0:
		if idx < len(b.values) {
			return b.minID + idx, nil
		}
	case rounding < 0:
		if idx > 0 {
			return b.minID + idx - 1, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrValueNotFound, value)
}

// ValueBytesOf returns the value stored under the local ID. The returned
// slice must not be modified.
func (b *Block) ValueBytesOf(id int) ([]byte, error) {
	idx := id - b.minID
	if idx < 0 || idx >= len(b.values) {
		return nil, fmt.Errorf("%w: local id %d outside [%d, %d]", errs.ErrIDNotFound, id, b.MinID(), b.MaxID())
	}

	return b.values[idx], nil
}

// AppendValueBytes appends the value stored under the local ID to dst.
func (b *Block) AppendValueBytes(dst []byte, id int) ([]byte, error) {
	v, err := b.ValueBytesOf(id)
	if err != nil {
		return dst, err
	}

	return append(dst, v...), nil
}

// Equal reports whether other is a Block with the same minID and values.
func (b *Block) Equal(other Codec) bool {
	ob, ok := other.(*Block)
	if !ok {
		return false
	}
	if b.minID != ob.minID || len(b.values) != len(ob.values) {
		return false
	}
	for i := range b.values {
		if !bytes.Equal(b.values[i], ob.values[i]) {
			return false
		}
	}

	return true
}

// Serialize writes the block as
// [minID:int32][count:int32] followed by count length-prefixed values.
// The form is self-delimiting: Deserialize consumes exactly these bytes.
func (b *Block) Serialize(w io.Writer) error {
	if err := wire.WriteInt32(w, b.minID); err != nil {
		return err
	}
	if err := wire.WriteInt32(w, len(b.values)); err != nil {
		return err
	}
	for _, v := range b.values {
		if err := wire.WriteBytes(w, v); err != nil {
			return err
		}
	}

	return nil
}

// Deserialize reads a block previously written by Serialize and validates
// that the values are strictly ascending.
func (b *Block) Deserialize(r io.Reader) error {
	minID, err := wire.ReadInt32(r)
	if err != nil {
		return err
	}
	count, err := wire.ReadInt32(r)
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("%w: partition value count %d", errs.ErrMalformedStream, count)
	}

	values := make([][]byte, count)
	for i := range values {
		v, err := wire.ReadBytes(r)
		if err != nil {
			return err
		}
		if i > 0 && bytes.Compare(values[i-1], v) >= 0 {
			return fmt.Errorf("%w: %v at index %d", errs.ErrMalformedStream, errs.ErrUnsortedValues, i)
		}
		values[i] = v
	}

	b.minID = minID
	b.values = values
	b.initMaxLen()

	return nil
}

// Dump writes a human-readable rendering of the block.
func (b *Block) Dump(w io.Writer) {
	fmt.Fprintf(w, "Block ids:[%d, %d] sizeOfValue:%d\n", b.MinID(), b.MaxID(), b.SizeOfValue())
	for i, v := range b.values {
		fmt.Fprintf(w, "  %d: %q\n", b.minID+i, v)
	}
}
