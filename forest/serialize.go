package forest

import (
	"fmt"
	"io"

	"github.com/skdict/skdict/converter"
	"github.com/skdict/skdict/dict"
	"github.com/skdict/skdict/errs"
	"github.com/skdict/skdict/internal/pool"
	"github.com/skdict/skdict/internal/wire"
)

// Wire layout, all integers big-endian:
//
//	[headLen:int32][head bytes][partition 0][partition 1]...
//
// head:
//
//	[baseID:int32]
//	[converterName:uint16-prefixed UTF-8]  (empty = no converter)
//	[offsetCount:int32][offset:int32]...
//	[divideCount:int32][len:int32 + bytes]...
//	[treeCount:int32]
//
// The body is each partition's own self-delimiting serialized form in index
// order; the forest never needs a partition's byte length. There is no
// version field: format changes are breaking.

// Serialize writes the forest in its binary wire form.
//
// Serialize and Deserialize expect exclusive access to the stream, but need
// no synchronization with concurrent lookups on an already-built forest.
func (f *Forest[T]) Serialize(w io.Writer) error {
	if err := f.writeHead(w); err != nil {
		return err
	}

	return f.writeBody(w)
}

func (f *Forest[T]) writeHead(w io.Writer) error {
	head := pool.GetHeadBuffer()
	defer pool.PutHeadBuffer(head)

	if err := wire.WriteInt32(head, f.baseID); err != nil {
		return err
	}
	if err := wire.WriteString(head, converter.NameOf(f.conv)); err != nil {
		return err
	}
	if err := wire.WriteInt32(head, len(f.offsets)); err != nil {
		return err
	}
	for _, offset := range f.offsets {
		if err := wire.WriteInt32(head, offset); err != nil {
			return err
		}
	}
	if err := wire.WriteInt32(head, len(f.divides)); err != nil {
		return err
	}
	for _, divide := range f.divides {
		if err := wire.WriteBytes(head, divide); err != nil {
			return err
		}
	}
	if err := wire.WriteInt32(head, len(f.trees)); err != nil {
		return err
	}

	if err := wire.WriteInt32(w, head.Len()); err != nil {
		return err
	}
	_, err := head.WriteTo(w)

	return err
}

func (f *Forest[T]) writeBody(w io.Writer) error {
	for i, tree := range f.trees {
		if err := tree.Serialize(w); err != nil {
			return fmt.Errorf("serializing partition %d: %w", i, err)
		}
	}

	return nil
}

type deserializeConfig struct {
	factory dict.Factory
}

// DeserializeOption customizes forest deserialization.
type DeserializeOption func(*deserializeConfig)

// WithPartitionFactory sets the factory used to instantiate partitions when
// reading the body. The default produces dict.Block partitions.
func WithPartitionFactory(factory dict.Factory) DeserializeOption {
	return func(cfg *deserializeConfig) {
		cfg.factory = factory
	}
}

// Deserialize reconstructs a forest from its binary wire form.
//
// The converter is re-instantiated from the name recorded in the head via
// the converter registry; a non-empty name that cannot be resolved for T is
// fatal. The per-partition maximum values are recomputed as a derived step.
func Deserialize[T any](r io.Reader, opts ...DeserializeOption) (*Forest[T], error) {
	cfg := deserializeConfig{
		factory: func() dict.Codec { return new(dict.Block) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	headLen, err := wire.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	if headLen < 0 {
		return nil, fmt.Errorf("%w: negative head length %d", errs.ErrMalformedStream, headLen)
	}

	baseID, err := wire.ReadInt32(r)
	if err != nil {
		return nil, err
	}

	converterName, err := wire.ReadString(r)
	if err != nil {
		return nil, err
	}
	var conv converter.Converter[T]
	if converterName != "" {
		conv, err = converter.Resolve[T](converterName)
		if err != nil {
			return nil, err
		}
	}

	offsetCount, err := wire.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	if offsetCount < 0 {
		return nil, fmt.Errorf("%w: negative offset count %d", errs.ErrMalformedStream, offsetCount)
	}
	offsets := make([]int, offsetCount)
	for i := range offsets {
		if offsets[i], err = wire.ReadInt32(r); err != nil {
			return nil, err
		}
	}

	divideCount, err := wire.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	if divideCount < 0 {
		return nil, fmt.Errorf("%w: negative divide count %d", errs.ErrMalformedStream, divideCount)
	}
	divides := make([][]byte, divideCount)
	for i := range divides {
		if divides[i], err = wire.ReadBytes(r); err != nil {
			return nil, err
		}
	}

	treeCount, err := wire.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	if treeCount < 0 {
		return nil, fmt.Errorf("%w: negative partition count %d", errs.ErrMalformedStream, treeCount)
	}
	if treeCount != offsetCount {
		return nil, fmt.Errorf("%w: %d partitions, %d offsets", errs.ErrMalformedStream, treeCount, offsetCount)
	}

	trees := make([]dict.Codec, treeCount)
	for i := range trees {
		tree := cfg.factory()
		if err := tree.Deserialize(r); err != nil {
			return nil, fmt.Errorf("deserializing partition %d: %w", i, err)
		}
		trees[i] = tree
	}

	f, err := New(trees, divides, offsets, conv, baseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedStream, err)
	}

	return f, nil
}
