package forest

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/skdict/skdict/compress"
	"github.com/skdict/skdict/endian"
	"github.com/skdict/skdict/errs"
	"github.com/skdict/skdict/format"
	"github.com/skdict/skdict/internal/pool"
)

// SnapshotMagic identifies a dictionary snapshot container.
const SnapshotMagic uint16 = 0xDC1F

// snapshotHeaderSize is the fixed container header:
// magic(2) + compression(1) + reserved(1) + rawSize(4) + payloadSize(4).
const snapshotHeaderSize = 12

var snapshotEngine = endian.GetLittleEndianEngine()

// WriteSnapshot writes the forest as a snapshot container: a fixed header
// followed by the (optionally compressed) wire form. Snapshots are the
// persisted on-disk representation; the bare wire form of Serialize stays
// available for callers embedding the forest in their own streams.
func (f *Forest[T]) WriteSnapshot(w io.Writer, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	if err := f.Serialize(body); err != nil {
		return err
	}

	payload, err := codec.Compress(body.Bytes())
	if err != nil {
		return fmt.Errorf("compressing snapshot: %w", err)
	}
	if int64(body.Len()) > math.MaxUint32 || int64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("snapshot size %d exceeds container limit", body.Len())
	}

	var head [snapshotHeaderSize]byte
	snapshotEngine.PutUint16(head[0:2], SnapshotMagic)
	head[2] = byte(compression)
	head[3] = 0
	snapshotEngine.PutUint32(head[4:8], uint32(body.Len()))
	snapshotEngine.PutUint32(head[8:12], uint32(len(payload)))

	if _, err := w.Write(head[:]); err != nil {
		return err
	}
	_, err = w.Write(payload)

	return err
}

// ReadSnapshot reconstructs a forest from a snapshot container written by
// WriteSnapshot.
func ReadSnapshot[T any](r io.Reader, opts ...DeserializeOption) (*Forest[T], error) {
	var head [snapshotHeaderSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("%w: reading snapshot header: %v", errs.ErrMalformedStream, err)
	}

	if magic := snapshotEngine.Uint16(head[0:2]); magic != SnapshotMagic {
		return nil, fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, magic)
	}

	compression := format.CompressionType(head[2])
	if !compression.IsValid() {
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrInvalidCompression, head[2])
	}

	rawSize := snapshotEngine.Uint32(head[4:8])
	payloadSize := snapshotEngine.Uint32(head[8:12])

	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: reading %d byte snapshot payload: %v", errs.ErrMalformedStream, payloadSize, err)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing snapshot: %v", errs.ErrMalformedStream, err)
	}
	if uint32(len(raw)) != rawSize {
		return nil, fmt.Errorf("%w: decompressed size %d, header says %d", errs.ErrMalformedStream, len(raw), rawSize)
	}

	return Deserialize[T](bytes.NewReader(raw), opts...)
}
