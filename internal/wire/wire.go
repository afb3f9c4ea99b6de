// Package wire implements the primitive read/write helpers shared by the
// forest and partition serializers.
//
// All integers are big-endian. Byte strings are written as an int32 length
// followed by the raw bytes; short strings (converter names) as a uint16
// length followed by UTF-8 bytes. Short reads surface as
// errs.ErrMalformedStream so callers can match truncation uniformly.
package wire

import (
	"fmt"
	"io"
	"math"

	"github.com/skdict/skdict/endian"
	"github.com/skdict/skdict/errs"
)

var engine = endian.GetBigEndianEngine()

// WriteInt32 writes v as a big-endian int32.
func WriteInt32(w io.Writer, v int) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("value %d overflows int32", v)
	}

	var buf [4]byte
	engine.PutUint32(buf[:], uint32(int32(v)))
	_, err := w.Write(buf[:])

	return err
}

// ReadInt32 reads a big-endian int32.
func ReadInt32(r io.Reader) (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading int32: %v", errs.ErrMalformedStream, err)
	}

	return int(int32(engine.Uint32(buf[:]))), nil
}

// WriteBytes writes b as an int32 length prefix followed by the raw bytes.
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteInt32(w, len(b)); err != nil {
		return err
	}
	_, err := w.Write(b)

	return err
}

// ReadBytes reads an int32 length prefix followed by that many raw bytes.
func ReadBytes(r io.Reader) ([]byte, error) {
	length, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative byte string length %d", errs.ErrMalformedStream, length)
	}

	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: reading %d byte string: %v", errs.ErrMalformedStream, length, err)
	}

	return b, nil
}

// WriteString writes s as a uint16 length prefix followed by its UTF-8
// bytes. Used for converter names in the forest header.
func WriteString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string length %d exceeds maximum %d", len(s), math.MaxUint16)
	}

	var buf [2]byte
	engine.PutUint16(buf[:], uint16(len(s)))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)

	return err
}

// ReadString reads a uint16 length prefix followed by that many UTF-8 bytes.
func ReadString(r io.Reader) (string, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return "", fmt.Errorf("%w: reading string length: %v", errs.ErrMalformedStream, err)
	}

	length := int(engine.Uint16(buf[:]))
	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: reading %d byte string: %v", errs.ErrMalformedStream, length, err)
	}

	return string(b), nil
}
