// Package errs defines the sentinel errors shared across skdict packages.
//
// Callers match these with errors.Is; packages wrap them with fmt.Errorf
// to attach context, e.g.:
//
//	return fmt.Errorf("%w: %q", errs.ErrValueNotFound, value)
package errs

import "errors"

var (
	// ErrValueNotFound indicates an exact lookup miss, or a rounding lookup
	// for which no partition can supply a nearest value.
	ErrValueNotFound = errors.New("value not found in dictionary")

	// ErrIDNotFound indicates an ID outside every partition's allocated range.
	ErrIDNotFound = errors.New("id not found in dictionary")

	// ErrUnknownConverter indicates a converter name recorded in a serialized
	// dictionary that no registered factory can satisfy.
	ErrUnknownConverter = errors.New("unknown converter")

	// ErrConverterMismatch indicates a registered converter whose value type
	// does not match the type requested at load time.
	ErrConverterMismatch = errors.New("converter value type mismatch")

	// ErrMalformedStream indicates a truncated or structurally inconsistent
	// serialized dictionary.
	ErrMalformedStream = errors.New("malformed dictionary stream")

	// ErrInvalidMagicNumber indicates a snapshot that does not start with the
	// expected magic number.
	ErrInvalidMagicNumber = errors.New("invalid snapshot magic number")

	// ErrInvalidCompression indicates an unsupported compression type byte.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrUnsortedValues indicates partition values that are not strictly
	// ascending in byte-lexicographic order.
	ErrUnsortedValues = errors.New("values not strictly ascending")

	// ErrUnsortedDivides indicates forest divide boundaries that are not
	// strictly ascending in byte-lexicographic order.
	ErrUnsortedDivides = errors.New("value divides not strictly ascending")

	// ErrLengthMismatch indicates forest construction input slices whose
	// lengths are inconsistent with the partition list.
	ErrLengthMismatch = errors.New("partition metadata length mismatch")

	// ErrEmptyPartition indicates an attempt to build a partition with no
	// values.
	ErrEmptyPartition = errors.New("partition has no values")

	// ErrNoConverter indicates a typed operation on a forest that was built
	// without a converter.
	ErrNoConverter = errors.New("no converter configured")
)
