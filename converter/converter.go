// Package converter maps domain values to and from their canonical
// byte-string representation.
//
// A dictionary stores byte strings; converters sit at the typed edge of the
// API. Each converter carries a stable name that is recorded in the
// serialized dictionary header so the matching implementation can be
// resolved again at load time through the registry.
package converter

import "fmt"

// Converter encodes a domain value into its canonical byte-string form and
// decodes it back.
//
// Implementations must be stateless and safe for concurrent use. Encode and
// Decode must be exact inverses: Decode(Encode(v)) == v for every value the
// converter supports. Decode is only ever handed bytes produced by Encode
// (dictionary entries are trusted), so it carries no error return.
type Converter[T any] interface {
	// Encode returns the canonical byte-string representation of v.
	Encode(v T) []byte

	// Decode reconstructs the value from its byte-string representation.
	Decode(b []byte) T

	// Name returns the stable identifier recorded in serialized
	// dictionaries. It must be registered via Register.
	Name() string
}

// StringName identifies the built-in string converter.
const StringName = "string"

// String converts Go strings to their UTF-8 bytes and back.
type String struct{}

var _ Converter[string] = String{}

func (String) Encode(v string) []byte {
	return []byte(v)
}

func (String) Decode(b []byte) string {
	return string(b)
}

func (String) Name() string {
	return StringName
}

func init() {
	Register(StringName, func() any { return String{} })
}

// NameOf returns the name that will be recorded for c in a serialized
// dictionary header. A nil converter yields the empty string, meaning the
// dictionary stores raw byte strings.
func NameOf[T any](c Converter[T]) string {
	if c == nil {
		return ""
	}

	return c.Name()
}

func mismatch[T any](name string, got any) error {
	var zero T
	return fmt.Errorf("%s registered as %T, requested %T", name, got, zero)
}
