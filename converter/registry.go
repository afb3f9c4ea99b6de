package converter

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/skdict/skdict/errs"
)

// registry maps converter names to factories. Populated at startup
// (typically from init functions), read whenever a serialized dictionary is
// loaded.
var registry = xsync.NewMapOf[string, func() any]()

// Register binds name to a factory producing a Converter[T] value. It
// panics if the name is already taken, since a duplicate registration would
// make serialized dictionaries ambiguous.
//
// Register is typically called from an init function of the package that
// defines the converter.
func Register(name string, factory func() any) {
	if name == "" {
		panic("converter: empty name")
	}
	if _, loaded := registry.LoadOrStore(name, factory); loaded {
		panic(fmt.Sprintf("converter: duplicate registration of %q", name))
	}
}

// Resolve instantiates the converter registered under name for value type T.
//
// It returns errs.ErrUnknownConverter if no factory is registered under
// name, and errs.ErrConverterMismatch if the registered converter does not
// produce values of type T.
func Resolve[T any](name string) (Converter[T], error) {
	factory, ok := registry.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownConverter, name)
	}

	conv, ok := factory().(Converter[T])
	if !ok {
		return nil, fmt.Errorf("%w: %v", errs.ErrConverterMismatch, mismatch[T](name, factory()))
	}

	return conv, nil
}
