// Package guard provides nil/empty/zero predicates and argument guards used
// by the tablekit entry points. The predicates classify loosely typed values;
// the guards turn a failed predicate into a sentinel error from pkg/errors so
// callers can check failures with errors.Is.
package guard

import (
	"reflect"

	"github.com/tablekit/tablekit/pkg/errors"
)

// IsNil reports whether v is nil, including typed nil pointers, slices,
// maps, channels, functions, and interfaces.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsEmpty reports whether v is nil or has no content: an empty string,
// a zero-length slice, array, or map.
func IsEmpty(v any) bool {
	if IsNil(v) {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr:
		return IsEmpty(rv.Elem().Interface())
	default:
		return false
	}
}

// IsZero reports whether v is nil or the zero value of its type.
func IsZero(v any) bool {
	if IsNil(v) {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

// NonNil returns ErrNilArgument (wrapped with the argument name) when v is nil.
func NonNil(name string, v any) error {
	if IsNil(v) {
		return errors.NewNilArgumentError(name)
	}
	return nil
}

// NonEmpty returns ErrNilArgument when v is nil and ErrInvalidInput when v is
// empty, wrapped with the argument name.
func NonEmpty(name string, v any) error {
	if err := NonNil(name, v); err != nil {
		return err
	}
	if IsEmpty(v) {
		return errors.NewValidationError(name, v, "must not be empty")
	}
	return nil
}
