// Package convert coerces loosely typed values into column types and into
// nullable Go primitives.
//
// To is the explicit form of try-convert: it returns the coerced value or a
// *errors.ConversionError and leaves the decision to discard the failure to
// the caller. The OrNil helpers return a pointer, or nil when the input is
// nil or cannot be coerced.
package convert

import (
	"time"

	"github.com/spf13/cast"

	"github.com/tablekit/tablekit/pkg/tabular"
)

// To coerces value into the Go representation of the given column type.
// A nil value passes through unchanged regardless of the target type.
// Failures are reported as *errors.ConversionError.
func To(value any, t tabular.Type) (any, error) {
	return t.Convert(value)
}

// IntOrNil coerces value to *int, returning nil when value is nil or not
// coercible.
func IntOrNil(value any) *int {
	if value == nil {
		return nil
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return nil
	}
	return &n
}

// Int64OrNil coerces value to *int64, returning nil when value is nil or not
// coercible.
func Int64OrNil(value any) *int64 {
	if value == nil {
		return nil
	}
	n, err := cast.ToInt64E(value)
	if err != nil {
		return nil
	}
	return &n
}

// Float64OrNil coerces value to *float64, returning nil when value is nil or
// not coercible.
func Float64OrNil(value any) *float64 {
	if value == nil {
		return nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return nil
	}
	return &f
}

// BoolOrNil coerces value to *bool, returning nil when value is nil or not
// coercible.
func BoolOrNil(value any) *bool {
	if value == nil {
		return nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return nil
	}
	return &b
}

// StringOrNil coerces value to *string, returning nil when value is nil or
// not coercible.
func StringOrNil(value any) *string {
	if value == nil {
		return nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil
	}
	return &s
}

// TimeOrNil coerces value to *time.Time, returning nil when value is nil or
// not coercible.
func TimeOrNil(value any) *time.Time {
	if value == nil {
		return nil
	}
	ts, err := cast.ToTimeE(value)
	if err != nil {
		return nil
	}
	return &ts
}
