// Package tabular provides an in-memory tabular model: ordered column
// descriptors, positional rows, and the reconciler that merges freshly
// derived candidate columns into a live table.
package tabular

import (
	"github.com/spf13/cast"

	"github.com/tablekit/tablekit/pkg/errors"
)

// Type is the data type tag of a column.
type Type string

// Column data types.
const (
	TypeString Type = "STRING"
	TypeInt    Type = "INT"
	TypeFloat  Type = "FLOAT"
	TypeBool   Type = "BOOL"
	TypeTime   Type = "TIME"
	TypeBytes  Type = "BYTES"
	TypeAny    Type = "ANY"
)

// String returns the string representation of the type tag.
func (t Type) String() string {
	return string(t)
}

// Valid reports whether t is one of the known column types.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeTime, TypeBytes, TypeAny:
		return true
	default:
		return false
	}
}

// Convert coerces value into the Go representation of this column type:
// string, int64, float64, bool, time.Time, []byte, or the value itself for
// TypeAny. A nil value passes through unchanged. Failures are reported as
// *errors.ConversionError.
func (t Type) Convert(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch t {
	case TypeString:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, errors.NewConversionError(value, t.String(), err)
		}
		return s, nil
	case TypeInt:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return nil, errors.NewConversionError(value, t.String(), err)
		}
		return n, nil
	case TypeFloat:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, errors.NewConversionError(value, t.String(), err)
		}
		return f, nil
	case TypeBool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return nil, errors.NewConversionError(value, t.String(), err)
		}
		return b, nil
	case TypeTime:
		ts, err := cast.ToTimeE(value)
		if err != nil {
			return nil, errors.NewConversionError(value, t.String(), err)
		}
		return ts, nil
	case TypeBytes:
		if b, ok := value.([]byte); ok {
			return b, nil
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, errors.NewConversionError(value, t.String(), err)
		}
		return []byte(s), nil
	case TypeAny:
		return value, nil
	default:
		return nil, errors.NewConversionError(value, t.String(), errors.New("unknown column type"))
	}
}

// Column describes one column of a table: its unique name, data type,
// read-only flag, optional display caption, and optional computed
// expression. A Column belongs to exactly one table once added.
type Column struct {
	Name     string `json:"name" yaml:"name"`
	Type     Type   `json:"type" yaml:"type"`
	ReadOnly bool   `json:"read_only,omitempty" yaml:"read_only,omitempty"`
	Caption  string `json:"caption,omitempty" yaml:"caption,omitempty"`
	Expr     string `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// NewColumn creates a column with the given name and type.
func NewColumn(name string, t Type) *Column {
	return &Column{Name: name, Type: t}
}

// DisplayName returns the caption when set, otherwise the column name.
func (c *Column) DisplayName() string {
	if c.Caption != "" {
		return c.Caption
	}
	return c.Name
}

// Clone returns a copy of the column that is safe to add to another table.
func (c *Column) Clone() *Column {
	clone := *c
	return &clone
}

// Columns is an ordered sequence of column descriptors.
// Order is insertion order and doubles as display order.
type Columns []*Column

// Names returns the column names in table order.
func (cs Columns) Names() []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

// Index returns a map from column name to its position in the sequence.
func (cs Columns) Index() map[string]int {
	index := make(map[string]int, len(cs))
	for i, c := range cs {
		index[c.Name] = i
	}
	return index
}
