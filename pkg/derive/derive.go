// Package derive reflects over a value's exported struct fields to produce
// candidate column descriptors and the matching row values. It is the
// introspection half of the object-to-table pipeline: derive the candidates
// here, then hand them to tabular.Reconciler.
//
// Field control uses the `tablekit` struct tag:
//
//	type Person struct {
//		Name     string `tablekit:"full_name,caption=Full Name"`
//		Age      int
//		Internal string `tablekit:"-"`
//		Total    float64 `tablekit:",expr=price*qty,readonly"`
//	}
//
// Only exported fields are considered, like encoding/json. Pointer fields
// derive the column type of their element and read as nil cells when unset.
package derive

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/guard"
	"github.com/tablekit/tablekit/pkg/tabular"
)

// TagName is the struct tag consulted for field overrides.
const TagName = "tablekit"

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))

	titleCaser = cases.Title(language.English)
)

// field is one derivable struct field with its column descriptor.
type field struct {
	column tabular.Column
	index  int
}

// Columns derives candidate columns using the package default Deriver.
func Columns(v any) ([]*tabular.Column, error) {
	return defaultDeriver.Columns(v)
}

// Values extracts row values using the package default Deriver.
func Values(v any) ([]any, error) {
	return defaultDeriver.Values(v)
}

// Columns derives candidate columns from v's exported struct fields, in
// declaration order. v must be a struct or a non-nil pointer to one; a
// struct with no derivable fields fails with ErrInvalidInput.
func (d *Deriver) Columns(v any) ([]*tabular.Column, error) {
	fields, err := d.fields(v)
	if err != nil {
		return nil, err
	}

	cols := make([]*tabular.Column, len(fields))
	for i := range fields {
		cols[i] = fields[i].column.Clone()
	}
	return cols, nil
}

// Values extracts the row values matching Columns, in the same order.
// Nil pointer fields extract as nil cells.
func (d *Deriver) Values(v any) ([]any, error) {
	fields, err := d.fields(v)
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	values := make([]any, len(fields))
	for i, f := range fields {
		fv := rv.Field(f.index)
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		values[i] = fv.Interface()
	}
	return values, nil
}

// fields resolves the derivable fields of v's type, consulting the cache.
func (d *Deriver) fields(v any) ([]field, error) {
	if err := guard.NonNil("value", v); err != nil {
		return nil, err
	}

	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, errors.NewValidationError("value", v, "not a struct")
	}

	if cached, ok := d.lookup(rt); ok {
		return cached, nil
	}

	fields := deriveFields(rt)
	if len(fields) == 0 {
		return nil, errors.NewValidationError("value", v, "no columns could be derived")
	}

	d.store(rt, fields)
	return fields, nil
}

// deriveFields builds the field list for a struct type.
func deriveFields(rt reflect.Type) []field {
	fields := make([]field, 0, rt.NumField())

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		col, ok := columnFor(sf)
		if !ok {
			continue
		}
		fields = append(fields, field{column: col, index: i})
	}

	return fields
}

// columnFor builds the column descriptor for one struct field, honoring the
// tablekit tag. Returns false when the field opts out with "-".
func columnFor(sf reflect.StructField) (tabular.Column, bool) {
	col := tabular.Column{
		Name: sf.Name,
		Type: typeFor(sf.Type),
	}

	tag, hasTag := sf.Tag.Lookup(TagName)
	if hasTag {
		parts := strings.Split(tag, ",")
		if parts[0] == "-" {
			return tabular.Column{}, false
		}
		if parts[0] != "" {
			col.Name = parts[0]
		}
		for _, part := range parts[1:] {
			switch {
			case part == "readonly":
				col.ReadOnly = true
			case strings.HasPrefix(part, "caption="):
				col.Caption = strings.TrimPrefix(part, "caption=")
			case strings.HasPrefix(part, "expr="):
				col.Expr = strings.TrimPrefix(part, "expr=")
			}
		}
	}

	if col.Caption == "" {
		if caption := Caption(col.Name); caption != col.Name {
			col.Caption = caption
		}
	}

	return col, true
}

// typeFor maps a Go type onto a column type tag.
func typeFor(rt reflect.Type) tabular.Type {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	switch {
	case rt == timeType:
		return tabular.TypeTime
	case rt == bytesType:
		return tabular.TypeBytes
	}

	switch rt.Kind() {
	case reflect.String:
		return tabular.TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return tabular.TypeInt
	case reflect.Float32, reflect.Float64:
		return tabular.TypeFloat
	case reflect.Bool:
		return tabular.TypeBool
	default:
		return tabular.TypeAny
	}
}

// Caption humanizes a field name for display: camel-case and snake_case
// words are split and title-cased ("releaseDate" and "release_date" both
// become "Release Date").
func Caption(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder
	var prev rune
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(prev) && prev != '_' && prev != '-':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	return titleCaser.String(b.String())
}
