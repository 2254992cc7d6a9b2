package derive

import (
	"reflect"

	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/guard"
)

// Instantiate creates a fresh zero value of v's type and returns a pointer
// to it. Pointer types are dereferenced first, so Instantiate(&Person{}) and
// Instantiate(Person{}) both return *Person.
func Instantiate(v any) (any, error) {
	if err := guard.NonNil("value", v); err != nil {
		return nil, err
	}

	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	return reflect.New(rt).Interface(), nil
}

// CopyFields copies exported field values from src into dst wherever both
// sides declare a field with the same name and a compatible type. dst must
// be a non-nil pointer to a struct. Fields present on only one side, and
// fields with incompatible types, are skipped. Returns the number of fields
// copied.
func CopyFields(dst, src any) (int, error) {
	if err := guard.NonNil("dst", dst); err != nil {
		return 0, err
	}
	if err := guard.NonNil("src", src); err != nil {
		return 0, err
	}

	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Struct {
		return 0, errors.NewValidationError("dst", dst, "not a pointer to struct")
	}
	dv = dv.Elem()

	sv := reflect.ValueOf(src)
	for sv.Kind() == reflect.Ptr {
		sv = sv.Elem()
	}
	if sv.Kind() != reflect.Struct {
		return 0, errors.NewValidationError("src", src, "not a struct")
	}

	st := sv.Type()
	copied := 0

	for i := 0; i < dv.NumField(); i++ {
		df := dv.Type().Field(i)
		if !df.IsExported() {
			continue
		}

		sf, ok := st.FieldByName(df.Name)
		if !ok || !sf.IsExported() {
			continue
		}

		from := sv.FieldByIndex(sf.Index)
		to := dv.Field(i)

		switch {
		case from.Type().AssignableTo(to.Type()):
			to.Set(from)
		case from.Type().ConvertibleTo(to.Type()):
			to.Set(from.Convert(to.Type()))
		default:
			continue
		}
		copied++
	}

	return copied, nil
}
