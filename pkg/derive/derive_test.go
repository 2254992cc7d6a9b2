package derive_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/derive"
	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/tabular"
)

type person struct {
	Name      string         `tablekit:"full_name,caption=Full Name"`
	Age       int
	Height    *float64
	Active    bool
	Joined    time.Time
	Avatar    []byte
	Secret    string         `tablekit:"-"`
	Total     float64        `tablekit:",expr=price*qty,readonly"`
	internal  string         //nolint:unused // pins the unexported-field skip
	Leftovers map[string]any
}

func newDeriver(t *testing.T) *derive.Deriver {
	t.Helper()
	d, err := derive.NewDeriver()
	require.NoError(t, err)
	return d
}

func TestColumnsFromStruct(t *testing.T) {
	d := newDeriver(t)

	cols, err := d.Columns(person{})
	require.NoError(t, err)

	want := []*tabular.Column{
		{Name: "full_name", Type: tabular.TypeString, Caption: "Full Name"},
		{Name: "Age", Type: tabular.TypeInt},
		{Name: "Height", Type: tabular.TypeFloat},
		{Name: "Active", Type: tabular.TypeBool},
		{Name: "Joined", Type: tabular.TypeTime},
		{Name: "Avatar", Type: tabular.TypeBytes},
		{Name: "Total", Type: tabular.TypeFloat, Expr: "price*qty", ReadOnly: true},
		{Name: "Leftovers", Type: tabular.TypeAny},
	}

	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("derived columns mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnsAcceptsPointer(t *testing.T) {
	d := newDeriver(t)

	fromValue, err := d.Columns(person{})
	require.NoError(t, err)
	fromPtr, err := d.Columns(&person{})
	require.NoError(t, err)

	assert.Equal(t, fromValue, fromPtr)
}

func TestColumnsRejectsNonStructs(t *testing.T) {
	d := newDeriver(t)

	_, err := d.Columns(nil)
	assert.True(t, errors.IsNilArgument(err))

	_, err = d.Columns(42)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = d.Columns(struct{ hidden int }{})
	assert.True(t, errors.IsInvalidInput(err), "no derivable columns")
}

func TestValuesMatchColumnOrder(t *testing.T) {
	d := newDeriver(t)

	h := 1.81
	joined := time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC)
	p := person{
		Name:   "Ada",
		Age:    36,
		Height: &h,
		Active: true,
		Joined: joined,
		Avatar: []byte{0x1},
		Secret: "hidden",
		Total:  99.5,
	}

	values, err := d.Values(&p)
	require.NoError(t, err)

	require.Len(t, values, 8)
	assert.Equal(t, "Ada", values[0])
	assert.Equal(t, 36, values[1])
	assert.Equal(t, 1.81, values[2], "pointer field dereferenced")
	assert.Equal(t, true, values[3])
	assert.Equal(t, joined, values[4])
	assert.Equal(t, []byte{0x1}, values[5])
	assert.Equal(t, 99.5, values[6])
	assert.Nil(t, values[7])
}

func TestValuesNilPointerField(t *testing.T) {
	d := newDeriver(t)

	values, err := d.Values(person{})
	require.NoError(t, err)
	assert.Nil(t, values[2], "nil pointer field reads as nil cell")
}

func TestColumnsAreCachedPerType(t *testing.T) {
	d := newDeriver(t)

	first, err := d.Columns(person{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.CacheSize())

	second, err := d.Columns(person{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.CacheSize())

	// Cached descriptors are cloned out; mutating one result must not leak
	// into the next.
	first[0].Name = "mutated"
	assert.Equal(t, "full_name", second[0].Name)

	third, err := d.Columns(person{})
	require.NoError(t, err)
	assert.Equal(t, "full_name", third[0].Name)

	d.FlushCache()
	assert.Zero(t, d.CacheSize())
}

func TestWithCacheTTL(t *testing.T) {
	_, err := derive.NewDeriver(derive.WithCacheTTL(-time.Second))
	assert.True(t, errors.IsInvalidInput(err))

	d, err := derive.NewDeriver(derive.WithCacheTTL(time.Hour))
	require.NoError(t, err)
	_, err = d.Columns(person{})
	require.NoError(t, err)
}

func TestPackageLevelHelpers(t *testing.T) {
	cols, err := derive.Columns(person{})
	require.NoError(t, err)
	values, err := derive.Values(person{Name: "Ada"})
	require.NoError(t, err)

	assert.Len(t, values, len(cols))
	assert.Equal(t, "Ada", values[0])
}

func TestCaption(t *testing.T) {
	tests := map[string]string{
		"releaseDate":  "Release Date",
		"ReleaseDate":  "Release Date",
		"release_date": "Release Date",
		"age":          "Age",
		"":             "",
	}

	for in, want := range tests {
		assert.Equal(t, want, derive.Caption(in), "Caption(%q)", in)
	}
}
