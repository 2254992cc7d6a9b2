package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/logging"
	"github.com/tablekit/tablekit/pkg/tabular"
)

func newReconciler(t *testing.T) tabular.Reconciler {
	t.Helper()
	r, err := tabular.NewReconciler(tabular.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return r
}

func TestReconcileAddsUnrelatedCandidatesVerbatim(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")
	require.NoError(t, table.AddColumn(tabular.NewColumn("Age", tabular.TypeInt)))

	name := tabular.NewColumn("Name", tabular.TypeString)
	city := tabular.NewColumn("City", tabular.TypeString)

	mapping, err := r.Reconcile(table, []*tabular.Column{name, city})
	require.NoError(t, err)

	// Identity mapping, both appended in candidate order.
	assert.Same(t, name, mapping[name])
	assert.Same(t, city, mapping[city])
	assert.Equal(t, []string{"Age", "Name", "City"}, table.Columns.Names())
}

func TestReconcileMapsSameTypedPrefixMatch(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")
	age := tabular.NewColumn("Age", tabular.TypeInt)
	require.NoError(t, table.AddColumn(age))

	candidate := tabular.NewColumn("Age", tabular.TypeInt)

	mapping, err := r.Reconcile(table, []*tabular.Column{candidate})
	require.NoError(t, err)

	assert.Same(t, age, mapping[candidate])
	assert.Equal(t, 1, table.NumCols(), "no new column for a same-typed match")
}

func TestReconcileRenamesOnTypeMismatch(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")
	require.NoError(t, table.AddColumn(tabular.NewColumn("Age", tabular.TypeInt)))

	candidate := tabular.NewColumn("Age", tabular.TypeString)

	mapping, err := r.Reconcile(table, []*tabular.Column{candidate})
	require.NoError(t, err)

	require.Equal(t, 2, table.NumCols())
	added := table.Columns[1]
	assert.Equal(t, "Age1", added.Name)
	assert.Equal(t, tabular.TypeString, added.Type)
	assert.Equal(t, "Age", added.Caption)
	assert.Same(t, added, mapping[candidate])
}

func TestReconcileMismatchWinsOverMatch(t *testing.T) {
	// Both a same-typed and a differently-typed collision exist;
	// the type conflict takes precedence and forces a rename.
	r := newReconciler(t)
	table := tabular.NewTable("people")
	require.NoError(t, table.AddColumn(tabular.NewColumn("Age", tabular.TypeInt)))
	require.NoError(t, table.AddColumn(tabular.NewColumn("AgeGroup", tabular.TypeString)))

	candidate := tabular.NewColumn("Age", tabular.TypeInt)

	mapping, err := r.Reconcile(table, []*tabular.Column{candidate})
	require.NoError(t, err)

	require.Equal(t, 3, table.NumCols())
	added := table.Columns[2]
	assert.Equal(t, "Age1", added.Name, "one mismatched column found")
	assert.Equal(t, tabular.TypeInt, added.Type)
	assert.Same(t, added, mapping[candidate])
}

func TestReconcileRenameCountsMismatches(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")
	require.NoError(t, table.AddColumn(tabular.NewColumn("Age", tabular.TypeString)))
	require.NoError(t, table.AddColumn(tabular.NewColumn("AgeGroup", tabular.TypeFloat)))

	candidate := tabular.NewColumn("Age", tabular.TypeInt)

	mapping, err := r.Reconcile(table, []*tabular.Column{candidate})
	require.NoError(t, err)

	added := mapping[candidate]
	require.NotNil(t, added)
	assert.Equal(t, "Age2", added.Name, "two mismatched columns found")
}

func TestReconcilePrefixRuleIsAsymmetric(t *testing.T) {
	r := newReconciler(t)

	// "Age" collides with existing "AgeGroup" by prefix.
	table := tabular.NewTable("forward")
	group := tabular.NewColumn("AgeGroup", tabular.TypeInt)
	require.NoError(t, table.AddColumn(group))

	candidate := tabular.NewColumn("Age", tabular.TypeInt)
	mapping, err := r.Reconcile(table, []*tabular.Column{candidate})
	require.NoError(t, err)
	assert.Same(t, group, mapping[candidate])
	assert.Equal(t, 1, table.NumCols())

	// But "AgeGroup" does not collide with existing "Age".
	reverse := tabular.NewTable("reverse")
	require.NoError(t, reverse.AddColumn(tabular.NewColumn("Age", tabular.TypeInt)))

	wide := tabular.NewColumn("AgeGroup", tabular.TypeInt)
	mapping, err = r.Reconcile(reverse, []*tabular.Column{wide})
	require.NoError(t, err)
	assert.Same(t, wide, mapping[wide])
	assert.Equal(t, 2, reverse.NumCols())
}

func TestReconcileFirstMatchInTableOrderWins(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")
	first := tabular.NewColumn("AgeGroup", tabular.TypeInt)
	require.NoError(t, table.AddColumn(first))
	require.NoError(t, table.AddColumn(tabular.NewColumn("AgeBand", tabular.TypeInt)))

	candidate := tabular.NewColumn("Age", tabular.TypeInt)
	mapping, err := r.Reconcile(table, []*tabular.Column{candidate})
	require.NoError(t, err)

	assert.Same(t, first, mapping[candidate])
}

func TestReconcileEarlierCandidatesVisibleToLaterOnes(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")

	first := tabular.NewColumn("Score", tabular.TypeInt)
	second := tabular.NewColumn("Score", tabular.TypeInt)

	mapping, err := r.Reconcile(table, []*tabular.Column{first, second})
	require.NoError(t, err)

	assert.Same(t, first, mapping[first])
	assert.Same(t, first, mapping[second], "second candidate maps onto the column the first one added")
	assert.Equal(t, 1, table.NumCols())
}

func TestReconcileIdempotentAcrossPasses(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")

	candidates := []*tabular.Column{
		tabular.NewColumn("Name", tabular.TypeString),
		tabular.NewColumn("Age", tabular.TypeInt),
	}

	_, err := r.Reconcile(table, candidates)
	require.NoError(t, err)
	require.Equal(t, 2, table.NumCols())

	// Second pass with a fresh candidate list maps onto the columns the
	// first pass created and adds nothing new.
	again := []*tabular.Column{
		tabular.NewColumn("Name", tabular.TypeString),
		tabular.NewColumn("Age", tabular.TypeInt),
	}
	mapping, err := r.Reconcile(table, again)
	require.NoError(t, err)

	assert.Equal(t, 2, table.NumCols())
	assert.Same(t, table.Columns[0], mapping[again[0]])
	assert.Same(t, table.Columns[1], mapping[again[1]])
}

func TestReconcileEmptyCandidates(t *testing.T) {
	r := newReconciler(t)
	table := tabular.NewTable("people")

	_, err := r.Reconcile(table, []*tabular.Column{})
	assert.True(t, errors.IsInvalidInput(err))
}

func TestReconcileNilArguments(t *testing.T) {
	r := newReconciler(t)

	_, err := r.Reconcile(nil, []*tabular.Column{tabular.NewColumn("A", tabular.TypeInt)})
	assert.True(t, errors.IsNilArgument(err))

	_, err = r.Reconcile(tabular.NewTable("people"), nil)
	assert.True(t, errors.IsNilArgument(err))

	_, err = r.Reconcile(tabular.NewTable("people"), []*tabular.Column{nil})
	assert.True(t, errors.IsNilArgument(err))
}

func TestReconcileRenameCollisionSurfaces(t *testing.T) {
	// A synthesized name colliding with an existing column is a structural
	// error, not a best-effort case.
	r := newReconciler(t)
	table := tabular.NewTable("people")
	require.NoError(t, table.AddColumn(tabular.NewColumn("Age", tabular.TypeInt)))
	require.NoError(t, table.AddColumn(tabular.NewColumn("Age1", tabular.TypeString)))

	candidate := tabular.NewColumn("Age", tabular.TypeString)
	_, err := r.Reconcile(table, []*tabular.Column{candidate})

	require.Error(t, err)
	var rerr *errors.ReconcileError
	assert.ErrorAs(t, err, &rerr)
}

func TestNewReconcilerRejectsNilLogger(t *testing.T) {
	_, err := tabular.NewReconciler(tabular.WithLogger(nil))
	assert.True(t, errors.IsNilArgument(err))
}
