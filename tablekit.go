// Package tablekit turns arbitrary Go values into tabular rows. A Mapper
// reflects over a value's exported fields, reconciles the derived columns
// against a live table, and writes the value as a best-effort row.
package tablekit

import (
	"fmt"

	"github.com/tablekit/tablekit/pkg/derive"
	"github.com/tablekit/tablekit/pkg/guard"
	"github.com/tablekit/tablekit/pkg/tabular"
)

// Mapper maps Go values onto tables through the derive-reconcile-populate
// pipeline.
type Mapper interface {
	// Append adds v to the table as one new row, growing or reusing
	// columns as needed. Cells whose values cannot be converted are left
	// unset; structural problems (nil arguments, underivable values) fail.
	Append(t *tabular.Table, v any) error

	// AppendAll adds each value in order. It stops at the first
	// structural failure.
	AppendAll(t *tabular.Table, vs ...any) error

	// Columns returns the candidate columns that Append would derive
	// from v, without touching any table.
	Columns(v any) ([]*tabular.Column, error)
}

// mapper is the default implementation of Mapper.
type mapper struct {
	config     *config
	reconciler tabular.Reconciler
	deriver    *derive.Deriver
}

// New creates a new Mapper with the given options.
func New(opts ...Option) (Mapper, error) {
	m := &mapper{
		config: defaultConfig(),
	}

	if err := m.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	// Use provided collaborators or create defaults.
	m.reconciler = m.config.reconciler
	if m.reconciler == nil {
		r, err := tabular.NewReconciler(tabular.WithLogger(m.config.logger))
		if err != nil {
			return nil, fmt.Errorf("creating reconciler: %w", err)
		}
		m.reconciler = r
	}

	m.deriver = m.config.deriver
	if m.deriver == nil {
		d, err := derive.NewDeriver(derive.WithCacheTTL(m.config.cacheTTL))
		if err != nil {
			return nil, fmt.Errorf("creating deriver: %w", err)
		}
		m.deriver = d
	}

	return m, nil
}

// options applies the given options to the mapper's config.
func (m *mapper) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(m.config); err != nil {
			return err
		}
	}
	return nil
}

// NewTable creates an empty table with the given name.
func NewTable(name string) *tabular.Table {
	return tabular.NewTable(name)
}

// Append adds v to the table as one new row.
func (m *mapper) Append(t *tabular.Table, v any) error {
	if err := guard.NonNil("table", t); err != nil {
		return err
	}

	candidates, err := m.deriver.Columns(v)
	if err != nil {
		return fmt.Errorf("deriving columns: %w", err)
	}

	values, err := m.deriver.Values(v)
	if err != nil {
		return fmt.Errorf("extracting values: %w", err)
	}

	mapping, err := m.reconciler.Reconcile(t, candidates)
	if err != nil {
		return fmt.Errorf("reconciling columns: %w", err)
	}

	if _, err := tabular.PopulateRow(t, candidates, mapping, values); err != nil {
		return fmt.Errorf("populating row: %w", err)
	}

	m.config.logger.Debug().
		Str("table", t.Name).
		Int("columns", t.NumCols()).
		Int("rows", t.NumRows()).
		Msg("appended row")

	return nil
}

// AppendAll adds each value in order.
func (m *mapper) AppendAll(t *tabular.Table, vs ...any) error {
	for i, v := range vs {
		if err := m.Append(t, v); err != nil {
			return fmt.Errorf("appending value %d: %w", i, err)
		}
	}
	return nil
}

// Columns returns the candidate columns derived from v.
func (m *mapper) Columns(v any) ([]*tabular.Column, error) {
	return m.deriver.Columns(v)
}
