package tabular

import (
	"fmt"

	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/guard"
	"github.com/tablekit/tablekit/pkg/logging"
)

// PopulateRow appends a new row to the table and fills it best-effort from
// values, which must be positionally aligned with candidates. Candidates are
// processed in their given order; the mapping (from a prior Reconcile call on
// the same candidates) locates each destination cell.
//
// Population is lossy but non-fatal by policy: a cell whose value cannot be
// converted to the destination column's type is left unset and the rest of
// the row is still written. A read-only destination column is unlocked for
// the single write and restored to its prior read-only state afterwards,
// even if the write panics.
func PopulateRow(t *Table, candidates []*Column, mapping Mapping, values []any) (Row, error) {
	if err := guard.NonNil("table", t); err != nil {
		return nil, err
	}
	if err := guard.NonEmpty("candidates", candidates); err != nil {
		return nil, err
	}
	if err := guard.NonNil("mapping", mapping); err != nil {
		return nil, err
	}
	if len(values) != len(candidates) {
		return nil, errors.NewValidationError("values", values,
			fmt.Sprintf("got %d values for %d candidates", len(values), len(candidates)))
	}

	if err := t.AppendRow(nil); err != nil {
		return nil, err
	}
	rowIdx := len(t.Rows) - 1

	for i, c := range candidates {
		dest, ok := mapping[c]
		if !ok || dest == nil {
			logging.Default().Debug().
				Str("table", t.Name).
				Str("candidate", c.Name).
				Msg("candidate missing from mapping, cell left unset")
			continue
		}

		colIdx := t.ColumnIndex(dest.Name)
		if colIdx < 0 {
			logging.Default().Debug().
				Str("table", t.Name).
				Str("column", dest.Name).
				Msg("mapped column not in table, cell left unset")
			continue
		}

		setCell(t, rowIdx, colIdx, values[i])
	}

	return t.Rows[rowIdx], nil
}

// setCell converts and writes a single cell, suppressing conversion failures
// and panics. The destination column is unlocked around the write; the defer
// guarantees its read-only state is restored on the panic path too.
func setCell(t *Table, rowIdx, colIdx int, value any) {
	col := t.Columns[colIdx]
	wasReadOnly := col.ReadOnly
	col.ReadOnly = false

	defer func() {
		col.ReadOnly = wasReadOnly
		if rec := recover(); rec != nil {
			logging.Default().Debug().
				Str("table", t.Name).
				Str("column", col.Name).
				Interface("panic", rec).
				Msg("cell write panicked, cell left unset")
		}
	}()

	converted, err := col.Type.Convert(value)
	if err != nil {
		logging.Default().Debug().
			Str("table", t.Name).
			Str("column", col.Name).
			Err(err).
			Msg("cell conversion failed, cell left unset")
		return
	}

	if err := t.Set(rowIdx, colIdx, converted); err != nil {
		logging.Default().Debug().
			Str("table", t.Name).
			Str("column", col.Name).
			Err(err).
			Msg("cell write failed, cell left unset")
	}
}
