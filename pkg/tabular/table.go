package tabular

import (
	"github.com/google/uuid"

	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/guard"
)

// Row holds one row of cell values, positionally aligned with the owning
// table's columns. Cells of columns added after the row was appended read
// as nil.
type Row []any

// Table is an ordered set of columns plus zero or more data rows.
// It is not safe for concurrent use; callers must serialize access.
type Table struct {
	ID      uuid.UUID
	Name    string
	Columns Columns
	Rows    []Row
}

// NewTable creates an empty table with the given name.
func NewTable(name string) *Table {
	return &Table{
		ID:   uuid.New(),
		Name: name,
	}
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Column returns the column with the given name, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnIndex returns the position of the named column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// AddColumn appends a column to the table. Column names must stay unique
// within the table; a duplicate name fails with ErrInvalidInput.
func (t *Table) AddColumn(c *Column) error {
	if err := guard.NonNil("column", c); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.NewValidationError("column.Name", c.Name, "must not be empty")
	}
	if !c.Type.Valid() {
		return errors.NewValidationError("column.Type", c.Type, "unknown column type")
	}
	if _, exists := t.Column(c.Name); exists {
		return errors.NewValidationError("column.Name", c.Name, "duplicate column name")
	}

	t.Columns = append(t.Columns, c)
	return nil
}

// AppendRow appends a row of cell values. The row may be shorter than the
// column set (missing cells read as nil) but not longer.
func (t *Table) AppendRow(row Row) error {
	if len(row) > len(t.Columns) {
		return errors.NewValidationError("row", row, "more cells than columns")
	}

	padded := make(Row, len(t.Columns))
	copy(padded, row)
	t.Rows = append(t.Rows, padded)
	return nil
}

// Get returns the cell at the given row and column position. Rows appended
// before later columns were added read as nil in those columns.
func (t *Table) Get(rowIdx, colIdx int) (any, error) {
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return nil, errors.NewValidationError("rowIdx", rowIdx, "row out of range")
	}
	if colIdx < 0 || colIdx >= len(t.Columns) {
		return nil, errors.NewValidationError("colIdx", colIdx, "column out of range")
	}

	row := t.Rows[rowIdx]
	if colIdx >= len(row) {
		return nil, nil
	}
	return row[colIdx], nil
}

// Set writes the cell at the given row and column position. Writing to a
// read-only column fails with ErrReadOnly.
func (t *Table) Set(rowIdx, colIdx int, value any) error {
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return errors.NewValidationError("rowIdx", rowIdx, "row out of range")
	}
	if colIdx < 0 || colIdx >= len(t.Columns) {
		return errors.NewValidationError("colIdx", colIdx, "column out of range")
	}
	if t.Columns[colIdx].ReadOnly {
		return errors.ErrReadOnly
	}

	row := t.Rows[rowIdx]
	if colIdx >= len(row) {
		grown := make(Row, len(t.Columns))
		copy(grown, row)
		t.Rows[rowIdx] = grown
		row = grown
	}
	row[colIdx] = value
	return nil
}
