package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/tabular"
)

// record is one decoded record with its key order preserved.
type record struct {
	keys   []string
	values []any
}

// loadRecords decodes a YAML or JSON file into ordered records.
// The file must hold a sequence of mappings.
func loadRecords(path string) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw []yaml.MapSlice
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, errors.NewValidationError("records", path, "no records found")
	}

	records := make([]record, len(raw))
	for i, m := range raw {
		rec := record{
			keys:   make([]string, 0, len(m)),
			values: make([]any, 0, len(m)),
		}
		for _, item := range m {
			rec.keys = append(rec.keys, fmt.Sprintf("%v", item.Key))
			rec.values = append(rec.values, item.Value)
		}
		records[i] = rec
	}
	return records, nil
}

// candidates derives candidate columns from a record's keys and values.
func (r record) candidates() []*tabular.Column {
	cols := make([]*tabular.Column, len(r.keys))
	for i, key := range r.keys {
		cols[i] = tabular.NewColumn(key, typeOf(r.values[i]))
	}
	return cols
}

// typeOf infers a column type from a decoded YAML value.
func typeOf(v any) tabular.Type {
	switch v.(type) {
	case string:
		return tabular.TypeString
	case int, int64, uint64:
		return tabular.TypeInt
	case float64:
		return tabular.TypeFloat
	case bool:
		return tabular.TypeBool
	case []byte:
		return tabular.TypeBytes
	default:
		return tabular.TypeAny
	}
}

// buildTable reconciles and populates every record into a fresh table.
func buildTable(name string, records []record) (*tabular.Table, error) {
	reconciler, err := tabular.NewReconciler()
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(name)
	for i, rec := range records {
		cands := rec.candidates()
		mapping, err := reconciler.Reconcile(table, cands)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := tabular.PopulateRow(table, cands, mapping, rec.values); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return table, nil
}
