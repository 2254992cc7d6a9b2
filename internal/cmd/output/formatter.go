// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tablekit/tablekit/pkg/tabular"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatWide represents wide table output format (captions plus types).
	FormatWide Format = "wide"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatMarkdown represents markdown table output format.
	FormatMarkdown Format = "markdown"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, t *tabular.Table) error
}

// NewFormatter creates the appropriate formatter for the format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	case FormatTable, FormatWide:
		return &TableFormatter{Wide: format == FormatWide}
	default:
		return &TableFormatter{}
	}
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatWide, FormatJSON, FormatYAML, FormatMarkdown, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, wide, json, yaml, markdown", s)
	}
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// headers returns the display headers for a table.
func headers(t *tabular.Table, wide bool) []string {
	hs := make([]string, t.NumCols())
	for i, c := range t.Columns {
		if wide {
			hs[i] = fmt.Sprintf("%s (%s)", c.DisplayName(), c.Type)
		} else {
			hs[i] = c.DisplayName()
		}
	}
	return hs
}

// cells renders a row's cells as strings, empty for unset cells.
func cells(t *tabular.Table, row tabular.Row) []string {
	cs := make([]string, t.NumCols())
	for i := range t.Columns {
		if i >= len(row) || row[i] == nil {
			continue
		}
		cs[i] = fmt.Sprintf("%v", row[i])
	}
	return cs
}

// records converts table rows to name-keyed maps for structured output.
func records(t *tabular.Table) []map[string]any {
	rs := make([]map[string]any, t.NumRows())
	for i, row := range t.Rows {
		record := make(map[string]any, t.NumCols())
		for j, c := range t.Columns {
			if j < len(row) {
				record[c.Name] = row[j]
			} else {
				record[c.Name] = nil
			}
		}
		rs[i] = record
	}
	return rs
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format outputs the table's rows as a JSON array of records.
func (f *JSONFormatter) Format(w io.Writer, t *tabular.Table) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(records(t))
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs the table's rows as a YAML sequence of records.
func (f *YAMLFormatter) Format(w io.Writer, t *tabular.Table) error {
	data, err := yaml.MarshalWithOptions(records(t),
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct {
	Wide bool
}

// Format renders the table with column captions as headers.
func (f *TableFormatter) Format(w io.Writer, t *tabular.Table) error {
	config := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	hs := headers(t, f.Wide)
	headerCells := make([]any, len(hs))
	for i, h := range hs {
		headerCells[i] = h
	}
	table.Header(headerCells...)

	for _, row := range t.Rows {
		rowCells := cells(t, row)
		rowData := make([]any, len(rowCells))
		for i, cell := range rowCells {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// MarkdownFormatter outputs a markdown table.
type MarkdownFormatter struct{}

// Format renders the table as a markdown document section.
func (f *MarkdownFormatter) Format(w io.Writer, t *tabular.Table) error {
	rows := make([][]string, t.NumRows())
	for i, row := range t.Rows {
		rows[i] = cells(t, row)
	}

	doc := md.NewMarkdown(w)
	if t.Name != "" {
		doc.H2(t.Name)
	}
	doc.Table(md.TableSet{
		Header: headers(t, false),
		Rows:   rows,
	})
	return doc.Build()
}
