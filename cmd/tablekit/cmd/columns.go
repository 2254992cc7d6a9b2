package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablekit/tablekit/internal/cmd/output"
	"github.com/tablekit/tablekit/pkg/tabular"
)

// columnsCmd shows the reconciled column set for a record file.
var columnsCmd = &cobra.Command{
	Use:   "columns <records-file>",
	Short: "Show the reconciled column set for a record file",
	Long: `Columns runs the same column reconciliation as render but reports the
resulting column descriptors instead of the data rows. Useful for checking
how drifting record shapes land before rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func runColumns(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(args[0])
	if err != nil {
		return err
	}

	table, err := buildTable(tableName(args[0]), records)
	if err != nil {
		return err
	}

	meta, err := describeColumns(table)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	w, closeOutput, err := outputWriter()
	if err != nil {
		return err
	}
	defer closeOutput()

	return output.NewFormatter(output.DetectFormat(string(format))).Format(w, meta)
}

// describeColumns builds a table describing another table's columns.
func describeColumns(t *tabular.Table) (*tabular.Table, error) {
	meta := tabular.NewTable(t.Name + " columns")
	for _, col := range []*tabular.Column{
		tabular.NewColumn("Name", tabular.TypeString),
		tabular.NewColumn("Type", tabular.TypeString),
		tabular.NewColumn("Caption", tabular.TypeString),
		tabular.NewColumn("ReadOnly", tabular.TypeBool),
		tabular.NewColumn("Expr", tabular.TypeString),
	} {
		if err := meta.AddColumn(col); err != nil {
			return nil, err
		}
	}

	for _, c := range t.Columns {
		row := tabular.Row{c.Name, c.Type.String(), c.Caption, c.ReadOnly, c.Expr}
		if err := meta.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return meta, nil
}
