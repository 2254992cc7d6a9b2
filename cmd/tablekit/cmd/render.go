package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablekit/tablekit/internal/cmd/output"
	"github.com/tablekit/tablekit/pkg/logging"
)

var debugRecords bool

// renderCmd renders a record file as a table.
var renderCmd = &cobra.Command{
	Use:   "render <records-file>",
	Short: "Render a record file as a table",
	Long: `Render reads a YAML or JSON file holding a sequence of records and
renders them as one table. Column names and types are taken from the records
themselves; shape drift between records grows the table instead of failing.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&debugRecords, "debug-records", false, "dump decoded records to stderr")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]

	records, err := loadRecords(path)
	if err != nil {
		return err
	}

	if debugRecords {
		spew.Fdump(os.Stderr, records)
	}

	table, err := buildTable(tableName(path), records)
	if err != nil {
		return err
	}

	logging.Debug().
		Str("file", path).
		Int("records", len(records)).
		Int("columns", table.NumCols()).
		Msg("built table")

	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	w, closeOutput, err := outputWriter()
	if err != nil {
		return err
	}
	defer closeOutput()

	return output.NewFormatter(output.DetectFormat(string(format))).Format(w, table)
}

// tableName derives a table name from the record file path.
func tableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
