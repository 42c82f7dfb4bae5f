package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tableaux-project/gridquery/internal/cli/loader"
	"github.com/tableaux-project/gridquery/internal/cli/ui"
)

var columnsTable string

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "list the columns of a table",
	Long: `List the columns of a table schema, after resolving its extensions
and exclusions, together with their type and capabilities.`,
	Example: `  $ gridquery columns --table jobs --locale de`,
	RunE:    runColumns,
}

func init() {
	columnsCmd.Flags().StringVarP(&columnsTable, "table", "t", "", "table schema name")
	_ = columnsCmd.MarkFlagRequired("table")

	columnsCmd.SilenceUsage = true
}

func runColumns(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		ui.PrintError("failed to load settings: %v", err)
		return err
	}

	catalog, err := loader.LoadCatalog(settings)
	if err != nil {
		ui.PrintError("failed to load schemas: %v", err)
		return err
	}

	columns, _, err := catalog.Columns(columnsTable, settings.Locale)
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	rows := make([][]string, len(columns))
	for i, column := range columns {
		rows[i] = []string{
			column.Key,
			column.Label,
			string(column.Type),
			yesNo(column.Sortable),
			yesNo(column.Searchable),
			strings.Join(column.Options, ","),
		}
	}

	return ui.WriteTable(os.Stdout, []string{"KEY", "LABEL", "TYPE", "SORTABLE", "SEARCHABLE", "OPTIONS"}, rows)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
