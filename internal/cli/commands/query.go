package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/controller"
	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/datasource/memsource"
	"github.com/tableaux-project/gridquery/internal/cli/loader"
	"github.com/tableaux-project/gridquery/internal/cli/ui"
)

var (
	queryTable    string
	recordsFile   string
	databaseDSN   string
	databaseTable string
	searchTerm    string
	filterFlags   []string
	sortFlag      string
	pageIndex     int
	pageSize      int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "search, filter, sort and page the records of a table",
	Long: `Run the query engine over the records of a table and print one page.

Filters are given as key=value. Their form depends on the column type:
  text      %wildcard%, a regular expression or keywords that all must match
  number    lo..hi, lo.., ..hi or a single value
  date      a single YYYY-MM-DD day, or day..day in either order
  category  comma separated list of selected values`,
	Example: `  $ gridquery query --table jobs --records jobs.json --filter title=%manager% --sort salary:desc
  $ gridquery query --table jobs --db file:jobs.db --filter postedAt=2024-01-01..2024-01-31 --page 1`,
	RunE: runQuery,
}

func init() {
	flags := queryCmd.Flags()
	flags.StringVarP(&queryTable, "table", "t", "", "table schema name")
	flags.StringVar(&recordsFile, "records", "", "json file holding an array of records")
	flags.StringVar(&databaseDSN, "db", "", "SQLite database to read the records from")
	flags.StringVar(&databaseTable, "db-table", "", "database table, defaults to the schema entity")
	flags.StringVarP(&searchTerm, "search", "s", "", "global search term")
	flags.StringArrayVarP(&filterFlags, "filter", "f", nil, "column filter as key=value, repeatable")
	flags.StringVar(&sortFlag, "sort", "", "sort column as key[:asc|desc]")
	flags.IntVarP(&pageIndex, "page", "p", 0, "zero based page index")
	flags.IntVar(&pageSize, "size", 0, "page size, defaults to the configured page size")

	_ = queryCmd.MarkFlagRequired("table")

	queryCmd.SilenceUsage = true
}

func runQuery(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		ui.PrintError("failed to load settings: %v", err)
		return err
	}

	if pageSize <= 0 {
		pageSize = settings.PageSize
	}

	catalog, err := loader.LoadCatalog(settings)
	if err != nil {
		ui.PrintError("failed to load schemas: %v", err)
		return err
	}

	columns, schema, err := catalog.Columns(queryTable, settings.Locale)
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	records, err := loadRecords(schema.OriginalSchema().Entity)
	if err != nil {
		ui.PrintError("failed to load records: %v", err)
		return err
	}

	view := controller.New(columns, records, pageSize)
	view.SetSearch(searchTerm)

	for _, raw := range filterFlags {
		key, value, err := parseFilterFlag(columns, raw)
		if err != nil {
			ui.PrintError("%v", err)
			return err
		}

		view.SetFilter(key, value)
	}

	if sortFlag != "" {
		key, direction := parseSortFlag(sortFlag)
		view.SetSort(key, direction)
	}

	view.SetPage(pageIndex)

	state := view.State()
	if err := memsource.NewConnector(datasource.RecordSlice(records)).ValidateRequest(datasource.Request{
		Columns: columns,
		Filters: state.Filters,
		Sort:    state.Sort,
		Search:  state.Search,
		Page:    state.Page,
	}); err != nil {
		ui.PrintError("invalid query: %v", err)
		return err
	}

	result := view.View()
	if result.PageIndex != pageIndex {
		ui.PrintWarning("page %d does not exist, showing page %d", pageIndex, result.PageIndex)
	}

	if err := printResult(columns, result); err != nil {
		return err
	}

	ui.PrintInfo("page %d of %d, %d of %d records match",
		result.PageIndex+1, result.TotalPages, result.FilteredCount, result.TotalCount)

	return nil
}

func loadRecords(entity string) ([]datasource.Record, error) {
	switch {
	case recordsFile != "" && databaseDSN != "":
		return nil, fmt.Errorf("--records and --db are mutually exclusive")
	case recordsFile != "":
		return loader.RecordsFromFile(recordsFile)
	case databaseDSN != "":
		return loader.RecordsFromDatabase(databaseDSN, databaseTable, entity)
	default:
		return nil, fmt.Errorf("either --records or --db is required")
	}
}

func parseFilterFlag(columns datasource.Columns, raw string) (string, datasource.FilterValue, error) {
	parts := strings.SplitN(raw, "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("filter %q is not of the form key=value", raw)
	}

	key := strings.TrimSpace(parts[0])

	column, exists := columns.Lookup(key)
	if !exists {
		return "", nil, fmt.Errorf("unknown filter column %s", key)
	}

	return key, datasource.ParseFilterValue(column.Type, parts[1]), nil
}

func parseSortFlag(raw string) (string, gridquery.Order) {
	if index := strings.LastIndex(raw, ":"); index >= 0 {
		return raw[:index], gridquery.ParseOrder(raw[index+1:])
	}

	return raw, gridquery.OrderAsc
}

func printResult(columns datasource.Columns, result *datasource.Result) error {
	headers := make([]string, len(columns))
	for i, column := range columns {
		headers[i] = column.Label
	}

	rows := make([][]string, len(result.Records))
	for i, record := range result.Records {
		row := make([]string, len(columns))
		for j, column := range columns {
			row[j] = column.Display(record)
		}

		rows[i] = row
	}

	return ui.WriteTable(os.Stdout, headers, rows)
}
