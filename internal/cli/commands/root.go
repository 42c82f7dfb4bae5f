package commands

import (
	"github.com/spf13/cobra"

	"github.com/tableaux-project/gridquery/config"
)

const version = "0.1.0"

var (
	settingsFile string
	schemaDir    string
	enumDir      string
	i18nDir      string
	locale       string
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "gridquery",
	Short:   "Search, filter, sort and page tabular records",
	Version: version,
	Long: `gridquery runs the table query engine against a set of records, using
column definitions from json table schemas.

Settings are read from an optional TOML file, GRIDQUERY_* environment
variables and the flags below, in increasing precedence.`,
	Example: `  # List the columns of a table
  $ gridquery columns --table jobs

  # Search and filter records from a json file
  $ gridquery query --table jobs --records jobs.json --search remote --filter salary=50000..100000

  # Read the records from a SQLite database instead
  $ gridquery query --table jobs --db file:jobs.db --sort postedAt:desc`,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFile, "config", "gridquery.toml", "settings file")
	flags.StringVar(&schemaDir, "schema-dir", "", "folder holding the table schemas")
	flags.StringVar(&enumDir, "enum-dir", "", "folder holding the category enums")
	flags.StringVar(&i18nDir, "i18n-dir", "", "folder holding the label translations")
	flags.StringVar(&locale, "locale", "", "language of column labels")

	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(queryCmd)
}

// loadSettings applies the flags on top of the layered settings.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	settings, err := config.LoadSettings(settingsFile)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("schema-dir") {
		settings.SchemaDir = schemaDir
	}

	if flags.Changed("enum-dir") {
		settings.EnumDir = enumDir
	}

	if flags.Changed("i18n-dir") {
		settings.I18nDir = i18nDir
	}

	if flags.Changed("locale") {
		settings.Locale = locale
	}

	return settings, nil
}
