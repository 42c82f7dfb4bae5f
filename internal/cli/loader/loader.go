// Package loader reads the inputs of the command line tool.
package loader

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gopkg.in/birkirb/loggers.v1/log"

	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/config"
	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/datasource/sqlsource"
)

// RecordsFromFile reads a json file holding an array of records.
func RecordsFromFile(path string) ([]datasource.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read records %s", path)
	}

	var raw []map[string]interface{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse records %s", path)
	}

	records := make([]datasource.Record, len(raw))
	for i, record := range raw {
		records[i] = record
	}

	return records, nil
}

// RecordsFromDatabase loads a table from a SQLite database. An empty table
// name reads the table backing the schema entity.
func RecordsFromDatabase(dsn, table, entity string) ([]datasource.Record, error) {
	connector, err := sqlsource.NewSQLiteConnector(dsn)
	if err != nil {
		return nil, err
	}

	defer connector.Close()

	recordLoader := sqlsource.NewLoader(connector)

	var records datasource.RecordSlice
	if table != "" {
		records, err = recordLoader.LoadTable(table)
	} else {
		records, err = recordLoader.LoadEntity(entity)
	}

	return records, err
}

// Catalog bundles the schema configuration of the command line tool.
type Catalog struct {
	Schemas    config.SchemaMapper
	Enums      config.EnumMapper
	Translator config.Translator
}

// LoadCatalog loads schemas, enums and translations. Folders which do not
// exist fall back to the assets next to the executable; enums and
// translations are optional.
func LoadCatalog(settings config.Settings) (Catalog, error) {
	enums := config.NewEnumMapper(nil)
	if exists(settings.EnumDir) {
		loaded, err := config.NewEnumMapperFromFolder(settings.EnumDir)
		if err != nil {
			return Catalog{}, err
		}

		enums = loaded
	} else if loaded, err := gridquery.NewEnumMapperFromAssets(); err == nil {
		enums = loaded
	} else {
		log.WithField("folder", settings.EnumDir).Debug("No enums found")
	}

	translator := config.NewTranslator(nil)
	if exists(settings.I18nDir) {
		loaded, err := config.NewTranslatorFromFolder(settings.I18nDir)
		if err != nil {
			return Catalog{}, err
		}

		translator = loaded
	} else if loaded, err := gridquery.NewTranslatorFromAssets(); err == nil {
		translator = loaded
	} else {
		log.WithField("folder", settings.I18nDir).Debug("No translations found")
	}

	var schemas config.SchemaMapper
	var err error
	if exists(settings.SchemaDir) {
		schemas, err = config.NewSchemaMapperFromFolder(settings.SchemaDir)
	} else {
		schemas, err = gridquery.NewSchemaMapperFromAssets()
	}

	if err != nil {
		return Catalog{}, err
	}

	if err := schemas.ValidateIntegrity(enums); err != nil {
		return Catalog{}, err
	}

	return Catalog{Schemas: schemas, Enums: enums, Translator: translator}, nil
}

// Columns returns the columns of a table, with translated labels.
func (catalog Catalog) Columns(table, locale string) (datasource.Columns, config.ResolvedTableSchema, error) {
	schema, err := catalog.Schemas.ResolvedSchema(table)
	if err != nil {
		return nil, config.ResolvedTableSchema{}, errors.Wrapf(err, "table %s", table)
	}

	columns, err := datasource.NewColumnsFromSchema(schema, catalog.Enums)
	if err != nil {
		return nil, config.ResolvedTableSchema{}, err
	}

	for i := range columns {
		columns[i].Label = catalog.Translator.Label(locale, columns[i].Label)
		if columns[i].Label == "" {
			columns[i].Label = columns[i].Key
		}
	}

	return columns, schema, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)

	return err == nil
}
