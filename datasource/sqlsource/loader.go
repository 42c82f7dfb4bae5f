package sqlsource

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/birkirb/loggers.v1/log"

	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/datasource/sqlsource/util"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Loader reads whole tables into records. Result columns become record
// keys in camel case; a column name containing "." nests the value, so
// "company.company_name" ends up as record["company"]["companyName"].
type Loader struct {
	dbConnector DatabaseConnector
}

// NewLoader creates a Loader on the given database.
func NewLoader(dbConnector DatabaseConnector) *Loader {
	return &Loader{dbConnector: dbConnector}
}

// LoadEntity loads the table backing a schema entity, e.g. entity
// "jobPosting" reads table "job_posting".
func (loader Loader) LoadEntity(entity string) (datasource.RecordSlice, error) {
	return loader.LoadTable(util.DescriptorToIdentifier(entity))
}

// LoadTable loads all rows of a table.
func (loader Loader) LoadTable(table string) (datasource.RecordSlice, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	return loader.LoadQuery(`SELECT * FROM "` + table + `"`)
}

// LoadQuery loads the rows of an arbitrary query.
func (loader Loader) LoadQuery(query string, args ...interface{}) (datasource.RecordSlice, error) {
	start := time.Now()

	rows, err := loader.dbConnector.DatabaseObject().Queryx(query, args...)
	if err != nil {
		log.WithField("query", query).Error("Failed to execute query")
		return nil, errors.Wrap(err, "load records")
	}

	defer util.LoggingRowsCloser(rows, "record-load")

	records := datasource.RecordSlice{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, errors.Wrap(err, "scan record")
		}

		records = append(records, nestRow(row))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate records")
	}

	log.WithFields(
		"time", time.Since(start),
		"count", len(records),
	).Info("Records loaded")

	return records, nil
}

func nestRow(row map[string]interface{}) datasource.Record {
	record := make(datasource.Record, len(row))

	for name, value := range row {
		segments := strings.Split(name, ".")

		node := record
		for _, segment := range segments[:len(segments)-1] {
			key := util.IdentifierToDescriptor(segment)

			child, isRecord := node[key].(datasource.Record)
			if !isRecord {
				child = make(datasource.Record)
				node[key] = child
			}

			node = child
		}

		node[util.IdentifierToDescriptor(segments[len(segments)-1])] = makeItemTypeSafe(value)
	}

	return record
}

// makeItemTypeSafe turns raw driver bytes into strings, leaving everything
// else as the driver returned it.
func makeItemTypeSafe(value interface{}) interface{} {
	if raw, isBytes := value.([]byte); isBytes {
		return string(raw)
	}

	return value
}
