package memsource

import (
	"strings"

	"github.com/tableaux-project/gridquery/datasource"
	"gopkg.in/birkirb/loggers.v1/log"
)

// SearchMatches reports whether any searchable column of the record
// contains the term, case insensitively. An empty term, or a table without
// searchable columns, matches every record.
func SearchMatches(record datasource.Record, columns datasource.Columns, term string) bool {
	return newSearcher(columns, term)(record)
}

// newSearcher prepares the global search once per request.
func newSearcher(columns datasource.Columns, term string) func(datasource.Record) bool {
	if term == "" || !columns.Searchable() {
		return func(datasource.Record) bool { return true }
	}

	needle := strings.ToLower(term)

	searchable := make(datasource.Columns, 0, len(columns))
	for _, column := range columns {
		if column.Searchable {
			searchable = append(searchable, column)
		}
	}

	return func(record datasource.Record) bool {
		for _, column := range searchable {
			text, defined := searchText(record, column)
			if defined && strings.Contains(strings.ToLower(text), needle) {
				return true
			}
		}

		return false
	}
}

func searchText(record datasource.Record, column datasource.Column) (string, bool) {
	switch search := column.Search.(type) {
	case datasource.SearchFunc:
		// Undefined values reach the function as nil, so it can still name them.
		value, _ := datasource.Resolve(record, column, "")
		return callSearchFunc(search, value, column.Key)
	case datasource.SearchPaths:
		parts := make([]string, 0, len(search))
		for _, path := range search {
			if value, defined := datasource.ResolvePath(record, path); defined {
				parts = append(parts, datasource.FormatValue(value))
			}
		}

		return strings.Join(parts, " "), len(parts) > 0
	default:
		value, defined := datasource.Resolve(record, column, "")
		if !defined {
			return "", false
		}

		return datasource.FormatValue(value), true
	}
}

func callSearchFunc(search datasource.SearchFunc, value interface{}, key string) (text string, defined bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.WithFields(
				"column", key,
				"panic", recovered,
			).Warn("Search function failed - not matching column")

			text, defined = "", false
		}
	}()

	text = search(value)

	return text, text != ""
}
