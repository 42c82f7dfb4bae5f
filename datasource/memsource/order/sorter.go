// Package order sorts records by a single column.
package order

import (
	"gopkg.in/birkirb/loggers.v1/log"

	"github.com/tableaux-project/gridquery/datasource"
)

// Sorter obtains the value a record is ordered by.
type Sorter interface {
	SortValue(record datasource.Record) (interface{}, bool)
}

// ForColumn picks the sorter of a column: a custom sort function wins over a
// sort field, which wins over the column value itself.
func ForColumn(column datasource.Column) Sorter {
	switch {
	case column.SortFunc != nil:
		return Custom{key: column.Key, sortFunc: column.SortFunc}
	case column.SortField != "":
		return Field{path: column.SortField}
	default:
		return Direct{column: column}
	}
}

// Direct orders by the resolved column value.
type Direct struct {
	column datasource.Column
}

func (direct Direct) SortValue(record datasource.Record) (interface{}, bool) {
	return datasource.Resolve(record, direct.column, "")
}

// Field orders by a dotted path which may differ from the displayed value,
// e.g. a raw timestamp behind a formatted date.
type Field struct {
	path string
}

func (field Field) SortValue(record datasource.Record) (interface{}, bool) {
	return datasource.ResolvePath(record, field.path)
}

// Custom orders by the result of a column's sort function.
type Custom struct {
	key      string
	sortFunc func(datasource.Record) interface{}
}

func (custom Custom) SortValue(record datasource.Record) (value interface{}, defined bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.WithFields(
				"column", custom.key,
				"panic", recovered,
			).Warn("Sort function failed - sorting record last")

			value, defined = nil, false
		}
	}()

	value = custom.sortFunc(record)

	return value, value != nil
}
