// Package filter contains one predicate per column value type.
package filter

import (
	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/datasource"
)

// Predicate decides whether a resolved column value passes a filter.
// defined is false when the record has no value for the column.
type Predicate func(value interface{}, defined bool) bool

// Filter turns a filter value into a Predicate. Preparing once per request
// keeps per-record work, such as regular expression compilation, out of the
// record loop.
type Filter interface {
	Prepare(filterValue datasource.FilterValue) Predicate
}

// Matches is a shortcut for preparing and applying a filter to a single value.
func Matches(filter Filter, value interface{}, defined bool, filterValue datasource.FilterValue) bool {
	return filter.Prepare(filterValue)(value, defined)
}

var filters = map[gridquery.ValueType]Filter{
	gridquery.TypeText:     Text{},
	gridquery.TypeNumber:   Numeric{},
	gridquery.TypeDate:     Date{},
	gridquery.TypeCategory: Category{},
}

// ForType returns the filter responsible for a column value type.
func ForType(valueType gridquery.ValueType) (Filter, bool) {
	filter, exists := filters[valueType]
	return filter, exists
}

func matchAll(interface{}, bool) bool {
	return true
}

// inactive reports whether a filter value imposes no restriction.
func inactive(filterValue datasource.FilterValue) bool {
	return filterValue == nil || filterValue.Empty()
}
