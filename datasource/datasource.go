// Package datasource contains the implementation agnostic gridquery core: the
// request and result contract, column descriptors, value resolution and
// pagination. Sub packages contain the actual query implementations.
package datasource

import (
	"strings"

	"github.com/tableaux-project/gridquery"
)

// Record is a single, arbitrarily nested data item. Records are owned by
// the data layer and never modified by a Connector.
type Record map[string]interface{}

// ID returns the identity of the record, if present.
func (r Record) ID() (interface{}, bool) {
	id, exists := r["id"]
	return id, exists && id != nil
}

// RecordSource supplies the records a Connector works on.
type RecordSource interface {
	Records() []Record
}

// RecordSlice is a RecordSource over a fixed, ordered set of records.
type RecordSlice []Record

// Records returns the records in their original order.
func (s RecordSlice) Records() []Record {
	return s
}

// Connector defines the central contract between gridquery and an implementing data source.
type Connector interface {
	// ValidateRequest validates if the implementation is able to serve the request. Any error
	// indicates that the request references unknown columns or carries filter values that do
	// not fit their column. FetchData tolerates such requests by ignoring the offending parts.
	ValidateRequest(request Request) error

	// FetchData searches, filters, orders and paginates the records of the data source.
	FetchData(request Request) (*Result, error)
}

// Request bundles all state that shapes a single data retrieval.
type Request struct {
	Columns Columns
	Filters FilterState
	Sort    SortState
	Search  string
	Page    PageState
}

// Result is the outcome of a single data retrieval.
type Result struct {
	// Records is the visible page.
	Records []Record

	// TotalCount is the number of records before searching and filtering.
	TotalCount int

	// FilteredCount is the number of records which survived searching and filtering.
	FilteredCount int

	TotalPages int

	// PageIndex is the page actually served, after clamping.
	PageIndex int
}

// SortState designates a column to be ordered in a certain direction. An
// empty Key keeps the original record order.
type SortState struct {
	Key       string
	Direction gridquery.Order
}

// Sorted reports whether a sort column is set.
func (s SortState) Sorted() bool {
	return s.Key != ""
}

// FilterState maps column keys to their active filter value.
type FilterState map[string]FilterValue

// Active returns a copy containing only the non empty filter values.
func (f FilterState) Active() FilterState {
	active := make(FilterState, len(f))
	for key, value := range f {
		if value != nil && !value.Empty() {
			active[key] = value
		}
	}

	return active
}

// FilterValue is a filter for a single column. Its concrete type must fit
// the value type of the filtered column.
type FilterValue interface {
	// Empty reports whether the value imposes no restriction at all.
	Empty() bool

	// Type returns the column value type this filter applies to.
	Type() gridquery.ValueType
}

// TextFilter is a wildcard pattern, regular expression or set of keywords.
type TextFilter string

func (t TextFilter) Empty() bool {
	return strings.TrimSpace(string(t)) == ""
}

func (t TextFilter) Type() gridquery.ValueType {
	return gridquery.TypeText
}

// NumberRange is an inclusive range. Bounds may be numbers or numeric strings;
// a nil or blank bound is open.
type NumberRange struct {
	Min, Max interface{}
}

func (n NumberRange) Empty() bool {
	return blankBound(n.Min) && blankBound(n.Max)
}

func (n NumberRange) Type() gridquery.ValueType {
	return gridquery.TypeNumber
}

func blankBound(bound interface{}) bool {
	if bound == nil {
		return true
	}

	s, isString := bound.(string)
	return isString && strings.TrimSpace(s) == ""
}

// DateRange holds ISO dates. A single date matches that day, two dates form
// an inclusive range in either order.
type DateRange struct {
	Date1, Date2 string
}

func (d DateRange) Empty() bool {
	return strings.TrimSpace(d.Date1) == "" && strings.TrimSpace(d.Date2) == ""
}

func (d DateRange) Type() gridquery.ValueType {
	return gridquery.TypeDate
}

// CategorySet lists the selected values of a category column.
type CategorySet []string

func (c CategorySet) Empty() bool {
	return len(c) == 0
}

func (c CategorySet) Type() gridquery.ValueType {
	return gridquery.TypeCategory
}

const rangeSeparator = ".."

// ParseFilterValue converts the textual form of a filter into the
// FilterValue fitting the value type. Numbers and dates accept "lo..hi" with
// either side left out, categories a comma separated list.
func ParseFilterValue(valueType gridquery.ValueType, raw string) FilterValue {
	switch valueType {
	case gridquery.TypeNumber:
		lower, upper, isRange := splitRange(raw)
		if !isRange {
			return NumberRange{Min: lower, Max: lower}
		}

		return NumberRange{Min: optionalBound(lower), Max: optionalBound(upper)}
	case gridquery.TypeDate:
		lower, upper, _ := splitRange(raw)
		return DateRange{Date1: lower, Date2: upper}
	case gridquery.TypeCategory:
		var selected CategorySet
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				selected = append(selected, part)
			}
		}

		return selected
	default:
		return TextFilter(raw)
	}
}

func splitRange(raw string) (string, string, bool) {
	index := strings.Index(raw, rangeSeparator)
	if index < 0 {
		return strings.TrimSpace(raw), "", false
	}

	return strings.TrimSpace(raw[:index]), strings.TrimSpace(raw[index+len(rangeSeparator):]), true
}

func optionalBound(bound string) interface{} {
	if bound == "" {
		return nil
	}

	return bound
}
