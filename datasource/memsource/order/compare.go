package order

import (
	"sort"
	"strings"
	"time"

	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/datasource"
)

// Compare returns -1, 0 or 1. Numbers of any kind compare numerically,
// strings case insensitively, times chronologically and booleans with false
// first. Values of differing kinds compare by their lower cased text.
func Compare(a, b interface{}) int {
	if numberA, isNumber := datasource.NumericValue(a); isNumber {
		if numberB, isNumber := datasource.NumericValue(b); isNumber {
			return compareFloats(numberA, numberB)
		}
	}

	switch typedA := a.(type) {
	case string:
		if typedB, isString := b.(string); isString {
			return strings.Compare(strings.ToLower(typedA), strings.ToLower(typedB))
		}
	case time.Time:
		if typedB, isTime := b.(time.Time); isTime {
			switch {
			case typedA.Before(typedB):
				return -1
			case typedA.After(typedB):
				return 1
			default:
				return 0
			}
		}
	case bool:
		if typedB, isBool := b.(bool); isBool {
			switch {
			case typedA == typedB:
				return 0
			case !typedA:
				return -1
			default:
				return 1
			}
		}
	}

	return strings.Compare(
		strings.ToLower(datasource.FormatValue(a)),
		strings.ToLower(datasource.FormatValue(b)),
	)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

type sortEntry struct {
	record  datasource.Record
	value   interface{}
	defined bool
}

// Sort returns the records stably ordered by the given sorter. Records
// without a sort value, or with a NaN one, go last in either direction. The
// input is left as is.
func Sort(records []datasource.Record, sorter Sorter, direction gridquery.Order) []datasource.Record {
	entries := make([]sortEntry, len(records))
	for i, record := range records {
		value, defined := sorter.SortValue(record)
		if defined && datasource.IsNaN(value) {
			value, defined = nil, false
		}

		entries[i] = sortEntry{record: record, value: value, defined: defined}
	}

	descending := direction == gridquery.OrderDesc

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.defined || !b.defined {
			return a.defined && !b.defined
		}

		if descending {
			return Compare(a.value, b.value) > 0
		}

		return Compare(a.value, b.value) < 0
	})

	sorted := make([]datasource.Record, len(entries))
	for i, entry := range entries {
		sorted[i] = entry.record
	}

	return sorted
}
