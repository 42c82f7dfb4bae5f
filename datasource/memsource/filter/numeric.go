package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/tableaux-project/gridquery/datasource"
)

// Numeric matches numbers against an inclusive range. Values which are not
// numeric never match an active range.
type Numeric struct{}

func (filter Numeric) Prepare(filterValue datasource.FilterValue) Predicate {
	numberRange, isRange := filterValue.(datasource.NumberRange)
	if !isRange || inactive(filterValue) {
		return matchAll
	}

	lower, hasLower := ParseNumber(numberRange.Min)
	upper, hasUpper := ParseNumber(numberRange.Max)

	return func(value interface{}, defined bool) bool {
		if !defined {
			return false
		}

		number, isNumber := ParseNumber(value)
		if !isNumber {
			return false
		}

		if hasLower && number < lower {
			return false
		}

		return !hasUpper || number <= upper
	}
}

// ParseNumber converts numbers of any kind and numeric strings to float64.
// NaN, in any form, is not a number.
func ParseNumber(value interface{}) (float64, bool) {
	if text, isString := value.(string); isString {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, false
		}

		return parsed, true
	}

	return datasource.NumericValue(value)
}
