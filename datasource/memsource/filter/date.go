package filter

import (
	"strings"
	"time"

	"github.com/tableaux-project/gridquery/datasource"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Day is a calendar day, comparable with the usual operators.
type Day int

// ParseDay reduces a time.Time or an ISO formatted string to its calendar
// day, as seen in the value's own time zone.
func ParseDay(value interface{}) (Day, bool) {
	switch typed := value.(type) {
	case time.Time:
		if typed.IsZero() {
			return 0, false
		}

		return dayOf(typed), true
	case string:
		trimmed := strings.TrimSpace(typed)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return dayOf(parsed), true
			}
		}
	}

	return 0, false
}

func dayOf(t time.Time) Day {
	year, month, day := t.Date()
	return Day(year*10000 + int(month)*100 + day)
}

// Date matches a single day when one date is given, and an inclusive range
// of days when two are given. Bounds given in reverse are swapped.
type Date struct{}

func (filter Date) Prepare(filterValue datasource.FilterValue) Predicate {
	dateRange, isRange := filterValue.(datasource.DateRange)
	if !isRange || inactive(filterValue) {
		return matchAll
	}

	first, hasFirst := ParseDay(dateRange.Date1)
	second, hasSecond := ParseDay(dateRange.Date2)

	var from, to Day

	switch {
	case hasFirst && hasSecond:
		from, to = first, second
		if from > to {
			from, to = to, from
		}
	case hasFirst:
		from, to = first, first
	case hasSecond:
		from, to = second, second
	default:
		return matchAll
	}

	return func(value interface{}, defined bool) bool {
		if !defined {
			return false
		}

		day, isDay := ParseDay(value)

		return isDay && day >= from && day <= to
	}
}
