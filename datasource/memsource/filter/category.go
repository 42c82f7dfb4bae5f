package filter

import (
	"github.com/tableaux-project/gridquery/datasource"
)

// Category matches values which are one of the selected values. A multi
// valued field matches if any of its elements is selected.
type Category struct{}

func (filter Category) Prepare(filterValue datasource.FilterValue) Predicate {
	selection, isSet := filterValue.(datasource.CategorySet)
	if !isSet || inactive(filterValue) {
		return matchAll
	}

	selected := make(map[string]struct{}, len(selection))
	for _, value := range selection {
		selected[value] = struct{}{}
	}

	return func(value interface{}, defined bool) bool {
		if !defined {
			return false
		}

		switch values := value.(type) {
		case []interface{}:
			for _, element := range values {
				if _, exists := selected[datasource.FormatValue(element)]; exists {
					return true
				}
			}

			return false
		case []string:
			for _, element := range values {
				if _, exists := selected[element]; exists {
					return true
				}
			}

			return false
		}

		_, exists := selected[datasource.FormatValue(value)]

		return exists
	}
}
