package gridquery

import "strings"

// Order describes a direction to order a column by.
type Order string

const (
	// OrderAsc describes ascending column order.
	OrderAsc Order = "asc"

	// OrderDesc describes descending column order.
	OrderDesc Order = "desc"
)

// Reverse returns the opposite direction.
func (order Order) Reverse() Order {
	if order == OrderDesc {
		return OrderAsc
	}

	return OrderDesc
}

// ParseOrder maps user input onto an Order. Anything that is not
// recognizably descending is ascending.
func ParseOrder(raw string) Order {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending", "-":
		return OrderDesc
	default:
		return OrderAsc
	}
}

// ValueType is the abstract type of a column, which decides how the column
// is filtered.
type ValueType string

const (
	// TypeText columns are filtered by wildcard, regular expression or keywords.
	TypeText ValueType = "text"

	// TypeNumber columns are filtered by an inclusive min/max range.
	TypeNumber ValueType = "number"

	// TypeDate columns are filtered by a single day or an inclusive day range.
	TypeDate ValueType = "date"

	// TypeCategory columns are filtered by a set of selected values.
	TypeCategory ValueType = "category"
)

var validValueTypes = map[ValueType]struct{}{
	TypeText:     {},
	TypeNumber:   {},
	TypeDate:     {},
	TypeCategory: {},
}

// Valid reports whether the type is one of the known value types.
func (valueType ValueType) Valid() bool {
	_, exists := validValueTypes[valueType]
	return exists
}

// DefaultPageSize is used whenever a page size is not positive.
const DefaultPageSize = 20
