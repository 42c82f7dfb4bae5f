package datasource

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/config"
)

// Column describes how to derive, filter, sort and display one column for
// all records of a table.
type Column struct {
	Key        string
	Label      string
	Type       gridquery.ValueType
	Sortable   bool
	Searchable bool

	// Value resolves the column value of a record. Nil means DirectKey.
	Value ValueSource

	// SortField is a dotted path sorted by instead of the column value.
	SortField string

	// SortFunc takes precedence over SortField and Value when sorting.
	SortFunc func(Record) interface{}

	// Search overrides what the global search looks at. Nil searches the column value.
	Search SearchSource

	// Render produces the display value. Nil means RenderValue.
	Render Renderer

	// Options are the selectable values of a category column, if known.
	Options []string
}

// ValueSource is one of DirectKey, NestedPath or CustomAccessor.
type ValueSource interface {
	isValueSource()
}

// DirectKey looks the column key up in the record.
type DirectKey struct{}

// NestedPath traverses the record along a dotted path, e.g. "company.name".
type NestedPath string

// CustomAccessor computes the value from the record.
type CustomAccessor func(Record) interface{}

func (DirectKey) isValueSource()      {}
func (NestedPath) isValueSource()     {}
func (CustomAccessor) isValueSource() {}

// SearchSource is one of SearchPaths or SearchFunc.
type SearchSource interface {
	isSearchSource()
}

// SearchPaths are resolved individually and joined by a single space.
type SearchPaths []string

// SearchFunc derives the searchable text from the resolved column value. It
// is called with nil when the record has no value for the column.
type SearchFunc func(value interface{}) string

func (SearchPaths) isSearchSource() {}
func (SearchFunc) isSearchSource()  {}

// Renderer is one of RenderValue or RenderFunc.
type Renderer interface {
	isRenderer()
}

// RenderValue formats the resolved column value.
type RenderValue struct{}

// RenderFunc produces the display text from the record.
type RenderFunc func(Record) string

func (RenderValue) isRenderer() {}
func (RenderFunc) isRenderer()  {}

// Display returns the display text of the column for a record.
func (c Column) Display(record Record) string {
	if render, isFunc := c.Render.(RenderFunc); isFunc {
		return render(record)
	}

	value, defined := Resolve(record, c, "")
	if !defined {
		return ""
	}

	return FormatValue(value)
}

// FormatValue renders a resolved value as plain text.
func FormatValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case time.Time:
		return typed.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case []interface{}:
		parts := make([]string, len(typed))
		for i, part := range typed {
			parts[i] = FormatValue(part)
		}

		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(typed, ", ")
	default:
		return fmt.Sprint(typed)
	}
}

// Columns is the ordered column set of a table.
type Columns []Column

// Lookup finds a column by key.
func (c Columns) Lookup(key string) (Column, bool) {
	for _, column := range c {
		if column.Key == key {
			return column, true
		}
	}

	return Column{}, false
}

// Searchable reports whether any column takes part in the global search.
func (c Columns) Searchable() bool {
	for _, column := range c {
		if column.Searchable {
			return true
		}
	}

	return false
}

// Validate checks that keys are unique and types are known.
func (c Columns) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for _, column := range c {
		if column.Key == "" {
			return fmt.Errorf("column without key")
		}

		if _, exists := seen[column.Key]; exists {
			return fmt.Errorf("duplicate column %s", column.Key)
		}

		seen[column.Key] = struct{}{}

		if !column.Type.Valid() {
			return fmt.Errorf("unknown type %s on column %s", column.Type, column.Key)
		}
	}

	return nil
}

// NewColumnsFromSchema derives the columns of a resolved table schema. Category
// columns referencing an enum get the enum keys as options.
func NewColumnsFromSchema(schema config.ResolvedTableSchema, enums config.EnumMapper) (Columns, error) {
	schemaColumns := schema.Columns()

	columns := make(Columns, len(schemaColumns))
	for i, schemaColumn := range schemaColumns {
		column := Column{
			Key:        schemaColumn.Key,
			Label:      schemaColumn.Title,
			Type:       gridquery.ValueType(schemaColumn.Type),
			Sortable:   schemaColumn.Sortable,
			Searchable: schemaColumn.Searchable,
			Value:      DirectKey{},
			SortField:  schemaColumn.SortField,
		}

		if schemaColumn.Path != "" {
			column.Value = NestedPath(schemaColumn.Path)
		}

		if len(schemaColumn.SearchFields) > 0 {
			column.Search = SearchPaths(schemaColumn.SearchFields)
		}

		if schemaColumn.Enum != "" {
			enum, err := enums.Enum(schemaColumn.Enum)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", schemaColumn.Key, err)
			}

			column.Options = enum.Options()
		}

		columns[i] = column
	}

	return columns, columns.Validate()
}
