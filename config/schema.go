package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/birkirb/loggers.v1/log"
)

var (
	// ErrUnknownSchema indicates that a requested schema is not
	// known to a SchemaMapper.
	ErrUnknownSchema = errors.New("unknown schema")

	// ErrUnknownColumn indicates that a requested column is
	// not known to a TableSchema.
	ErrUnknownColumn = errors.New("unknown column")
)

// UnresolvableSchemaError indicates that a schema that was required to be
// resolved during schema loading could not be found.
type UnresolvableSchemaError struct {
	schema string
}

func (e UnresolvableSchemaError) Error() string {
	return fmt.Sprintf("cannot resolve table schema %s", e.schema)
}

// UnknownColumnTypeError indicates that a column declares a type which is
// not one of the known value types.
type UnknownColumnTypeError struct {
	schema     string
	column     string
	columnType string
}

func (e UnknownColumnTypeError) Error() string {
	return fmt.Sprintf("unknown column type %s in column %s of schema %s", e.columnType, e.column, e.schema)
}

// UnknownColumnEnumError indicates that a category column references an
// enum the EnumMapper does not know.
type UnknownColumnEnumError struct {
	schema string
	column string
	enum   string
}

func (e UnknownColumnEnumError) Error() string {
	return fmt.Sprintf("unknown enum %s in column %s of schema %s", e.enum, e.column, e.schema)
}

// DuplicateColumnError indicates that two columns of a resolved schema
// share the same key.
type DuplicateColumnError struct {
	schema string
	column string
}

func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %s in schema %s", e.column, e.schema)
}

// TableSchemaExclusion is a column key prefix that is to be eliminated
// after a table schema was resolved.
type TableSchemaExclusion string

// TableSchema describes the columns of a single table, as read from a
// schema file.
type TableSchema struct {
	Entity     string                      `json:"entity"`
	Extensions []TableSchemaExtensionTable `json:"extensions"`
	Exclusions []TableSchemaExclusion      `json:"exclusions"`
	Columns    []TableSchemaColumn         `json:"columns"`
}

var validColumnTypes = map[string]struct{}{
	"text":     {},
	"number":   {},
	"date":     {},
	"category": {},
}

// ValidateIntegrity checks that every column has a known type, and that
// category columns only reference enums known to the given EnumMapper.
func (schema TableSchema) ValidateIntegrity(mapper EnumMapper) error {
	for _, column := range schema.Columns {
		if _, exists := validColumnTypes[column.Type]; !exists {
			return &UnknownColumnTypeError{
				schema:     schema.Entity,
				column:     column.Key,
				columnType: column.Type,
			}
		}

		if column.Enum == "" {
			continue
		}

		if _, err := mapper.Enum(column.Enum); err != nil {
			return &UnknownColumnEnumError{
				schema: schema.Entity,
				column: column.Key,
				enum:   column.Enum,
			}
		}
	}

	return nil
}

// ResolvedTableSchema describes the resolved schema for a table, that is
// resolving all the extensions of a TableSchema, and assembling its columns
// (while deleting columns applying to the exclusions).
type ResolvedTableSchema struct {
	originalSchema TableSchema
	columns        []TableSchemaColumn
	columnsMap     map[string]TableSchemaColumn
}

// OriginalSchema returns the original TableSchema without extended columns.
func (resolvedTableSchema ResolvedTableSchema) OriginalSchema() TableSchema {
	return resolvedTableSchema.originalSchema
}

// Column retrieves the TableSchemaColumn for a single column key, or
// returns an ErrUnknownColumn, if the column does not exist.
func (resolvedTableSchema ResolvedTableSchema) Column(key string) (TableSchemaColumn, error) {
	column, exists := resolvedTableSchema.columnsMap[key]
	if !exists {
		return TableSchemaColumn{}, ErrUnknownColumn
	}

	return column, nil
}

// Columns returns all columns in resolved order.
func (resolvedTableSchema ResolvedTableSchema) Columns() []TableSchemaColumn {
	columns := make([]TableSchemaColumn, len(resolvedTableSchema.columns))
	copy(columns, resolvedTableSchema.columns)

	return columns
}

// TableSchemaColumn is a single column of a TableSchema. Path, SortField and
// SearchFields are dotted record paths; an empty Path means the column value
// is looked up by Key.
type TableSchemaColumn struct {
	Key           string                 `json:"key"`
	Title         string                 `json:"title"`
	Type          string                 `json:"type"`
	Path          string                 `json:"path"`
	Sortable      bool                   `json:"sortable"`
	Searchable    bool                   `json:"searchable"`
	SortField     string                 `json:"sortField"`
	SearchFields  []string               `json:"searchFields"`
	Enum          string                 `json:"enum"`
	FrontendHints map[string]interface{} `json:"frontendHints"`
}

// TableSchemaExtensionTable pulls the columns of another schema into a
// TableSchema. A non empty Key nests the extension below that record key.
type TableSchemaExtensionTable struct {
	Title string `json:"title"`
	Table string `json:"table"`
	Key   string `json:"key"`
}

// SchemaMapper is a mapper which maps schema names to resolved schemas.
type SchemaMapper struct {
	schemas         map[string]TableSchema
	resolvedSchemas map[string]ResolvedTableSchema
}

func readFromPath(schemaPath string) (TableSchema, error) {
	file, err := ioutil.ReadFile(schemaPath)
	if err != nil {
		return TableSchema{}, errors.Wrapf(err, "read schema %s", schemaPath)
	}

	var raw interface{}
	if err := json.Unmarshal(file, &raw); err != nil {
		return TableSchema{}, errors.Wrapf(err, "parse schema %s", schemaPath)
	}

	if err := validateSchemaDocument(schemaPath, raw); err != nil {
		return TableSchema{}, err
	}

	dat := TableSchema{}
	if err := json.Unmarshal(file, &dat); err != nil {
		return TableSchema{}, errors.Wrapf(err, "decode schema %s", schemaPath)
	}

	return dat, nil
}

// NewSchemaMapperFromFolder builds a new schema mapper from a given folder,
// recursively loading all schema jsons which are found in there.
func NewSchemaMapperFromFolder(schemaRoot string) (SchemaMapper, error) {
	normalizedRoot, err := filepath.Abs(schemaRoot)
	if err != nil {
		return SchemaMapper{}, err
	}

	schemas := make(map[string]TableSchema)
	if walkErr := filepath.Walk(normalizedRoot, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if filepath.Ext(path) == dotJSON {
			schema, err := readFromPath(path)
			if err != nil {
				return err
			}

			schemas[normalizeSchemaKey(path, normalizedRoot)] = schema
		} else if !f.IsDir() {
			log.WithField("file", path).Debug("Ignoring file, as not a json file!")
		}

		return nil
	}); walkErr != nil {
		return SchemaMapper{}, walkErr
	}

	log.WithField("count", len(schemas)).Info("Successfully loaded schemas")

	resolvedSchemas, err := mapSchemasToResolvedSchemas(schemas)
	if err != nil {
		return SchemaMapper{}, err
	}

	return SchemaMapper{
		schemas:         schemas,
		resolvedSchemas: resolvedSchemas,
	}, nil
}

// normalizeSchemaKey calculates the name of a schema by its path relative
// to the root of all schemas, using "/" as separator on every system.
func normalizeSchemaKey(schemaPath, schemaRoot string) string {
	relative := strings.TrimPrefix(strings.TrimPrefix(schemaPath, schemaRoot), string(os.PathSeparator))
	relative = strings.TrimSuffix(relative, filepath.Ext(schemaPath))

	return strings.ToLower(filepath.ToSlash(relative))
}

func mapSchemasToResolvedSchemas(schemas map[string]TableSchema) (map[string]ResolvedTableSchema, error) {
	resolvedSchemas := make(map[string]ResolvedTableSchema, len(schemas))

	for table, schema := range schemas {
		resolvedColumns, err := resolveColumns(table, schema, schemas)
		if err != nil {
			return nil, err
		}

		resolvedColumnsMap := make(map[string]TableSchemaColumn, len(resolvedColumns))
		for _, column := range resolvedColumns {
			if _, exists := resolvedColumnsMap[column.Key]; exists {
				return nil, &DuplicateColumnError{schema: table, column: column.Key}
			}

			resolvedColumnsMap[column.Key] = column
		}

		resolvedSchemas[table] = ResolvedTableSchema{
			originalSchema: schema,
			columns:        resolvedColumns,
			columnsMap:     resolvedColumnsMap,
		}
	}

	return resolvedSchemas, nil
}

// Schema retrieves a specific schema from the mapper if existing, or returns
// a ErrUnknownSchema otherwise.
func (schemaMapper SchemaMapper) Schema(schema string) (TableSchema, error) {
	tableSchema, exists := schemaMapper.schemas[schema]
	if !exists {
		return TableSchema{}, ErrUnknownSchema
	}

	return tableSchema, nil
}

// Schemas returns all schemas which the mapper knows, in no particular order.
func (schemaMapper SchemaMapper) Schemas() []TableSchema {
	schemas := make([]TableSchema, 0, len(schemaMapper.schemas))
	for _, v := range schemaMapper.schemas {
		schemas = append(schemas, v)
	}

	return schemas
}

// ResolvedSchema retrieves a specific resolved schema from the mapper if existing,
// or returns a ErrUnknownSchema otherwise.
func (schemaMapper SchemaMapper) ResolvedSchema(schema string) (ResolvedTableSchema, error) {
	resolved, exists := schemaMapper.resolvedSchemas[schema]
	if !exists {
		return ResolvedTableSchema{}, ErrUnknownSchema
	}

	return resolved, nil
}

// ResolvedSchemas returns all resolved schemas which the mapper knows, mapped by
// their name.
func (schemaMapper SchemaMapper) ResolvedSchemas() map[string]ResolvedTableSchema {
	schemas := make(map[string]ResolvedTableSchema, len(schemaMapper.resolvedSchemas))
	for k, v := range schemaMapper.resolvedSchemas {
		schemas[k] = v
	}

	return schemas
}

// ValidateIntegrity iteratively checks all schemas known to the mapper for integrity.
func (schemaMapper SchemaMapper) ValidateIntegrity(mapper EnumMapper) error {
	for _, schema := range schemaMapper.schemas {
		if err := schema.ValidateIntegrity(mapper); err != nil {
			return err
		}
	}

	return nil
}

func resolveColumns(table string, schema TableSchema, allSchemas map[string]TableSchema) ([]TableSchemaColumn, error) {
	columns, err := resolveColumnsWithPrefix(schema, allSchemas, "", map[string]struct{}{table: {}})
	if err != nil {
		return nil, err
	}

	if len(schema.Exclusions) == 0 {
		return columns, nil
	}

	finalColumns := make([]TableSchemaColumn, 0, len(columns))
	for _, column := range columns {
		if !isExcluded(column.Key, schema.Exclusions) {
			finalColumns = append(finalColumns, column)
		}
	}

	log.WithFields(
		"columns", len(columns)-len(finalColumns),
		"schema", schema.Entity,
	).Debug("Removed excluded columns from schema")

	return finalColumns, nil
}

func isExcluded(key string, exclusions []TableSchemaExclusion) bool {
	for _, exclusion := range exclusions {
		if strings.HasPrefix(key, string(exclusion)) {
			return true
		}
	}

	return false
}

// resolveColumnsWithPrefix collects the columns of a schema and, depth first,
// of all its extensions. visiting guards against extension cycles.
func resolveColumnsWithPrefix(schema TableSchema, allSchemas map[string]TableSchema, prefix string,
	visiting map[string]struct{}) ([]TableSchemaColumn, error) {
	columns := make([]TableSchemaColumn, 0, len(schema.Columns))
	for _, column := range schema.Columns {
		columns = append(columns, prefixColumn(column, prefix))
	}

	for _, extension := range schema.Extensions {
		target, exists := allSchemas[extension.Table]
		if !exists {
			return nil, &UnresolvableSchemaError{schema: extension.Table}
		}

		if _, cyclic := visiting[extension.Table]; cyclic {
			return nil, &UnresolvableSchemaError{schema: extension.Table}
		}

		visiting[extension.Table] = struct{}{}

		extensionPrefix := joinPath(prefix, extension.Key)
		extensionColumns, err := resolveColumnsWithPrefix(target, allSchemas, extensionPrefix, visiting)
		if err != nil {
			return nil, err
		}

		delete(visiting, extension.Table)

		columns = append(columns, extensionColumns...)
	}

	return columns, nil
}

func prefixColumn(column TableSchemaColumn, prefix string) TableSchemaColumn {
	if prefix == "" {
		return column
	}

	resolved := column
	resolved.Key = joinPath(prefix, column.Key)

	if column.Path != "" {
		resolved.Path = joinPath(prefix, column.Path)
	}

	if column.SortField != "" {
		resolved.SortField = joinPath(prefix, column.SortField)
	}

	if column.SearchFields != nil {
		resolved.SearchFields = make([]string, len(column.SearchFields))
		for i, field := range column.SearchFields {
			resolved.SearchFields[i] = joinPath(prefix, field)
		}
	}

	return resolved
}

func joinPath(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return prefix + "." + key
	}
}
