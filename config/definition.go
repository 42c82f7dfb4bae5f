package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const dotJSON = ".json"

// InvalidSchemaError indicates that a schema file is well formed json, but
// does not describe a table schema.
type InvalidSchemaError struct {
	file     string
	problems []string
}

func (e InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid table schema %s: %s", e.file, strings.Join(e.problems, "; "))
}

// Problems lists the individual violations found in the schema file.
func (e InvalidSchemaError) Problems() []string {
	return e.problems
}

const tableSchemaDefinition = `{
  "type": "object",
  "required": ["entity", "columns"],
  "properties": {
    "entity": {"type": "string", "minLength": 1},
    "extensions": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["table"],
        "properties": {
          "title": {"type": ["string", "null"]},
          "table": {"type": "string", "minLength": 1},
          "key": {"type": ["string", "null"]}
        }
      }
    },
    "exclusions": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "columns": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key", "type"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "type": {"type": "string"},
          "path": {"type": "string"},
          "sortable": {"type": "boolean"},
          "searchable": {"type": "boolean"},
          "sortField": {"type": "string"},
          "searchFields": {"type": ["array", "null"], "items": {"type": "string"}},
          "enum": {"type": "string"},
          "frontendHints": {"type": ["object", "null"]}
        }
      }
    }
  }
}`

var tableSchemaLoader = gojsonschema.NewStringLoader(tableSchemaDefinition)

func validateSchemaDocument(file string, document interface{}) error {
	result, err := gojsonschema.Validate(tableSchemaLoader, gojsonschema.NewGoLoader(document))
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, len(result.Errors()))
	for i, resultError := range result.Errors() {
		problems[i] = resultError.String()
	}

	return &InvalidSchemaError{file: file, problems: problems}
}
