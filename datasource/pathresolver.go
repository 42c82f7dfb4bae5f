package datasource

import (
	"strings"

	"gopkg.in/birkirb/loggers.v1/log"
)

// Resolve produces the value of a column for a record. A custom accessor
// always wins; otherwise a non empty pathOverride is traversed instead of
// the column's own path or key. The second return value is false whenever
// no value exists: missing keys, broken nested paths, nil values and
// panicking accessors all resolve to undefined.
func Resolve(record Record, column Column, pathOverride string) (interface{}, bool) {
	if accessor, isAccessor := column.Value.(CustomAccessor); isAccessor {
		return callAccessor(accessor, record, column.Key)
	}

	if pathOverride != "" {
		return ResolvePath(record, pathOverride)
	}

	if path, isPath := column.Value.(NestedPath); isPath {
		return ResolvePath(record, string(path))
	}

	if value, exists := record[column.Key]; exists {
		return value, value != nil
	}

	if strings.Contains(column.Key, ".") {
		return ResolvePath(record, column.Key)
	}

	return nil, false
}

// ResolvePath traverses a dotted path one segment at a time.
func ResolvePath(record Record, path string) (interface{}, bool) {
	var current interface{} = record

	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case Record:
			current = node[segment]
		case map[string]interface{}:
			current = node[segment]
		case map[string]string:
			value, exists := node[segment]
			if !exists {
				return nil, false
			}

			current = value
		default:
			return nil, false
		}

		if current == nil {
			return nil, false
		}
	}

	return current, true
}

func callAccessor(accessor CustomAccessor, record Record, key string) (value interface{}, defined bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.WithFields(
				"column", key,
				"panic", recovered,
			).Warn("Accessor failed - treating value as undefined")

			value, defined = nil, false
		}
	}()

	value = accessor(record)

	return value, value != nil
}
