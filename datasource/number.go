package datasource

import (
	"encoding/json"
	"math"
	"reflect"
)

// NumericValue converts numbers of any Go kind and json.Number to float64.
// Strings are not numbers here, and neither is NaN.
func NumericValue(value interface{}) (float64, bool) {
	var number float64

	switch typed := value.(type) {
	case nil:
		return 0, false
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}

		number = parsed
	default:
		reflected := reflect.ValueOf(value)

		switch reflected.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(reflected.Int()), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(reflected.Uint()), true
		case reflect.Float32, reflect.Float64:
			number = reflected.Float()
		default:
			return 0, false
		}
	}

	return number, !math.IsNaN(number)
}

// IsNaN reports whether the value is a floating point NaN.
func IsNaN(value interface{}) bool {
	switch typed := value.(type) {
	case float64:
		return math.IsNaN(typed)
	case float32:
		return math.IsNaN(float64(typed))
	case json.Number:
		parsed, err := typed.Float64()
		return err == nil && math.IsNaN(parsed)
	default:
		return false
	}
}
