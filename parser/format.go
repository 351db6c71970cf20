package parser

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Format renders v in its canonical text form.
//
// Numbers and booleans use strconv, floats with the shortest representation that
// parses back to the same value. Nil pointers render as Null and other pointers
// render their target. A []string is joined with ", ", which Split(",") parses
// back to the same elements.
func Format(v any) string {
	switch v := v.(type) {
	case nil:
		return Null
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Null
		}
		if s, ok := v.(fmt.Stringer); ok && !isValueStringer(rv.Type().Elem()) {
			return s.String()
		}
		return Format(rv.Elem().Interface())
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

// isValueStringer reports whether String is declared on t itself rather than only on *t.
func isValueStringer(t reflect.Type) bool {
	return t.Implements(stringerType)
}
