package grid

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// FormatValue renders a raw column value as display text. Nil values render
// as the empty string and timestamps as dates.
func FormatValue(v any) string {
	v = deref(v)
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// deref follows pointers so accessors may return *string, *float64 and the
// like. A nil pointer becomes an untyped nil.
func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// textOf returns the string form of v and whether v is present. Empty
// strings count as missing.
func textOf(v any) (string, bool) {
	v = deref(v)
	if v == nil {
		return "", false
	}
	s := FormatValue(v)
	return s, s != ""
}

// numberOf coerces v to float64. Values that cannot be coerced count as
// missing.
func numberOf(v any) (float64, bool) {
	v = deref(v)
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// operandList returns the elements of a slice or array operand. Scalars are
// returned as a single element list; nil yields an empty list.
func operandList(v any) []any {
	v = deref(v)
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	default:
		return []any{v}
	}
}

// blank reports whether an operand counts as not entered.
func blank(v any) bool {
	v = deref(v)
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
