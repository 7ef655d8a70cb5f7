package table

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
)

// field describes one addressable value of a row type, keyed by its JSON name
type field struct {
	key   string
	index []int
}

var fieldCache sync.Map // map[reflect.Type][]field

// fieldsOf returns the flattened list of exported fields for a struct type.
// Keys follow encoding/json naming: the json tag name when present, the Go name otherwise.
func fieldsOf(t reflect.Type) []field {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]field)
	}

	var fields []field
	var walk func(t reflect.Type, prefix []int)
	walk = func(t reflect.Type, prefix []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			index := append(append([]int{}, prefix...), i)

			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				walk(sf.Type, index)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			name := sf.Name
			if tag, ok := sf.Tag.Lookup("json"); ok {
				tagName := strings.SplitN(tag, ",", 2)[0]
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			fields = append(fields, field{key: name, index: index})
		}
	}
	walk(t, nil)

	fieldCache.Store(t, fields)
	return fields
}

// rowValues returns every field value of a row in declaration order.
// Nil pointers are reported as nil, non-nil pointers are dereferenced.
func rowValues(row any) []any {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		fields := fieldsOf(v.Type())
		values := make([]any, 0, len(fields))
		for _, f := range fields {
			values = append(values, plain(v.FieldByIndex(f.index)))
		}
		return values
	case reflect.Map:
		values := make([]any, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			values = append(values, plain(iter.Value()))
		}
		return values
	default:
		return []any{plain(v)}
	}
}

// fieldValue returns the value stored under key, and false when the row has no such field
func fieldValue(row any, key string) (any, bool) {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		for _, f := range fieldsOf(v.Type()) {
			if f.key == key {
				return plain(v.FieldByIndex(f.index)), true
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if mv.IsValid() {
			return plain(mv), true
		}
	}
	return nil, false
}

func plain(v reflect.Value) any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

// stringValue converts a field value to the string form used for search, cells and CSV
func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// compareValues orders two field values the way a dynamic language's < and > would:
// numbers numerically, strings lexicographically, bools false before true and times
// chronologically. Values of different kinds are compared by their string forms, which
// gives a deterministic but otherwise unspecified order.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isInt(va) && isInt(vb):
		return cmp3(va.Int(), vb.Int())
	case isUint(va) && isUint(vb):
		return cmp3(va.Uint(), vb.Uint())
	case isNumber(va) && isNumber(vb):
		return cmp3(toFloat(va), toFloat(vb))
	case va.Kind() == reflect.String && vb.Kind() == reflect.String:
		return strings.Compare(va.String(), vb.String())
	case va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool:
		return cmp3(boolRank(va.Bool()), boolRank(vb.Bool()))
	}

	return strings.Compare(stringValue(a), stringValue(b))
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func cmp3[N int | int64 | uint64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
