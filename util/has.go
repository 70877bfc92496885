package util

import (
	"reflect"
	"strings"
)

// Has reports whether obj contains values.
//
// The meaning of "contains" depends on the type tag of obj:
//
//   - object (map or struct): values is a key, or a list of keys of which any must be present.
//   - array: values is an element, or a list of which any element must be present.
//     When key is set, elements are objects and their key field is compared instead.
//   - string: values is a substring, or a list of which any substring must be present.
//
// Any other obj returns false.
func Has(obj, values any, key string) bool {
	valueType := Typer(values)

	switch Typer(obj) {
	case TypeObject:
		if s, ok := asString(values); ok {
			return hasKey(obj, s)
		}
		if valueType == TypeArray {
			for _, v := range elements(values) {
				if s, ok := asString(v); ok && hasKey(obj, s) {
					return true
				}
			}
		}
		return false

	case TypeArray:
		items := elements(obj)
		if key != "" {
			for _, item := range items {
				field, ok := lookup(item, key)
				if !ok {
					continue
				}
				if valueType == TypeArray {
					if Has(values, field, "") {
						return true
					}
				} else if reflect.DeepEqual(field, values) {
					return true
				}
			}
			return false
		}
		if valueType == TypeArray {
			for _, v := range elements(values) {
				if includes(items, v) {
					return true
				}
			}
			return false
		}
		return includes(items, values)

	case TypeString:
		s, _ := asString(obj)
		if valueType == TypeArray {
			for _, v := range elements(values) {
				if sub, ok := asString(v); ok && strings.Contains(s, sub) {
					return true
				}
			}
			return false
		}
		if sub, ok := asString(values); ok {
			return strings.Contains(s, sub)
		}
		return false

	default:
		return false
	}
}

func asString(v any) (string, bool) {
	rv := indirect(v)
	if !rv.IsValid() || rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func elements(v any) []any {
	rv := indirect(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func includes(items []any, v any) bool {
	for _, item := range items {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

// hasKey reports whether a map has the key or a struct has a field of that name.
func hasKey(obj any, key string) bool {
	_, ok := lookup(obj, key)
	return ok
}

// lookup reads key from a string-keyed map, or a field from a struct (case-insensitive).
func lookup(obj any, key string) (any, bool) {
	rv := indirect(obj)
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		field, ok := rv.Type().FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, key)
		})
		if !ok || !field.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(field.Index).Interface(), true
	default:
		return nil, false
	}
}

// Contains is the typed form of Has for a slice of comparable values.
func Contains[T comparable](slice []T, val T) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// Coalesce returns the first non-zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
