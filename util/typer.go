package util

import (
	"reflect"
	"regexp"
	"time"
)

// Type tags returned by Typer.
const (
	TypeNull     = "null"
	TypeString   = "string"
	TypeNumber   = "number"
	TypeBoolean  = "boolean"
	TypeArray    = "array"
	TypeObject   = "object"
	TypeFunction = "function"
	TypeDate     = "date"
	TypeRegexp   = "regexp"
	TypeError    = "error"
)

// Typer returns the lowercase type tag of a value.
//
//	util.Typer(nil)              // "null"
//	util.Typer([]int{1})         // "array"
//	util.Typer(map[string]any{}) // "object"
//
// Pointers and interfaces are followed; a nil pointer is "null".
// Kinds without a dedicated tag (chan, unsafe pointer) return reflect's kind name.
func Typer(v any) string {
	if v == nil {
		return TypeNull
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return TypeNull
	}
	switch v.(type) {
	case time.Time, *time.Time:
		return TypeDate
	case *regexp.Regexp:
		return TypeRegexp
	case error:
		return TypeError
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return TypeNull
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return TypeNumber
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Map, reflect.Struct:
		return TypeObject
	case reflect.Func:
		return TypeFunction
	default:
		return rv.Kind().String()
	}
}

// indirect follows pointers and interfaces down to a concrete value.
func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
