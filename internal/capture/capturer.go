// Package capture implements how call-site arguments are stored in bound
// properties and how stored values are turned back into message text.
package capture

import (
	"fmt"
	"reflect"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/willibrandon/msgtmpl/core"
)

// AbsentValue is the type of Absent.
type AbsentValue struct{}

// String returns "undefined".
func (AbsentValue) String() string { return "undefined" }

// Absent stands for an argument that was not supplied. It renders as
// "undefined" and is skipped when naming overflow arguments.
var Absent = AbsentValue{}

// Capture converts a raw argument into the value stored in bound properties.
//
// Functions become their name, nil stays nil, primitives are kept. Composite
// values are kept by reference when destructure is set or when they are
// date-like; otherwise they are replaced by their default string form.
func Capture(value any, destructure bool) any {
	if value == nil {
		return nil
	}
	if _, ok := value.(AbsentValue); ok {
		return value
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Func {
		if rv.IsNil() {
			return nil
		}
		return funcName(rv)
	}
	if isNil(rv) {
		return nil
	}

	if b, ok := value.([]byte); ok {
		if s, ok := printableString(b); ok {
			return s
		}
	}

	if !IsComposite(value) {
		if rv.Kind() == reflect.Pointer && !IsDateLike(value) {
			return Capture(rv.Elem().Interface(), destructure)
		}
		return value
	}
	if destructure || IsDateLike(value) {
		return value
	}
	return fmt.Sprint(value)
}

// IsComposite reports whether value is an object-like value: a struct, map,
// slice, array, a pointer to one of those, or a core.Structured
// implementation. Pointers to scalars are not composite.
func IsComposite(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.(core.Structured); ok {
		return true
	}
	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// IsDateLike reports whether value has an ISO-8601 display form.
func IsDateLike(value any) bool {
	_, ok := dateText(value)
	return ok
}

// dateText returns the display text of date-like values. Formattable wins
// over time.Time so wrappers can choose their own layout.
func dateText(value any) (string, bool) {
	switch v := value.(type) {
	case core.Formattable:
		return v.DisplayText(), true
	case time.Time:
		return v.UTC().Format(ISO8601), true
	case *time.Time:
		if v == nil {
			return "", false
		}
		return v.UTC().Format(ISO8601), true
	}
	return "", false
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func funcName(rv reflect.Value) string {
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return fn.Name()
	}
	return rv.Type().String()
}

// printableString returns b as a string when it is non-empty UTF-8 text
// without control characters other than common whitespace.
func printableString(b []byte) (string, bool) {
	if len(b) == 0 || !utf8.Valid(b) {
		return "", false
	}
	for _, c := range b {
		if c < 32 && c != '\n' && c != '\r' && c != '\t' {
			return "", false
		}
	}
	return string(b), true
}
