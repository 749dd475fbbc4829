package capture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/willibrandon/msgtmpl/selflog"
)

const (
	// ISO8601 is the layout used for time.Time values, millisecond precision in UTC.
	ISO8601 = "2006-01-02T15:04:05.000Z"

	// MaxCompositeLength bounds the rendered JSON of composite values.
	MaxCompositeLength = 70

	// Ellipsis is appended to truncated composite text.
	Ellipsis = "..."

	// Unserializable replaces composite values whose JSON encoding fails.
	Unserializable = "[unserializable]"
)

// ToText renders a captured value for display in a message.
func ToText(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case AbsentValue:
		return "undefined"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	}

	rv := reflect.ValueOf(value)
	if isNil(rv) {
		return "null"
	}
	if s, ok := dateText(value); ok {
		return s
	}
	if IsComposite(value) {
		return compositeText(value)
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return ToText(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(value)
}

// compositeText encodes value as JSON and truncates it. Encoding failures,
// including panics from custom marshalers, yield Unserializable.
func compositeText(value any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[render] panic serializing %T: %v", value, r)
			}
			text = Unserializable
		}
	}()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[render] cannot serialize %T: %v", value, err)
		}
		return Unserializable
	}
	return Truncate(strings.TrimSuffix(buf.String(), "\n"), MaxCompositeLength)
}

// Truncate shortens s to max runes, replacing the tail with Ellipsis.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-len(Ellipsis)]) + Ellipsis
}

// formatFloat prints the shortest decimal that round-trips, switching to
// exponent form for very large and very small magnitudes.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, bitSize))
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// trimExponent turns "1e-07" into "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}
