package parser

import (
	"strconv"
	"strings"

	"github.com/willibrandon/msgtmpl/internal/capture"
)

// AbsentValue is the type of Absent.
type AbsentValue = capture.AbsentValue

// Absent marks an argument as not supplied. Bound to a placeholder it
// renders as "undefined"; past the last placeholder it is dropped instead of
// producing a synthetic property. Pass nil for an explicit null.
var Absent = capture.Absent

// MessageTemplate is a parsed message template. It is immutable and safe
// for concurrent use.
type MessageTemplate struct {
	// Raw is the original template string.
	Raw string

	// Tokens are the parsed tokens in template order.
	Tokens []MessageTemplateToken
}

// Bind assigns args to placeholders positionally and returns the bound
// properties. Only property tokens consume arguments. Arguments left over
// once placeholders run out are named a0, a1, ... after their index in args.
//
// A placeholder repeated in the template consumes one argument per
// occurrence; the last one wins.
func (mt *MessageTemplate) Bind(args []any) map[string]any {
	properties := make(map[string]any, len(args))
	next := 0

	for _, token := range mt.Tokens {
		if next >= len(args) {
			break
		}
		prop, ok := token.(*PropertyToken)
		if !ok {
			continue
		}
		properties[prop.PropertyName] = capture.Capture(args[next], prop.Destructure)
		next++
	}

	for ; next < len(args); next++ {
		if _, absent := args[next].(AbsentValue); absent {
			continue
		}
		properties[PositionalName(next)] = capture.Capture(args[next], false)
	}

	return properties
}

// Render substitutes bound properties into the template. Placeholders
// without a bound value are emitted as written.
func (mt *MessageTemplate) Render(properties map[string]any) string {
	if len(mt.Tokens) == 0 {
		return mt.Raw
	}

	var sb strings.Builder
	sb.Grow(len(mt.Raw))
	for _, token := range mt.Tokens {
		sb.WriteString(token.Render(properties))
	}
	return sb.String()
}

// PropertyNames returns the distinct placeholder names in order of first
// appearance.
func (mt *MessageTemplate) PropertyNames() []string {
	names := make([]string, 0, len(mt.Tokens)/2)
	seen := make(map[string]bool)
	for _, token := range mt.Tokens {
		if prop, ok := token.(*PropertyToken); ok && !seen[prop.PropertyName] {
			seen[prop.PropertyName] = true
			names = append(names, prop.PropertyName)
		}
	}
	return names
}

// PositionalName returns the synthetic property name for the argument at index.
func PositionalName(index int) string {
	return "a" + strconv.Itoa(index)
}
