// Package msgtmpl renders serilog-style message templates and exposes the
// values bound to their placeholders.
//
// Templates mix literal text with {Name} and {@Name} placeholders. Arguments
// bind to placeholders by position:
//
//	res, err := msgtmpl.Process("No data found for id {id}", "abc123")
//	// res.RenderedMessage == "No data found for id abc123"
//	// res.RawTemplate     == "No data found for id {id}"
//	// res.BoundProperties == map[string]any{"id": "abc123"}
//
// A plain {Name} stores composite arguments as their string form; {@Name}
// keeps the value itself for structured consumers and renders it as JSON,
// truncated to 70 characters. Arguments beyond the last placeholder are
// bound as a0, a1, ... after their position.
//
// The same engine backs NewError, which builds errors whose message is the
// rendered template, and Logger, which hands rendered events to sinks.
package msgtmpl

import (
	"errors"
	"fmt"

	"github.com/willibrandon/msgtmpl/parser"
	"github.com/willibrandon/msgtmpl/selflog"
)

// ErrFormatting is returned by Process when binding or rendering panics.
var ErrFormatting = errors.New("message formatting failed")

// Absent marks an argument as not supplied. See parser.Absent.
var Absent = parser.Absent

// Result holds everything produced for one templated call.
type Result struct {
	// RenderedMessage is the template with bound values substituted.
	RenderedMessage string

	// RawTemplate is the template as written; use it as a grouping key.
	RawTemplate string

	// BoundProperties maps placeholder names to captured values.
	BoundProperties map[string]any
}

// Process parses template, binds args and renders the message.
// It returns parser.ErrInvalidTemplate for an empty template and an error
// wrapping ErrFormatting if a value's String or DisplayText method panics.
func Process(template string, args ...any) (*Result, error) {
	return process(template, args)
}

func process(template string, args []any) (*Result, error) {
	tmpl, err := parser.ParseCached(template)
	if err != nil {
		return nil, err
	}
	return processTemplate(tmpl, args)
}

func processTemplate(tmpl *parser.MessageTemplate, args []any) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[format] panic processing %q: %v", tmpl.Raw, r)
			}
			res, err = nil, fmt.Errorf("%w: %v", ErrFormatting, r)
		}
	}()

	props := tmpl.Bind(args)
	return &Result{
		RenderedMessage: tmpl.Render(props),
		RawTemplate:     tmpl.Raw,
		BoundProperties: props,
	}, nil
}

// Format renders template with args. It never fails: when the template is
// empty or formatting panics it returns template unchanged.
func Format(template string, args ...any) string {
	res, err := Process(template, args...)
	if err != nil {
		return template
	}
	return res.RenderedMessage
}
