package sinks

import (
	"slices"

	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/internal/capture"
	"github.com/willibrandon/msgtmpl/selflog"
)

// DefaultTimestampFormat is the layout used by text output when none is set.
const DefaultTimestampFormat = "2006-01-02 15:04:05.000"

// formatBuffer is a reusable buffer for formatting without allocations.
type formatBuffer struct {
	buf [256]byte
}

// formatText formats an event as a single text line:
//
//	[label][YYYY-MM-DD HH:MM:SS.mmm][LVL] message - error {k=v}
func (fb *formatBuffer) formatText(event *core.LogEvent, layout string, showProperties bool) []byte {
	b := fb.buf[:0]

	if label, ok := event.Properties["label"].(string); ok && label != "" {
		b = append(b, '[')
		b = append(b, label...)
		b = append(b, ']')
	}

	b = append(b, '[')
	b = event.Timestamp.AppendFormat(b, layout)
	b = append(b, ']', '[')
	b = append(b, event.Level.ShortName()...)
	b = append(b, ']', ' ')
	b = append(b, event.RenderedMessage...)

	if event.Exception != nil {
		b = append(b, " - "...)
		b = append(b, event.Exception.Error()...)
	}

	if showProperties && len(event.Properties) > 0 {
		b = appendProperties(b, event.Properties)
	}

	b = append(b, '\n')
	return b
}

func appendProperties(b []byte, props map[string]any) []byte {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)

	b = append(b, ' ', '{')
	for i, name := range names {
		if i > 0 {
			b = append(b, ',', ' ')
		}
		b = append(b, name...)
		b = append(b, '=')
		b = append(b, propertyText(name, props[name])...)
	}
	return append(b, '}')
}

// propertyText renders a property value, substituting capture.Unserializable
// when the value's own formatting panics.
func propertyText(name string, value any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[console] panic rendering property %q (%T): %v", name, value, r)
			}
			text = capture.Unserializable
		}
	}()
	return capture.ToText(value)
}

func timestampLayout(layout string) string {
	if layout == "" {
		return DefaultTimestampFormat
	}
	return layout
}
