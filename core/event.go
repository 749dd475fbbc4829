package core

import "time"

// LogEvent represents a single log event produced by a templated call site.
type LogEvent struct {
	// ID uniquely identifies the event when an id enricher is configured.
	ID string

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Level is the severity of the event.
	Level LogEventLevel

	// MessageTemplate is the raw, unrendered template. Reporters use it as the
	// fingerprint for grouping occurrences of the same message.
	MessageTemplate string

	// RenderedMessage is the template with bound values substituted.
	RenderedMessage string

	// Properties contains bound template properties plus contextual ones.
	Properties map[string]any

	// Tags carries string metadata propagated from the logger or context.
	Tags map[string]string

	// Exception associated with the event, if any.
	Exception error
}

// AddPropertyIfAbsent adds a property to the event if it doesn't already exist.
func (e *LogEvent) AddPropertyIfAbsent(property *LogEventProperty) {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	if _, exists := e.Properties[property.Name]; !exists {
		e.Properties[property.Name] = property.Value
	}
}

// AddProperty adds or overwrites a property in the event.
func (e *LogEvent) AddProperty(name string, value any) {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[name] = value
}

// AddTag adds or overwrites a tag in the event.
func (e *LogEvent) AddTag(name, value string) {
	if e.Tags == nil {
		e.Tags = make(map[string]string)
	}
	e.Tags[name] = value
}
