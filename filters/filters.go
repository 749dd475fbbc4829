// Package filters provides predicates that decide whether an event reaches
// the sinks.
package filters

import (
	"reflect"

	"github.com/willibrandon/msgtmpl/core"
)

// ByLevel passes events at or above minimumLevel.
func ByLevel(minimumLevel core.LogEventLevel) core.LogEventFilter {
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		return event.Level >= minimumLevel
	})
}

// ByTemplate passes events whose raw message template is one of templates.
// Matching on the template groups every occurrence of a message whatever
// its argument values.
func ByTemplate(templates ...string) core.LogEventFilter {
	set := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		set[t] = struct{}{}
	}
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		_, ok := set[event.MessageTemplate]
		return ok
	})
}

// ByTag passes events carrying tag name with the given value.
func ByTag(name, value string) core.LogEventFilter {
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		v, ok := event.Tags[name]
		return ok && v == value
	})
}

// ByProperty passes events whose property name equals value. Slices, maps
// and other uncomparable values are compared element by element.
func ByProperty(name string, value any) core.LogEventFilter {
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		v, ok := event.Properties[name]
		return ok && reflect.DeepEqual(v, value)
	})
}

// ByExcluding drops events matching predicate.
func ByExcluding(predicate func(*core.LogEvent) bool) core.LogEventFilter {
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		return !predicate(event)
	})
}

// All passes events accepted by every filter.
func All(filters ...core.LogEventFilter) core.LogEventFilter {
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		for _, f := range filters {
			if !f.IsEnabled(event) {
				return false
			}
		}
		return true
	})
}

// Any passes events accepted by at least one filter.
func Any(filters ...core.LogEventFilter) core.LogEventFilter {
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		for _, f := range filters {
			if f.IsEnabled(event) {
				return true
			}
		}
		return false
	})
}

// Not inverts filter.
func Not(filter core.LogEventFilter) core.LogEventFilter {
	return core.LogEventFilterFunc(func(event *core.LogEvent) bool {
		return !filter.IsEnabled(event)
	})
}
