// Package enrichers provides log event enrichers for msgtmpl loggers.
package enrichers

import (
	"github.com/google/uuid"

	"github.com/willibrandon/msgtmpl/core"
)

// EventIDEnricher assigns a random UUID to every event that has no ID yet.
// Reporters use it to correlate a console line with the event they received.
type EventIDEnricher struct {
	newID func() string
}

// NewEventIDEnricher creates an enricher generating version 4 UUIDs.
func NewEventIDEnricher() *EventIDEnricher {
	return &EventIDEnricher{newID: uuid.NewString}
}

// Enrich sets event.ID and the EventId property.
func (e *EventIDEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	if event.ID == "" {
		event.ID = e.newID()
	}
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty("EventId", event.ID))
}
