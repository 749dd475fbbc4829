package enrichers

import (
	"os"

	"github.com/willibrandon/msgtmpl/core"
)

// EnvironmentTagEnricher copies an environment variable into an event tag.
// The value is read once, when the enricher is created.
type EnvironmentTagEnricher struct {
	tagName string
	value   string
}

// NewEnvironmentTagEnricher reads variableName and tags events with it as tagName.
func NewEnvironmentTagEnricher(variableName, tagName string) *EnvironmentTagEnricher {
	return &EnvironmentTagEnricher{
		tagName: tagName,
		value:   os.Getenv(variableName),
	}
}

// Enrich adds the tag unless the variable was empty or the event already
// carries the tag.
func (e *EnvironmentTagEnricher) Enrich(event *core.LogEvent, _ core.LogEventPropertyFactory) {
	if e.value == "" {
		return
	}
	if _, exists := event.Tags[e.tagName]; exists {
		return
	}
	event.AddTag(e.tagName, e.value)
}
