// Package sinks provides destinations for log events.
package sinks

import (
	"maps"
	"slices"
	"sync"

	"github.com/willibrandon/msgtmpl/core"
)

// MemorySink records events for inspection, mostly in tests. Stored events
// are detached copies: later changes to an emitted event's properties or
// tags do not reach them.
type MemorySink struct {
	mu     sync.RWMutex
	events []core.LogEvent
}

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit records a copy of event.
func (m *MemorySink) Emit(event *core.LogEvent) {
	stored := *event
	stored.Properties = maps.Clone(event.Properties)
	stored.Tags = maps.Clone(event.Tags)

	m.mu.Lock()
	m.events = append(m.events, stored)
	m.mu.Unlock()
}

// Close is a no-op.
func (m *MemorySink) Close() error { return nil }

// Events returns the recorded events in emission order.
func (m *MemorySink) Events() []core.LogEvent {
	return m.Where(func(*core.LogEvent) bool { return true })
}

// Count returns the number of recorded events.
func (m *MemorySink) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// Clear forgets every recorded event.
func (m *MemorySink) Clear() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}

// LastEvent returns a copy of the most recent event, or nil.
func (m *MemorySink) LastEvent() *core.LogEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.events) == 0 {
		return nil
	}
	last := m.events[len(m.events)-1]
	return &last
}

// Where returns the recorded events for which match reports true.
func (m *MemorySink) Where(match func(*core.LogEvent) bool) []core.LogEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.LogEvent, 0, len(m.events))
	for i := range m.events {
		if match(&m.events[i]) {
			out = append(out, m.events[i])
		}
	}
	return out
}

// WithTemplate returns every occurrence of the raw message template.
func (m *MemorySink) WithTemplate(template string) []core.LogEvent {
	return m.Where(func(e *core.LogEvent) bool { return e.MessageTemplate == template })
}

// WithTag returns the events tagged name=value.
func (m *MemorySink) WithTag(name, value string) []core.LogEvent {
	return m.Where(func(e *core.LogEvent) bool {
		v, ok := e.Tags[name]
		return ok && v == value
	})
}

// Messages returns the rendered messages in emission order.
func (m *MemorySink) Messages() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.events))
	for i := range m.events {
		out[i] = m.events[i].RenderedMessage
	}
	return out
}

// Find returns the event with the given ID. Events only carry an ID when
// an id enricher is configured.
func (m *MemorySink) Find(id string) (core.LogEvent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.events, func(e core.LogEvent) bool { return e.ID == id && id != "" })
	if i < 0 {
		return core.LogEvent{}, false
	}
	return m.events[i], true
}
