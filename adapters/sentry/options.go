package sentry

import (
	"fmt"
	"time"

	"github.com/willibrandon/msgtmpl/core"
)

// Option configures the Sentry sink.
type Option func(*Sink)

// Fingerprinter computes the grouping fingerprint of an event.
type Fingerprinter func(*core.LogEvent) []string

// WithMinLevel sets the minimum level for events to be captured.
// Events below it may still be recorded as breadcrumbs.
func WithMinLevel(level core.LogEventLevel) Option {
	return func(s *Sink) {
		s.minLevel = level
	}
}

// WithBreadcrumbLevel sets the minimum level for breadcrumbs.
func WithBreadcrumbLevel(level core.LogEventLevel) Option {
	return func(s *Sink) {
		s.breadcrumbLevel = level
	}
}

// WithFlushTimeout bounds how long Close waits for the client to flush.
func WithFlushTimeout(timeout time.Duration) Option {
	return func(s *Sink) {
		s.flushTimeout = timeout
	}
}

// WithSkipMarker replaces SkipMarker. An empty marker sends every event.
func WithSkipMarker(marker string) Option {
	return func(s *Sink) {
		s.skipMarker = marker
	}
}

// WithFingerprinter replaces the default ByTemplate grouping.
func WithFingerprinter(f Fingerprinter) Option {
	return func(s *Sink) {
		s.fingerprinter = f
	}
}

// ByTemplate groups events by message template only.
func ByTemplate() Fingerprinter {
	return func(event *core.LogEvent) []string {
		return []string{event.MessageTemplate}
	}
}

// ByErrorType groups by template and the dynamic type of the event's error.
func ByErrorType() Fingerprinter {
	return func(event *core.LogEvent) []string {
		fp := []string{event.MessageTemplate}
		if event.Exception != nil {
			fp = append(fp, fmt.Sprintf("%T", event.Exception))
		}
		return fp
	}
}

// ByProperty groups by template and the value of one property, e.g. a
// tenant id.
func ByProperty(propertyName string) Fingerprinter {
	return func(event *core.LogEvent) []string {
		fp := []string{event.MessageTemplate}
		if val, ok := event.Properties[propertyName]; ok {
			fp = append(fp, fmt.Sprint(val))
		}
		return fp
	}
}
