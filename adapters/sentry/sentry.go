// Package sentry reports log events and templated errors to Sentry.
//
// Events are grouped by their raw message template, so every occurrence of
// "Order {id} rejected" lands in one Sentry issue whatever the id. The sink
// only converts events and hands them to a caller-owned *sentry.Hub;
// delivery, sampling and retry are left to the Sentry client.
package sentry

import (
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/selflog"
)

// SkipMarker in a template or rendered message keeps the event away from
// Sentry entirely, including breadcrumbs.
const SkipMarker = "[sentry-skip]"

// Sink captures events at or above a minimum level as Sentry events and
// records lower-level events as breadcrumbs on the hub's scope.
type Sink struct {
	hub *sentry.Hub

	minLevel        core.LogEventLevel
	breadcrumbLevel core.LogEventLevel
	flushTimeout    time.Duration
	fingerprinter   Fingerprinter
	skipMarker      string
}

// NewSink creates a sink writing to hub. Events at Warning and above are
// captured; Debug and Information become breadcrumbs. Events carrying
// SkipMarker are dropped.
func NewSink(hub *sentry.Hub, opts ...Option) *Sink {
	s := &Sink{
		hub:             hub,
		minLevel:        core.WarningLevel,
		breadcrumbLevel: core.DebugLevel,
		flushTimeout:    2 * time.Second,
		fingerprinter:   ByTemplate(),
		skipMarker:      SkipMarker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Emit sends event to Sentry as an event or a breadcrumb.
func (s *Sink) Emit(event *core.LogEvent) {
	if event == nil || s.hub == nil || s.skipped(event) {
		return
	}

	if event.Level < s.minLevel {
		if event.Level >= s.breadcrumbLevel {
			s.hub.AddBreadcrumb(ToBreadcrumb(event), nil)
		}
		return
	}

	sentryEvent := ToEvent(event)
	if s.fingerprinter != nil {
		sentryEvent.Fingerprint = s.fingerprinter(event)
	}

	if id := s.hub.CaptureEvent(sentryEvent); id == nil && selflog.IsEnabled() {
		selflog.Printf("[sentry] event not captured: %s", event.MessageTemplate)
	}
}

func (s *Sink) skipped(event *core.LogEvent) bool {
	if s.skipMarker == "" {
		return false
	}
	return strings.Contains(event.MessageTemplate, s.skipMarker) ||
		strings.Contains(event.RenderedMessage, s.skipMarker)
}

// Close flushes the hub's client. The hub itself stays usable.
func (s *Sink) Close() error {
	if s.hub == nil || s.hub.Client() == nil {
		return nil
	}
	if !s.hub.Flush(s.flushTimeout) && selflog.IsEnabled() {
		selflog.Printf("[sentry] timeout during final flush")
	}
	return nil
}
