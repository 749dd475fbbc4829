package sentry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/getsentry/sentry-go"

	"github.com/willibrandon/msgtmpl"
	"github.com/willibrandon/msgtmpl/core"
)

// TemplateTag is the Sentry tag holding the raw message template.
const TemplateTag = "message.template"

const maxErrorDepth = 10

// ToEvent converts a log event to a Sentry event. The message is the
// rendered text, the fingerprint is the raw template and the properties
// are attached as extra data.
func ToEvent(event *core.LogEvent) *sentry.Event {
	sentryEvent := sentry.NewEvent()
	sentryEvent.Message = event.RenderedMessage
	sentryEvent.Level = levelToSentryLevel(event.Level)
	sentryEvent.Timestamp = event.Timestamp
	sentryEvent.Fingerprint = []string{event.MessageTemplate}

	if id := strings.ReplaceAll(event.ID, "-", ""); len(id) == 32 {
		sentryEvent.EventID = sentry.EventID(id)
	}

	maps.Copy(sentryEvent.Tags, event.Tags)
	sentryEvent.Tags[TemplateTag] = event.MessageTemplate

	for name, value := range event.Properties {
		if user, ok := value.(sentry.User); ok {
			sentryEvent.User = user
			continue
		}
		sentryEvent.Extra[name] = value
	}

	if event.Exception != nil {
		sentryEvent.Exception = ExceptionFromError(event.Exception)
	}
	return sentryEvent
}

// ToBreadcrumb converts a log event to a breadcrumb carrying the rendered
// message and the event's properties.
func ToBreadcrumb(event *core.LogEvent) *sentry.Breadcrumb {
	breadcrumb := &sentry.Breadcrumb{
		Type:      "default",
		Category:  levelToCategory(event.Level),
		Message:   event.RenderedMessage,
		Level:     levelToSentryLevel(event.Level),
		Timestamp: event.Timestamp,
	}
	if len(event.Properties) > 0 {
		breadcrumb.Data = maps.Clone(event.Properties)
	}
	return breadcrumb
}

// ExceptionFromError converts err and the errors it wraps to Sentry
// exceptions, innermost first as Sentry expects.
//
// A *msgtmpl.TemplatedError reports its raw template as the exception
// type, so errors built from the same template group together.
func ExceptionFromError(err error) []sentry.Exception {
	var chain []sentry.Exception
	for i := 0; err != nil && i < maxErrorDepth; i++ {
		exception := sentry.Exception{
			Type:       errorType(err),
			Value:      err.Error(),
			Stacktrace: sentry.ExtractStacktrace(err),
		}
		chain = append(chain, exception)
		err = errors.Unwrap(err)
	}
	slices.Reverse(chain)
	return chain
}

func errorType(err error) string {
	if te, ok := err.(*msgtmpl.TemplatedError); ok {
		return te.MessageTemplate()
	}
	return fmt.Sprintf("%T", err)
}

func levelToSentryLevel(level core.LogEventLevel) sentry.Level {
	switch level {
	case core.VerboseLevel, core.DebugLevel:
		return sentry.LevelDebug
	case core.InformationLevel:
		return sentry.LevelInfo
	case core.WarningLevel:
		return sentry.LevelWarning
	case core.ErrorLevel:
		return sentry.LevelError
	case core.FatalLevel:
		return sentry.LevelFatal
	default:
		return sentry.LevelInfo
	}
}

func levelToCategory(level core.LogEventLevel) string {
	switch level {
	case core.VerboseLevel, core.DebugLevel:
		return "debug"
	case core.InformationLevel:
		return "info"
	case core.WarningLevel:
		return "warning"
	case core.ErrorLevel:
		return "error"
	case core.FatalLevel:
		return "fatal"
	default:
		return "log"
	}
}
