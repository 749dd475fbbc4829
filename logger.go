package msgtmpl

import (
	"context"
	"maps"
	"path/filepath"
	"strings"
	"time"

	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/selflog"
)

// LabelProperty is the property set by ForSourceFile.
const LabelProperty = "label"

// Logger formats templated calls and hands the resulting events to sinks.
// A Logger is immutable; ForContext, WithTags and WithContext return new
// loggers sharing the same sinks.
type Logger struct {
	minimumLevel core.LogEventLevel
	levelSwitch  *LoggingLevelSwitch
	pipeline     *pipeline
	properties   map[string]any
	tags         map[string]string
	ctx          context.Context
	err          error
}

// New creates a logger. Without options it drops everything below
// Information and has no sinks.
func New(opts ...Option) *Logger {
	cfg := &config{
		minimumLevel: core.InformationLevel,
		properties:   make(map[string]any),
		tags:         make(map[string]string),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Logger{
		minimumLevel: cfg.minimumLevel,
		levelSwitch:  cfg.levelSwitch,
		pipeline: &pipeline{
			enrichers: cfg.enrichers,
			filters:   cfg.filters,
			sinks:     cfg.sinks,
		},
		properties: cfg.properties,
		tags:       cfg.tags,
	}
}

// Verbose writes a verbose-level event.
func (l *Logger) Verbose(messageTemplate string, args ...any) {
	l.Write(core.VerboseLevel, messageTemplate, args...)
}

// Debug writes a debug-level event.
func (l *Logger) Debug(messageTemplate string, args ...any) {
	l.Write(core.DebugLevel, messageTemplate, args...)
}

// Info writes an information-level event.
func (l *Logger) Info(messageTemplate string, args ...any) {
	l.Write(core.InformationLevel, messageTemplate, args...)
}

// Warn writes a warning-level event.
func (l *Logger) Warn(messageTemplate string, args ...any) {
	l.Write(core.WarningLevel, messageTemplate, args...)
}

// Error writes an error-level event.
func (l *Logger) Error(messageTemplate string, args ...any) {
	l.Write(core.ErrorLevel, messageTemplate, args...)
}

// Fatal writes a fatal-level event. It does not exit the process.
func (l *Logger) Fatal(messageTemplate string, args ...any) {
	l.Write(core.FatalLevel, messageTemplate, args...)
}

// IsEnabled reports whether events at level reach the pipeline.
func (l *Logger) IsEnabled(level core.LogEventLevel) bool {
	if l.levelSwitch != nil {
		return l.levelSwitch.IsEnabled(level)
	}
	return level >= l.minimumLevel
}

// Write formats messageTemplate with args and emits the event.
//
// Bound properties are added only under names not already set by the
// logger or the context. If the template cannot be processed the event is
// still emitted, with the raw template as its message.
func (l *Logger) Write(level core.LogEventLevel, messageTemplate string, args ...any) {
	if !l.IsEnabled(level) {
		return
	}

	event := &core.LogEvent{
		Timestamp:       time.Now(),
		Level:           level,
		MessageTemplate: messageTemplate,
		RenderedMessage: messageTemplate,
		Properties:      maps.Clone(l.properties),
		Tags:            make(map[string]string, len(l.tags)),
	}

	if ctxValue := fromContext(l.ctx); ctxValue != nil {
		for name, value := range ctxValue.properties {
			if _, exists := event.Properties[name]; !exists {
				event.Properties[name] = value
			}
		}
		maps.Copy(event.Tags, ctxValue.tags)
	}
	maps.Copy(event.Tags, l.tags)

	if res, err := process(messageTemplate, args); err == nil {
		event.RenderedMessage = res.RenderedMessage
		for name, value := range res.BoundProperties {
			if _, exists := event.Properties[name]; !exists {
				event.Properties[name] = value
			}
		}
	} else if selflog.IsEnabled() {
		selflog.Printf("[logger] emitting raw template %q: %v", messageTemplate, err)
	}

	for _, arg := range args {
		if err, ok := arg.(error); ok {
			event.Exception = err
			break
		}
	}
	if event.Exception == nil {
		event.Exception = l.err
	}

	l.pipeline.process(event)
}

// ForContext returns a logger that adds name=value to every event.
func (l *Logger) ForContext(name string, value any) *Logger {
	child := l.clone()
	child.properties[name] = value
	return child
}

// ForSourceFile returns a logger labelling events with the last two
// elements of path, e.g. "orders/service.go".
func (l *Logger) ForSourceFile(path string) *Logger {
	return l.ForContext(LabelProperty, sourceLabel(path))
}

// WithTags returns a logger that adds tags to every event. These tags win
// over tags pushed onto the context.
func (l *Logger) WithTags(tags map[string]string) *Logger {
	child := l.clone()
	maps.Copy(child.tags, tags)
	return child
}

// WithError returns a logger attaching err to every event as its
// exception, unless an error is passed as a template argument.
func (l *Logger) WithError(err error) *Logger {
	child := l.clone()
	child.err = err
	return child
}

// WithContext returns a logger that adds the properties and tags pushed
// onto ctx with PushProperty and PushTags.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	child := l.clone()
	child.ctx = ctx
	return child
}

// Close closes the logger's sinks. Loggers derived from it share those
// sinks and must not be used afterwards.
func (l *Logger) Close() error {
	return l.pipeline.close()
}

func (l *Logger) clone() *Logger {
	return &Logger{
		minimumLevel: l.minimumLevel,
		levelSwitch:  l.levelSwitch,
		pipeline:     l.pipeline,
		properties:   maps.Clone(l.properties),
		tags:         maps.Clone(l.tags),
		ctx:          l.ctx,
		err:          l.err,
	}
}

func sourceLabel(path string) string {
	path = filepath.ToSlash(path)
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return path
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
