// Package logr lets code written against github.com/go-logr/logr log
// through a msgtmpl logger.
//
// logr messages are constant strings, so they become the event's message
// template unchanged, and key/value pairs become properties. V-levels map
// to levels as V(0) → Information, V(1) → Debug, V(2+) → Verbose.
//
//	logger := logr.New(msgtmplr.NewLogSink(msgtmpl.New(msgtmpl.WithConsole(os.Stdout))))
//	logger.Info("reconciling", "namespace", "default")
package logr

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/willibrandon/msgtmpl"
	"github.com/willibrandon/msgtmpl/core"
)

// NameProperty holds the dotted logger name built with WithName.
const NameProperty = "logger"

// LogSink implements logr.LogSink on top of a *msgtmpl.Logger.
type LogSink struct {
	logger *msgtmpl.Logger
	name   string
}

var _ logr.LogSink = (*LogSink)(nil)

// NewLogger returns a logr.Logger writing to logger.
func NewLogger(logger *msgtmpl.Logger) logr.Logger {
	return logr.New(NewLogSink(logger))
}

// NewLogSink creates a sink writing to logger.
func NewLogSink(logger *msgtmpl.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Init is a no-op; call depth is not tracked.
func (s *LogSink) Init(logr.RuntimeInfo) {}

// Enabled reports whether the V-level maps to an enabled level.
func (s *LogSink) Enabled(level int) bool {
	return s.logger.IsEnabled(levelFromV(level))
}

// Info logs msg with the given key/value pairs.
func (s *LogSink) Info(level int, msg string, keysAndValues ...any) {
	withValues(s.logger, keysAndValues).Write(levelFromV(level), msg)
}

// Error logs msg at error level with err as the event's exception.
func (s *LogSink) Error(err error, msg string, keysAndValues ...any) {
	logger := withValues(s.logger, keysAndValues)
	if err != nil {
		logger = logger.ForContext("error", err.Error()).WithError(err)
	}
	logger.Error(msg)
}

// WithValues returns a sink adding the key/value pairs to every event.
func (s *LogSink) WithValues(keysAndValues ...any) logr.LogSink {
	return &LogSink{
		logger: withValues(s.logger, keysAndValues),
		name:   s.name,
	}
}

// WithName returns a sink whose events carry the dotted name in the
// "logger" property.
func (s *LogSink) WithName(name string) logr.LogSink {
	if s.name != "" {
		name = s.name + "." + name
	}
	return &LogSink{
		logger: s.logger.ForContext(NameProperty, name),
		name:   name,
	}
}

func withValues(logger *msgtmpl.Logger, keysAndValues []any) *msgtmpl.Logger {
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 >= len(keysAndValues) {
			logger = logger.ForContext(key, nil)
			break
		}
		logger = logger.ForContext(key, keysAndValues[i+1])
	}
	return logger
}

func levelFromV(v int) core.LogEventLevel {
	switch {
	case v <= 0:
		return core.InformationLevel
	case v == 1:
		return core.DebugLevel
	default:
		return core.VerboseLevel
	}
}
