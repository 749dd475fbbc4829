package msgtmpl

import (
	"io"
	"maps"

	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/sinks"
)

// config holds the configuration for building a logger.
type config struct {
	minimumLevel core.LogEventLevel
	levelSwitch  *LoggingLevelSwitch
	enrichers    []core.LogEventEnricher
	filters      []core.LogEventFilter
	sinks        []core.LogEventSink
	properties   map[string]any
	tags         map[string]string
}

// Option is a functional option for configuring a logger.
type Option func(*config)

// WithMinimumLevel sets the minimum level; events below it are dropped
// before any formatting happens.
func WithMinimumLevel(level core.LogEventLevel) Option {
	return func(c *config) {
		c.minimumLevel = level
	}
}

// WithLevelSwitch makes the logger read its minimum level from ls,
// overriding WithMinimumLevel.
func WithLevelSwitch(ls *LoggingLevelSwitch) Option {
	return func(c *config) {
		c.levelSwitch = ls
	}
}

// WithEnricher adds an enricher to the pipeline.
func WithEnricher(enricher core.LogEventEnricher) Option {
	return func(c *config) {
		c.enrichers = append(c.enrichers, enricher)
	}
}

// WithFilter adds a filter to the pipeline.
func WithFilter(filter core.LogEventFilter) Option {
	return func(c *config) {
		c.filters = append(c.filters, filter)
	}
}

// WithSink adds a sink to the pipeline.
func WithSink(sink core.LogEventSink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, sink)
	}
}

// WithConsole adds a text console sink writing to w.
func WithConsole(w io.Writer) Option {
	return WithSink(sinks.NewConsoleSink(w, sinks.ConsoleOptions{}))
}

// WithProperty adds a property to every event. Template arguments never
// overwrite it.
func WithProperty(name string, value any) Option {
	return func(c *config) {
		c.properties[name] = value
	}
}

// WithProperties adds several properties to every event.
func WithProperties(properties map[string]any) Option {
	return func(c *config) {
		maps.Copy(c.properties, properties)
	}
}

// WithTag adds a default tag to every event.
func WithTag(name, value string) Option {
	return func(c *config) {
		c.tags[name] = value
	}
}

// WithTags adds default tags to every event.
func WithTags(tags map[string]string) Option {
	return func(c *config) {
		maps.Copy(c.tags, tags)
	}
}
