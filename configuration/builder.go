package configuration

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/willibrandon/msgtmpl"
	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/enrichers"
	"github.com/willibrandon/msgtmpl/filters"
	"github.com/willibrandon/msgtmpl/parser"
	"github.com/willibrandon/msgtmpl/sinks"
)

// LoggerBuilder builds a logger from configuration.
type LoggerBuilder struct {
	sinkFactories     map[string]SinkFactory
	enricherFactories map[string]EnricherFactory
	filterFactories   map[string]FilterFactory
}

// SinkFactory creates a sink from configuration.
type SinkFactory func(args map[string]any) (core.LogEventSink, error)

// EnricherFactory creates an enricher from configuration.
type EnricherFactory func(args map[string]any) (core.LogEventEnricher, error)

// FilterFactory creates a filter from configuration.
type FilterFactory func(args map[string]any) (core.LogEventFilter, error)

// NewLoggerBuilder creates a new logger builder with default factories.
func NewLoggerBuilder() *LoggerBuilder {
	lb := &LoggerBuilder{
		sinkFactories:     make(map[string]SinkFactory),
		enricherFactories: make(map[string]EnricherFactory),
		filterFactories:   make(map[string]FilterFactory),
	}

	lb.RegisterSink("Console", createConsoleSink)
	lb.RegisterSink("Memory", func(map[string]any) (core.LogEventSink, error) {
		return sinks.NewMemorySink(), nil
	})

	lb.RegisterEnricher("WithEventId", func(map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewEventIDEnricher(), nil
	})
	lb.RegisterEnricher("WithMachineName", func(map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewMachineNameEnricher(), nil
	})
	lb.RegisterEnricher("WithEnvironmentTag", func(args map[string]any) (core.LogEventEnricher, error) {
		variable := GetString(args, "variable", "")
		if variable == "" {
			return nil, fmt.Errorf("WithEnvironmentTag requires a variable argument")
		}
		return enrichers.NewEnvironmentTagEnricher(variable, GetString(args, "tag", "environment")), nil
	})

	lb.RegisterFilter("ByLevel", func(args map[string]any) (core.LogEventFilter, error) {
		level, err := ParseLevel(GetString(args, "minimumLevel", "Information"))
		if err != nil {
			return nil, err
		}
		return filters.ByLevel(level), nil
	})
	lb.RegisterFilter("ByTag", func(args map[string]any) (core.LogEventFilter, error) {
		return filters.ByTag(GetString(args, "name", ""), GetString(args, "value", "")), nil
	})
	lb.RegisterFilter("ExcludeTemplate", func(args map[string]any) (core.LogEventFilter, error) {
		substr := GetString(args, "contains", "")
		if substr == "" {
			return nil, fmt.Errorf("ExcludeTemplate requires a contains argument")
		}
		return filters.ByExcluding(func(e *core.LogEvent) bool {
			return strings.Contains(e.MessageTemplate, substr)
		}), nil
	})

	return lb
}

// RegisterSink registers a sink factory.
func (lb *LoggerBuilder) RegisterSink(name string, factory SinkFactory) {
	lb.sinkFactories[name] = factory
}

// RegisterEnricher registers an enricher factory.
func (lb *LoggerBuilder) RegisterEnricher(name string, factory EnricherFactory) {
	lb.enricherFactories[name] = factory
}

// RegisterFilter registers a filter factory.
func (lb *LoggerBuilder) RegisterFilter(name string, factory FilterFactory) {
	lb.filterFactories[name] = factory
}

// Build creates a logger from configuration.
func (lb *LoggerBuilder) Build(config *Configuration) (*msgtmpl.Logger, error) {
	options, err := lb.Options(config)
	if err != nil {
		return nil, err
	}
	return msgtmpl.New(options...), nil
}

// Options converts configuration to logger options, so callers can add
// their own before calling msgtmpl.New.
//
// A positive TemplateCacheCapacity resizes the process-wide template cache.
func (lb *LoggerBuilder) Options(config *Configuration) ([]msgtmpl.Option, error) {
	c := config.Msgtmpl
	var options []msgtmpl.Option

	if c.MinimumLevel != "" {
		level, err := ParseLevel(c.MinimumLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum level: %w", err)
		}
		options = append(options, msgtmpl.WithMinimumLevel(level))
	}

	for _, sinkConfig := range c.WriteTo {
		sink, err := build(lb.sinkFactories, "sink", sinkConfig.Name, sinkConfig.Args)
		if err != nil {
			return nil, err
		}
		options = append(options, msgtmpl.WithSink(sink))
	}

	for _, name := range c.Enrich {
		enricher, err := build(lb.enricherFactories, "enricher", name, nil)
		if err != nil {
			return nil, err
		}
		options = append(options, msgtmpl.WithEnricher(enricher))
	}
	for _, enricherConfig := range c.EnrichWith {
		enricher, err := build(lb.enricherFactories, "enricher", enricherConfig.Name, enricherConfig.Args)
		if err != nil {
			return nil, err
		}
		options = append(options, msgtmpl.WithEnricher(enricher))
	}

	for _, filterConfig := range c.Filter {
		filter, err := build(lb.filterFactories, "filter", filterConfig.Name, filterConfig.Args)
		if err != nil {
			return nil, err
		}
		options = append(options, msgtmpl.WithFilter(filter))
	}

	if len(c.Properties) > 0 {
		options = append(options, msgtmpl.WithProperties(c.Properties))
	}
	if c.Label != "" {
		options = append(options, msgtmpl.WithProperty(msgtmpl.LabelProperty, c.Label))
	}
	if len(c.Tags) > 0 {
		options = append(options, msgtmpl.WithTags(c.Tags))
	}

	if c.TemplateCacheCapacity > 0 {
		parser.ConfigureCache(c.TemplateCacheCapacity)
	}

	return options, nil
}

func build[F ~func(map[string]any) (T, error), T any](factories map[string]F, kind, name string, args map[string]any) (T, error) {
	factory, ok := factories[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s: %s", kind, name)
	}
	v, err := factory(args)
	if err != nil {
		return v, fmt.Errorf("failed to create %s %s: %w", kind, name, err)
	}
	return v, nil
}

func createConsoleSink(args map[string]any) (core.LogEventSink, error) {
	var w io.Writer
	switch target := GetString(args, "output", "stdout"); target {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		return nil, fmt.Errorf("unknown console output: %s", target)
	}

	format := GetString(args, "format", sinks.FormatText)
	if format != sinks.FormatText && format != sinks.FormatJSON {
		return nil, fmt.Errorf("unknown console format: %s", format)
	}

	return sinks.NewConsoleSink(w, sinks.ConsoleOptions{
		Format:          format,
		ShowProperties:  GetBool(args, "showProperties", false),
		TimestampFormat: GetString(args, "timestampFormat", ""),
	}), nil
}
