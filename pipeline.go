package msgtmpl

import (
	"errors"

	"github.com/willibrandon/msgtmpl/core"
)

// pipeline holds the stages shared by a logger and every logger derived
// from it. It is not modified after New returns.
type pipeline struct {
	enrichers []core.LogEventEnricher
	filters   []core.LogEventFilter
	sinks     []core.LogEventSink
}

// process enriches, filters and emits event.
func (p *pipeline) process(event *core.LogEvent) {
	factory := core.PropertyFactory{}
	for _, enricher := range p.enrichers {
		enricher.Enrich(event, factory)
	}

	for _, filter := range p.filters {
		if !filter.IsEnabled(event) {
			return
		}
	}

	for _, sink := range p.sinks {
		sink.Emit(event)
	}
}

// close closes every sink and joins their errors.
func (p *pipeline) close() error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
