package core

// LogEventProperty is a single named value attached to a log event.
type LogEventProperty struct {
	Name  string
	Value any
}

// LogEventPropertyFactory creates log event properties for enrichers.
type LogEventPropertyFactory interface {
	CreateProperty(name string, value any) *LogEventProperty
}

// PropertyFactory is the default LogEventPropertyFactory.
type PropertyFactory struct{}

// CreateProperty returns a property holding value unchanged.
func (PropertyFactory) CreateProperty(name string, value any) *LogEventProperty {
	return &LogEventProperty{Name: name, Value: value}
}
