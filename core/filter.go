package core

// LogEventFilter determines which events reach the sinks.
type LogEventFilter interface {
	// IsEnabled returns true if the event should be logged.
	IsEnabled(event *LogEvent) bool
}

// LogEventFilterFunc adapts a function to LogEventFilter.
type LogEventFilterFunc func(event *LogEvent) bool

// IsEnabled calls the function.
func (f LogEventFilterFunc) IsEnabled(event *LogEvent) bool {
	return f(event)
}
