package msgtmpl

import (
	"sync/atomic"

	"github.com/willibrandon/msgtmpl/core"
)

// LoggingLevelSwitch controls the minimum level of one or more loggers at
// runtime. It is safe for concurrent use.
type LoggingLevelSwitch struct {
	level atomic.Int32
}

// NewLoggingLevelSwitch creates a switch set to initialLevel.
func NewLoggingLevelSwitch(initialLevel core.LogEventLevel) *LoggingLevelSwitch {
	ls := &LoggingLevelSwitch{}
	ls.SetLevel(initialLevel)
	return ls
}

// Level returns the current minimum level.
func (ls *LoggingLevelSwitch) Level() core.LogEventLevel {
	return core.LogEventLevel(ls.level.Load())
}

// SetLevel changes the minimum level. It takes effect for the next event.
func (ls *LoggingLevelSwitch) SetLevel(level core.LogEventLevel) {
	ls.level.Store(int32(level))
}

// IsEnabled reports whether level passes the current minimum.
func (ls *LoggingLevelSwitch) IsEnabled(level core.LogEventLevel) bool {
	return level >= ls.Level()
}
