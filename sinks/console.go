package sinks

import (
	"io"
	"os"
	"sync"

	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/internal/formatters"
	"github.com/willibrandon/msgtmpl/selflog"
)

// Console output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ConsoleOptions configures a ConsoleSink.
type ConsoleOptions struct {
	// Format is FormatText (the default) or FormatJSON for CLEF lines.
	Format string

	// ShowProperties appends event properties to text output.
	ShowProperties bool

	// TimestampFormat is a time layout for text output.
	TimestampFormat string
}

// ConsoleSink writes log events to a writer, one line per event.
type ConsoleSink struct {
	output io.Writer
	opts   ConsoleOptions
	mu     sync.Mutex
}

// NewConsoleSink creates a console sink writing to w, or stdout when w is nil.
func NewConsoleSink(w io.Writer, opts ConsoleOptions) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	opts.TimestampFormat = timestampLayout(opts.TimestampFormat)
	return &ConsoleSink{output: w, opts: opts}
}

// Emit writes the event.
func (cs *ConsoleSink) Emit(event *core.LogEvent) {
	if event == nil {
		return
	}

	if cs.opts.Format == FormatJSON {
		data, err := formatters.FormatCLEF(event)
		if err != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[console] failed to format event: %v", err)
			}
			return
		}
		cs.write(append(data, '\n'))
		return
	}

	var fb formatBuffer
	cs.write(fb.formatText(event, cs.opts.TimestampFormat, cs.opts.ShowProperties))
}

func (cs *ConsoleSink) write(line []byte) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, err := cs.output.Write(line); err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[console] failed to write event: %v", err)
		}
	}
}

// Close flushes the writer when it supports syncing.
func (cs *ConsoleSink) Close() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if f, ok := cs.output.(interface{ Sync() error }); ok && cs.output != os.Stdout && cs.output != os.Stderr {
		return f.Sync()
	}
	return nil
}
