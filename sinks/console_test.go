package sinks

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/selflog"
)

var fixedTime = time.Date(2024, 1, 15, 10, 30, 45, 123_000_000, time.UTC)

func TestConsoleSinkText(t *testing.T) {
	tests := []struct {
		name  string
		opts  ConsoleOptions
		event core.LogEvent
		want  string
	}{
		{
			name: "plain",
			event: core.LogEvent{
				Timestamp:       fixedTime,
				Level:           core.InformationLevel,
				RenderedMessage: "hello",
			},
			want: "[2024-01-15 10:30:45.123][INF] hello\n",
		},
		{
			name: "label and exception",
			event: core.LogEvent{
				Timestamp:       fixedTime,
				Level:           core.ErrorLevel,
				RenderedMessage: "failed",
				Properties:      map[string]any{"label": "orders/service.go"},
				Exception:       errors.New("timeout"),
			},
			want: "[orders/service.go][2024-01-15 10:30:45.123][ERR] failed - timeout\n",
		},
		{
			name: "properties and custom timestamp",
			opts: ConsoleOptions{ShowProperties: true, TimestampFormat: time.TimeOnly},
			event: core.LogEvent{
				Timestamp:       fixedTime,
				Level:           core.WarningLevel,
				RenderedMessage: "slow",
				Properties:      map[string]any{"ms": 250, "a0": true},
			},
			want: "[10:30:45][WRN] slow {a0=true, ms=250}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := NewConsoleSink(&buf, tt.opts)
			sink.Emit(&tt.event)

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsoleSinkJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, ConsoleOptions{Format: FormatJSON})

	sink.Emit(&core.LogEvent{
		Timestamp:       fixedTime,
		Level:           core.WarningLevel,
		MessageTemplate: "Disk {pct}",
		RenderedMessage: "Disk 91",
		Properties:      map[string]any{"pct": 91},
	})

	line := buf.String()
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("output %q is not newline terminated", line)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["@mt"] != "Disk {pct}" || got["@m"] != "Disk 91" || got["@l"] != "Warning" {
		t.Errorf("unexpected CLEF document: %v", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestConsoleSinkReportsWriteErrors(t *testing.T) {
	var messages []string
	selflog.EnableFunc(func(msg string) { messages = append(messages, msg) })
	defer selflog.Disable()

	sink := NewConsoleSink(failingWriter{}, ConsoleOptions{})
	sink.Emit(&core.LogEvent{RenderedMessage: "lost"})

	if len(messages) != 1 || !strings.Contains(messages[0], "[console]") || !strings.Contains(messages[0], "disk full") {
		t.Errorf("selflog messages = %q", messages)
	}
}

type explodingName int

func (explodingName) String() string { panic("boom") }

func TestConsoleSinkRecoversPropertyPanics(t *testing.T) {
	var messages []string
	selflog.EnableFunc(func(msg string) { messages = append(messages, msg) })
	defer selflog.Disable()

	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, ConsoleOptions{ShowProperties: true})
	sink.Emit(&core.LogEvent{
		Timestamp:       fixedTime,
		Level:           core.InformationLevel,
		RenderedMessage: "hello",
		Properties:      map[string]any{"bad": explodingName(1), "ok": 2},
	})

	want := "[2024-01-15 10:30:45.123][INF] hello {bad=[unserializable], ok=2}\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if len(messages) != 1 || !strings.Contains(messages[0], `"bad"`) {
		t.Errorf("selflog messages = %q", messages)
	}
}
