package msgtmpl

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/willibrandon/msgtmpl/parser"
)

type order struct {
	ID    int      `json:"id"`
	Items []string `json:"items"`
}

type panickyDate struct{}

func (panickyDate) DisplayText() string { panic("clock unavailable") }

func TestProcessEndToEnd(t *testing.T) {
	res, err := Process("No data found for id {id}", "abc123")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := &Result{
		RenderedMessage: "No data found for id abc123",
		RawTemplate:     "No data found for id {id}",
		BoundProperties: map[string]any{"id": "abc123"},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
}

func TestProcess(t *testing.T) {
	o := order{ID: 7, Items: []string{"apple", "pear"}}
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		template  string
		args      []any
		wantText  string
		wantProps map[string]any
	}{
		{
			name:      "no placeholders",
			template:  "Service started",
			wantText:  "Service started",
			wantProps: map[string]any{},
		},
		{
			name:      "positional order",
			template:  "{a} and {b}",
			args:      []any{1, 2},
			wantText:  "1 and 2",
			wantProps: map[string]any{"a": 1, "b": 2},
		},
		{
			name:      "overflow arguments",
			template:  "{a}",
			args:      []any{1, 2, 3},
			wantText:  "1",
			wantProps: map[string]any{"a": 1, "a1": 2, "a2": 3},
		},
		{
			name:      "unbound placeholder",
			template:  "{x} missing {y}",
			args:      []any{"here"},
			wantText:  "here missing {y}",
			wantProps: map[string]any{"x": "here"},
		},
		{
			name:      "stringified composite",
			template:  "Order {o}",
			args:      []any{o},
			wantText:  "Order {7 [apple pear]}",
			wantProps: map[string]any{"o": "{7 [apple pear]}"},
		},
		{
			name:      "destructured composite",
			template:  "Order {@o}",
			args:      []any{o},
			wantText:  `Order {"id":7,"items":["apple","pear"]}`,
			wantProps: map[string]any{"o": o},
		},
		{
			name:      "time",
			template:  "At {when}",
			args:      []any{when},
			wantText:  "At 2024-03-01T12:00:00.000Z",
			wantProps: map[string]any{"when": when},
		},
		{
			name:      "absent and nil",
			template:  "{a} {b}",
			args:      []any{Absent, nil, Absent, nil},
			wantText:  "undefined null",
			wantProps: map[string]any{"a": Absent, "b": nil, "a3": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Process(tt.template, tt.args...)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if res.RenderedMessage != tt.wantText {
				t.Errorf("RenderedMessage = %q, want %q", res.RenderedMessage, tt.wantText)
			}
			if res.RawTemplate != tt.template {
				t.Errorf("RawTemplate = %q, want %q", res.RawTemplate, tt.template)
			}
			if diff := cmp.Diff(tt.wantProps, res.BoundProperties); diff != "" {
				t.Errorf("BoundProperties mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessTruncatesDestructuredValues(t *testing.T) {
	long := map[string]string{"description": strings.Repeat("x", 100)}

	res, err := Process("{@v}", long)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if n := len([]rune(res.RenderedMessage)); n != 70 {
		t.Errorf("rendered length = %d, want 70", n)
	}
	if !strings.HasSuffix(res.RenderedMessage, "...") {
		t.Errorf("rendered %q does not end with ...", res.RenderedMessage)
	}
}

func TestProcessEmptyTemplate(t *testing.T) {
	_, err := Process("")
	if !errors.Is(err, parser.ErrInvalidTemplate) {
		t.Errorf("Process(\"\") error = %v, want ErrInvalidTemplate", err)
	}
}

func TestProcessRecoversPanics(t *testing.T) {
	_, err := Process("At {when}", panickyDate{})
	if !errors.Is(err, ErrFormatting) {
		t.Fatalf("Process() error = %v, want ErrFormatting", err)
	}
	if !strings.Contains(err.Error(), "clock unavailable") {
		t.Errorf("error %q does not carry the panic value", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"renders", "Hello {name}", []any{"world"}, "Hello world"},
		{"empty template", "", []any{1}, ""},
		{"panic falls back to raw template", "At {when}", []any{panickyDate{}}, "At {when}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.template, tt.args...); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessIsRepeatable(t *testing.T) {
	first := Format("{@v} {n}", map[string]int{"a": 1}, 2.5)
	second := Format("{@v} {n}", map[string]int{"a": 1}, 2.5)
	if first != second || first != `{"a":1} 2.5` {
		t.Errorf("renders differ or are wrong: %q vs %q", first, second)
	}
}

func TestProcessDereferencesScalarPointers(t *testing.T) {
	n, s := 0, "widget"

	res, err := Process("count {n} name {s}", &n, &s)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.RenderedMessage != "count 0 name widget" {
		t.Errorf("RenderedMessage = %q", res.RenderedMessage)
	}
	want := map[string]any{"n": 0, "s": "widget"}
	if diff := cmp.Diff(want, res.BoundProperties); diff != "" {
		t.Errorf("BoundProperties mismatch (-want +got):\n%s", diff)
	}
}
