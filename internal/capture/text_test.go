package capture

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/willibrandon/msgtmpl/selflog"
)

type userID int

type node struct {
	Name string
	Next *node
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

type panicky struct{}

func (panicky) MarshalJSON() ([]byte, error) { panic("marshal exploded") }

func TestToText(t *testing.T) {
	when := time.Date(2024, 1, 15, 10, 30, 45, 123000000, time.FixedZone("CET", 3600))

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"absent", Absent, "undefined"},
		{"nil", nil, "null"},
		{"nil map", map[string]int(nil), "null"},
		{"string", `say "hi"`, `say "hi"`},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"named int", userID(12), "12"},
		{"uint8", uint8(200), "200"},
		{"bool", true, "true"},
		{"float", 3.25, "3.25"},
		{"whole float", 100.0, "100"},
		{"large float", 1e21, "1e+21"},
		{"tiny float", 1e-7, "1e-7"},
		{"nan", math.NaN(), "NaN"},
		{"inf", math.Inf(-1), "-Infinity"},
		{"time", when, "2024-01-15T09:30:45.123Z"},
		{"formattable", day("mon"), "day:mon"},
		{"map", map[string]any{"b": 1, "a": "<x>"}, `{"a":"<x>","b":1}`},
		{"slice", []int{1, 2, 3}, "[1,2,3]"},
		{"struct", plain{Name: "n"}, `{"Name":"n"}`},
		{"pointer to int", intPtr(5), "5"},
		{"pointer to string", strPtr("x"), "x"},
		{"pointer to nil pointer", new(*int), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToText(tt.value); got != tt.want {
				t.Errorf("ToText(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestToTextTruncatesComposites(t *testing.T) {
	value := map[string]string{"description": strings.Repeat("x", 100)}

	got := ToText(value)
	if len([]rune(got)) != MaxCompositeLength {
		t.Fatalf("len = %d, want %d", len([]rune(got)), MaxCompositeLength)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if !strings.HasPrefix(got, `{"description":"xxx`) {
		t.Errorf("unexpected prefix: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	exact := strings.Repeat("a", 70)
	if got := Truncate(exact, 70); got != exact {
		t.Error("strings at the limit must not be truncated")
	}

	long := strings.Repeat("é", 71)
	got := Truncate(long, 70)
	if want := strings.Repeat("é", 67) + "..."; got != want {
		t.Errorf("Truncate() = %q, want %q", got, want)
	}
}

func TestToTextUnserializable(t *testing.T) {
	var buf bytes.Buffer
	selflog.Enable(&buf)
	defer selflog.Disable()

	cyclic := &node{Name: "a"}
	cyclic.Next = cyclic

	tests := []struct {
		name  string
		value any
	}{
		{"cycle", cyclic},
		{"channel field", map[string]any{"ch": make(chan int)}},
		{"panicking marshaler", []any{panicky{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToText(tt.value); got != Unserializable {
				t.Errorf("ToText() = %q, want %q", got, Unserializable)
			}
		})
	}

	if !strings.Contains(buf.String(), "[render]") {
		t.Errorf("expected selflog output, got %q", buf.String())
	}
}
