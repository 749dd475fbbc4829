package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/willibrandon/msgtmpl/parser"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"strings", []string{"render", "No data found for id {id}", "abc123"}, "No data found for id abc123\n"},
		{"json args", []string{"render", "--json-args", "{@o} {n}", `{"id":7}`, "2.5"}, "{\"id\":7} 2.5\n"},
		{"unbound placeholder", []string{"render", "{a} {b}", "x"}, "x {b}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderJSONOutput(t *testing.T) {
	got, err := run(t, "render", "-o", "json", "{a} and {b}", "1", "2", "3")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var res resultJSON
	if err := json.Unmarshal([]byte(got), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	want := resultJSON{
		RenderedMessage: "1 and 2",
		RawTemplate:     "{a} and {b}",
		BoundProperties: map[string]any{"a": "1", "b": "2", "a2": "3"},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := run(t, "render", ""); !errors.Is(err, parser.ErrInvalidTemplate) {
		t.Errorf("empty template error = %v", err)
	}
	if _, err := run(t, "render", "--json-args", "{a}", "{"); err == nil {
		t.Error("invalid JSON argument should fail")
	}
	if _, err := run(t, "render", "-o", "xml", "{a}"); err == nil {
		t.Error("unknown output format should fail")
	}
}

func TestTokens(t *testing.T) {
	got, err := run(t, "tokens", "Hello {@user}!")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "text \"Hello \"\n" +
		"property \"{@user}\" name=user destructure=true\n" +
		"text \"!\"\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLog(t *testing.T) {
	got, err := run(t, "log", "-l", "warn", "Disk {pct} full", "91")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasSuffix(got, "[WRN] Disk 91 full\n") {
		t.Errorf("output = %q", got)
	}

	path := filepath.Join(t.TempDir(), "logging.yaml")
	config := "Msgtmpl:\n  MinimumLevel: Error\n"
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "log", "--config", path, "ignored"); err != nil {
		t.Errorf("Execute() with config error = %v", err)
	}
	if _, err := run(t, "log", "-l", "loud", "x"); err == nil {
		t.Error("unknown level should fail")
	}
}
