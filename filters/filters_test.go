package filters

import (
	"testing"

	"github.com/willibrandon/msgtmpl/core"
)

func TestFilters(t *testing.T) {
	event := &core.LogEvent{
		Level:           core.WarningLevel,
		MessageTemplate: "Order {id} rejected",
		Properties: map[string]any{
			"id":   42,
			"ids":  []string{"a", "b"},
			"dims": map[string]int{"w": 2},
		},
		Tags: map[string]string{"team": "orders"},
	}

	tests := []struct {
		name   string
		filter core.LogEventFilter
		want   bool
	}{
		{"level passes", ByLevel(core.InformationLevel), true},
		{"level blocks", ByLevel(core.ErrorLevel), false},
		{"template matches", ByTemplate("x", "Order {id} rejected"), true},
		{"template differs", ByTemplate("Order 42 rejected"), false},
		{"tag matches", ByTag("team", "orders"), true},
		{"tag missing", ByTag("region", "eu"), false},
		{"property matches", ByProperty("id", 42), true},
		{"property differs", ByProperty("id", 7), false},
		{"slice property matches", ByProperty("ids", []string{"a", "b"}), true},
		{"slice property differs", ByProperty("ids", []string{"a"}), false},
		{"map property matches", ByProperty("dims", map[string]int{"w": 2}), true},
		{"property type differs", ByProperty("ids", "a"), false},
		{"excluding", ByExcluding(func(e *core.LogEvent) bool { return e.Level == core.WarningLevel }), false},
		{"all", All(ByLevel(core.DebugLevel), ByTag("team", "orders")), true},
		{"all fails", All(ByLevel(core.DebugLevel), ByTag("team", "billing")), false},
		{"any", Any(ByLevel(core.FatalLevel), ByProperty("id", 42)), true},
		{"any empty", Any(), false},
		{"not", Not(ByLevel(core.ErrorLevel)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEnabled(event); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
