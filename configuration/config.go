// Package configuration builds loggers from YAML or JSON files.
//
// A configuration file has a single root key:
//
//	Msgtmpl:
//	  MinimumLevel: Debug
//	  WriteTo:
//	    - Name: Console
//	      Args: {format: json}
//	  Enrich: [WithEventId, WithMachineName]
//	  Properties: {Application: billing}
//	  Tags: {team: payments}
//	  TemplateCacheCapacity: 5000
package configuration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/willibrandon/msgtmpl/core"
)

// LoggerConfiguration describes one logger.
type LoggerConfiguration struct {
	MinimumLevel          string                  `json:"MinimumLevel,omitempty" yaml:"MinimumLevel,omitempty"`
	WriteTo               []SinkConfiguration     `json:"WriteTo,omitempty" yaml:"WriteTo,omitempty"`
	Enrich                []string                `json:"Enrich,omitempty" yaml:"Enrich,omitempty"`
	EnrichWith            []EnricherConfiguration `json:"EnrichWith,omitempty" yaml:"EnrichWith,omitempty"`
	Filter                []FilterConfiguration   `json:"Filter,omitempty" yaml:"Filter,omitempty"`
	Properties            map[string]any          `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	Tags                  map[string]string       `json:"Tags,omitempty" yaml:"Tags,omitempty"`
	Label                 string                  `json:"Label,omitempty" yaml:"Label,omitempty"`
	TemplateCacheCapacity int                     `json:"TemplateCacheCapacity,omitempty" yaml:"TemplateCacheCapacity,omitempty"`
}

// SinkConfiguration represents a sink configuration.
type SinkConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// EnricherConfiguration represents an enricher with arguments.
type EnricherConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// FilterConfiguration represents a filter configuration.
type FilterConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// Configuration is the root configuration object.
type Configuration struct {
	Msgtmpl LoggerConfiguration `json:"Msgtmpl" yaml:"Msgtmpl"`
}

// LoadFromFile loads configuration from a file. Files ending in .yaml or
// .yml are parsed as YAML, anything else as JSON.
func LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadFromYAML(data)
	default:
		return LoadFromJSON(data)
	}
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (*Configuration, error) {
	var config Configuration
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return finish(&config), nil
}

// LoadFromYAML loads configuration from YAML data.
func LoadFromYAML(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return finish(&config), nil
}

// finish brings decoded values to the same Go types whichever format they
// came from. An empty MinimumLevel is left empty so overlays can tell it
// was not set; loggers default to Information.
func finish(config *Configuration) *Configuration {
	c := &config.Msgtmpl
	c.Properties = normalizeMap(c.Properties)
	for i := range c.WriteTo {
		c.WriteTo[i].Args = normalizeMap(c.WriteTo[i].Args)
	}
	for i := range c.EnrichWith {
		c.EnrichWith[i].Args = normalizeMap(c.EnrichWith[i].Args)
	}
	for i := range c.Filter {
		c.Filter[i].Args = normalizeMap(c.Filter[i].Args)
	}
	return config
}

func normalizeMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalize(v)
	}
	return m
}

// normalize turns JSON numbers into int or float64 the way YAML decodes
// them, recursively.
func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		return normalizeMap(val)
	case []any:
		for i := range val {
			val[i] = normalize(val[i])
		}
		return val
	}
	return v
}

// ParseLevel parses a log level string.
func ParseLevel(levelStr string) (core.LogEventLevel, error) {
	switch strings.ToLower(levelStr) {
	case "verbose", "vrb":
		return core.VerboseLevel, nil
	case "debug", "dbg":
		return core.DebugLevel, nil
	case "information", "info", "inf":
		return core.InformationLevel, nil
	case "warning", "warn", "wrn":
		return core.WarningLevel, nil
	case "error", "err":
		return core.ErrorLevel, nil
	case "fatal", "ftl":
		return core.FatalLevel, nil
	default:
		return core.InformationLevel, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// GetString gets a string value from configuration args.
func GetString(args map[string]any, key string, defaultValue string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetInt gets an int value from configuration args.
func GetInt(args map[string]any, key string, defaultValue int) int {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				return i
			}
		}
	}
	return defaultValue
}

// GetBool gets a bool value from configuration args.
func GetBool(args map[string]any, key string, defaultValue bool) bool {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case bool:
			return val
		case string:
			return strings.ToLower(val) == "true"
		}
	}
	return defaultValue
}
