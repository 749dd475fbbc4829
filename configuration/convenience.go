package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"

	"github.com/willibrandon/msgtmpl"
)

// CreateLoggerFromFile creates a logger from a YAML or JSON configuration file.
func CreateLoggerFromFile(filename string) (*msgtmpl.Logger, error) {
	config, err := LoadFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewLoggerBuilder().Build(config)
}

// CreateLoggerFromYAML creates a logger from YAML configuration data.
func CreateLoggerFromYAML(data []byte) (*msgtmpl.Logger, error) {
	config, err := LoadFromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return NewLoggerBuilder().Build(config)
}

// CreateLoggerFromJSON creates a logger from JSON configuration data.
func CreateLoggerFromJSON(data []byte) (*msgtmpl.Logger, error) {
	config, err := LoadFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return NewLoggerBuilder().Build(config)
}

// LoadForEnvironment loads msgtmpl.yaml (or .yml, .json) from dir and
// overlays msgtmpl.{environment}.yaml when it exists. Missing files are
// skipped; with neither present the defaults are returned.
func LoadForEnvironment(dir, environment string) (*Configuration, error) {
	config, err := loadFirst(dir, "msgtmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to load base configuration: %w", err)
	}
	if config == nil {
		config = finish(&Configuration{})
	}

	if environment != "" {
		overlay, err := loadFirst(dir, "msgtmpl."+environment)
		if err != nil {
			return nil, fmt.Errorf("failed to load environment configuration: %w", err)
		}
		if overlay != nil {
			mergeConfiguration(config, overlay)
		}
	}
	return config, nil
}

func loadFirst(dir, base string) (*Configuration, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		config, err := LoadFromFile(filepath.Join(dir, base+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return config, err
	}
	return nil, nil
}

// mergeConfiguration merges source configuration into target.
// Source values override target values.
func mergeConfiguration(target, source *Configuration) {
	t, s := &target.Msgtmpl, &source.Msgtmpl

	if s.MinimumLevel != "" {
		t.MinimumLevel = s.MinimumLevel
	}

	// Sinks are replaced as a whole.
	if len(s.WriteTo) > 0 {
		t.WriteTo = s.WriteTo
	}

	t.Enrich = append(t.Enrich, s.Enrich...)
	t.EnrichWith = append(t.EnrichWith, s.EnrichWith...)
	t.Filter = append(t.Filter, s.Filter...)

	if t.Properties == nil {
		t.Properties = make(map[string]any)
	}
	maps.Copy(t.Properties, s.Properties)

	if t.Tags == nil {
		t.Tags = make(map[string]string)
	}
	maps.Copy(t.Tags, s.Tags)

	if s.Label != "" {
		t.Label = s.Label
	}
	if s.TemplateCacheCapacity > 0 {
		t.TemplateCacheCapacity = s.TemplateCacheCapacity
	}
}
