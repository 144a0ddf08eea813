package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"citysuggest/internal/binder"
)

// YAMLConfig represents the structure of the config.yaml file.
type YAMLConfig struct {
	Autocomplete binder.Config `yaml:"autocomplete"`
}

// LoadWidgetConfig loads the autocomplete settings from the YAML file at
// path. Missing fields keep their defaults; a missing file yields the
// defaults without error.
func LoadWidgetConfig(path string) (binder.Config, error) {
	cfg := YAMLConfig{Autocomplete: binder.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.Autocomplete, nil
		}
		return binder.Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return binder.Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg.Autocomplete); err != nil {
		return binder.Config{}, fmt.Errorf("invalid autocomplete config: %w", err)
	}

	return cfg.Autocomplete, nil
}
