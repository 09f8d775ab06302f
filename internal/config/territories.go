package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// TerritoryOverrides replaces the built-in territory tables. Either
// section may be omitted to keep the corresponding builtin.
type TerritoryOverrides struct {
	Territories []string          `yaml:"territories"`
	Aliases     map[string]string `yaml:"aliases"`
}

// LoadTerritoryOverrides reads the override file named by the ingest
// config. An empty path returns nil overrides.
func LoadTerritoryOverrides(path string) (*TerritoryOverrides, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read territory file: %w", err)
	}
	var overrides TerritoryOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse territory file: %w", err)
	}
	return &overrides, nil
}
