package config

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/san-kum/trajsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

var Presets = mustLoadPresets(presetsYAML)

func mustLoadPresets(data []byte) map[string]*Config {
	presets, err := loadPresets(data)
	if err != nil {
		panic(err)
	}
	return presets
}

// loadPresets decodes each preset over DefaultConfig, so a preset only
// needs to list the fields it changes.
func loadPresets(data []byte) (map[string]*Config, error) {
	raw := make(map[string]yaml.Node)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	presets := make(map[string]*Config, len(raw))
	for name, node := range raw {
		cfg := DefaultConfig()
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		cfg.Preset = name
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		presets[name] = cfg
	}
	return presets, nil
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// Lookup is GetPreset with an error naming the available presets.
func Lookup(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
