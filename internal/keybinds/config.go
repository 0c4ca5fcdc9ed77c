package keybinds

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated key list.
type Config struct {
	Version string            `yaml:"version,omitempty"`
	Global  map[string]string `yaml:"global,omitempty"`
	Table   map[string]string `yaml:"table,omitempty"`
	Form    map[string]string `yaml:"form,omitempty"`
	Search  map[string]string `yaml:"search,omitempty"`
	Confirm map[string]string `yaml:"confirm,omitempty"`
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextTable:   c.Table,
		ContextForm:    c.Form,
		ContextSearch:  c.Search,
		ContextConfirm: c.Confirm,
	}
}

// LoadConfig loads keybinding configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal keybinds: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// A configured action replaces every default key of that action in its context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for actionStr, keyList := range bindings {
			action := Action(actionStr)
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}

			keys := splitKeys(keyList)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()
	if configPath == "" {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds: %w", err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	if err := NewValidator().Validate(registry).Err(); err != nil {
		return nil, err
	}

	return registry, nil
}

// ExportDefaults exports the default bindings as a config
func ExportDefaults() *Config {
	registry := NewDefaultRegistry()
	config := &Config{
		Version: "1.0",
		Global:  map[string]string{},
		Table:   map[string]string{},
		Form:    map[string]string{},
		Search:  map[string]string{},
		Confirm: map[string]string{},
	}

	for context, section := range config.sections() {
		for _, action := range AllActions {
			if keys := keysFor(registry.bindings[context], action); len(keys) > 0 {
				section[string(action)] = strings.Join(registry.GetBinding(context, action), ",")
			}
		}
	}
	return config
}

// splitKeys splits "up,k" into its keys. A lone "," or " " is kept as a key.
func splitKeys(list string) []string {
	if list == "," || list == " " {
		return []string{list}
	}
	var keys []string
	for _, key := range strings.Split(list, ",") {
		if key == " " {
			keys = append(keys, key)
			continue
		}
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
