// Package config loads stepsight configuration from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stepsight/stepsight/pkg/highlight"
)

// EngineType selects the graph layout engine implementation.
type EngineType string

const (
	// EngineBuiltin lays out graphs in-process.
	EngineBuiltin EngineType = "builtin"
	// EngineDot shells out to a native dot binary.
	EngineDot EngineType = "dot"
)

// Config holds all configuration for stepsight.
type Config struct {
	// Theme is the syntax highlighting color theme.
	Theme string `yaml:"theme" env:"STEPSIGHT_THEME"`

	// Engine selects the graph layout engine ("builtin" or "dot").
	Engine EngineType `yaml:"engine" env:"STEPSIGHT_ENGINE"`

	// DotPath is the dot binary used when Engine is "dot".
	DotPath string `yaml:"dot_path" env:"STEPSIGHT_DOT_PATH"`

	// Listen is the HTTP address for the serve command.
	Listen string `yaml:"listen" env:"STEPSIGHT_LISTEN"`

	// SnapshotPath is the default execution snapshot file to render.
	SnapshotPath string `yaml:"snapshot_path" env:"STEPSIGHT_SNAPSHOT_PATH"`

	// PathAliases collapses source path prefixes to short display
	// aliases in origin labels, e.g. a toolchain source root to "<std>/".
	PathAliases map[string]string `yaml:"path_aliases"`

	// Logging
	Verbose bool `yaml:"verbose" env:"STEPSIGHT_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme:        highlight.ThemeSolarizedDark.String(),
		Engine:       EngineBuiltin,
		DotPath:      "dot",
		Listen:       "127.0.0.1:54321",
		SnapshotPath: "",
		PathAliases:  map[string]string{},
		Verbose:      false,
	}
}

// globalConfigFilePath returns the global config file path (~/.stepsight/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stepsight/config.yaml"
	}
	return filepath.Join(home, ".stepsight", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.stepsight/config.yaml)
func projectConfigFilePath() string {
	return ".stepsight/config.yaml"
}

// GlobalPath exposes the global config location for the init wizard.
func GlobalPath() string { return globalConfigFilePath() }

// ProjectPath exposes the project config location for the init wizard.
func ProjectPath() string { return projectConfigFilePath() }

// Load reads configuration with the following priority (highest to lowest):
// 1. Project-level config (./.stepsight/config.yaml)
// 2. Environment variables
// 3. Global config (~/.stepsight/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STEPSIGHT_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("STEPSIGHT_ENGINE"); v != "" {
		cfg.Engine = EngineType(v)
	}
	if v := os.Getenv("STEPSIGHT_DOT_PATH"); v != "" {
		cfg.DotPath = v
	}
	if v := os.Getenv("STEPSIGHT_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("STEPSIGHT_SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
	if v := os.Getenv("STEPSIGHT_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1" || v == "yes"
	}
}

// Validate checks that the configuration has valid required fields.
func (c *Config) Validate() error {
	if _, err := highlight.ParseTheme(c.Theme); err != nil {
		return err
	}

	switch c.Engine {
	case EngineBuiltin, EngineDot:
		// Valid
	default:
		return fmt.Errorf("invalid engine: %s (must be 'builtin' or 'dot')", c.Engine)
	}

	if c.Engine == EngineDot && c.DotPath == "" {
		return fmt.Errorf("dot_path is required when engine is dot")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}

	return nil
}

// ResolvedTheme returns the validated theme. Call after Validate.
func (c *Config) ResolvedTheme() highlight.Theme {
	t, err := highlight.ParseTheme(c.Theme)
	if err != nil {
		return highlight.ThemeSolarizedDark
	}
	return t
}
