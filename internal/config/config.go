// Package config handles configuration loading and config path resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable that overrides the config path.
const EnvConfig = "TODO_CONFIG"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// ShellConfig controls the interactive terminal shell.
type ShellConfig struct {
	Prompt string `yaml:"prompt" toml:"prompt"`
	Color  string `yaml:"color" toml:"color"` // "auto" | "always" | "never"
}

// TodosConfig holds the business limits applied by the service.
type TodosConfig struct {
	MaxActive int `yaml:"max_active" toml:"max_active"`
}

// StoreConfig selects the in-memory store implementation.
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // "memory" | "sqlite"
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format" toml:"format"` // "auto" | "text" | "json"
}

// Config is the root configuration.
type Config struct {
	Shell ShellConfig `yaml:"shell" toml:"shell"`
	Todos TodosConfig `yaml:"todos" toml:"todos"`
	Store StoreConfig `yaml:"store" toml:"store"`
	Log   LogConfig   `yaml:"log" toml:"log"`
}

var (
	validColors  = []string{"auto", "always", "never"}
	validDrivers = []string{"memory", "sqlite"}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"auto", "text", "json"}
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Prompt: "todo>> ",
			Color:  "auto",
		},
		Todos: TodosConfig{MaxActive: 10},
		Store: StoreConfig{Driver: "memory"},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case !slices.Contains(validColors, c.Shell.Color):
		return fmt.Errorf("config: shell.color %q must be one of %s", c.Shell.Color, strings.Join(validColors, ", "))
	case c.Todos.MaxActive < 1:
		return fmt.Errorf("config: todos.max_active must be at least 1, got %d", c.Todos.MaxActive)
	case !slices.Contains(validDrivers, c.Store.Driver):
		return fmt.Errorf("config: store.driver %q must be one of %s", c.Store.Driver, strings.Join(validDrivers, ", "))
	case !slices.Contains(validLevels, c.Log.Level):
		return fmt.Errorf("config: log.level %q must be one of %s", c.Log.Level, strings.Join(validLevels, ", "))
	case !slices.Contains(validFormats, c.Log.Format):
		return fmt.Errorf("config: log.format %q must be one of %s", c.Log.Format, strings.Join(validFormats, ", "))
	}
	return nil
}

// Load reads a config file from path. Files ending in .toml are decoded as
// TOML, everything else as YAML.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load %s: %w", path, err)
	}

	if sh, ok := raw["shell"].(map[string]any); ok {
		if v, ok := sh["prompt"].(string); ok {
			cfg.Shell.Prompt = v
		}
		if v, ok := sh["color"].(string); ok && v != "" {
			cfg.Shell.Color = v
		}
	}

	if td, ok := raw["todos"].(map[string]any); ok {
		if v, ok := asInt(td["max_active"]); ok {
			cfg.Todos.MaxActive = v
		}
	}

	if st, ok := raw["store"].(map[string]any); ok {
		if v, ok := st["driver"].(string); ok && v != "" {
			cfg.Store.Driver = v
		}
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v, ok := lg["level"].(string); ok && v != "" {
			cfg.Log.Level = strings.ToLower(v)
		}
		if v, ok := lg["format"].(string); ok && v != "" {
			cfg.Log.Format = strings.ToLower(v)
		}
	}

	return cfg, nil
}

// asInt accepts the integer shapes produced by the YAML and TOML decoders.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Path resolution
// ---------------------------------------------------------------------------

// DefaultPath returns ~/.config/todo/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "todo", "config.yaml")
	}
	return filepath.Join(home, ".config", "todo", "config.yaml")
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// Resolve returns the config path and the source of the resolution.
// Priority: flagPath → TODO_CONFIG env → ~/.config/todo/config.yaml.
// source is one of "flag", "env", or "default".
func Resolve(flagPath string) (path, source string) {
	if flagPath != "" {
		if p, err := normalizePath(flagPath); err == nil {
			return p, "flag"
		}
	}
	if env := os.Getenv(EnvConfig); env != "" {
		if p, err := normalizePath(env); err == nil {
			return p, "env"
		}
	}
	return DefaultPath(), "default"
}
