// Package shared holds the context passed to all CLI commands.
package shared

import (
	"strings"

	"github.com/go-ports/todo/internal/config"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// ConfigPath overrides the config file location.
	// When empty, resolution falls through to TODO_CONFIG env → ~/.config/todo/config.yaml.
	ConfigPath string
	// LogLevel overrides log.level from the config file when set.
	LogLevel string
}

// ConfigFile returns the resolved config path and its source.
func (c *Context) ConfigFile() (path, source string) {
	return config.Resolve(c.ConfigPath)
}

// LoadConfig loads the resolved config file, applies flag overrides and
// validates the result.
func (c *Context) LoadConfig() (*config.Config, error) {
	path, _ := c.ConfigFile()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(c.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
