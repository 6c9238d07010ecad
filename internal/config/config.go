// Package config loads carcare settings from a YAML or TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fentz26/carcare/internal/schedule"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user settings directory under $HOME.
	DirName = ".carcare"
	// FileName is the default config file inside DirName.
	FileName = "config.yaml"
	// DefaultTasksFile is the task file used when none is configured.
	DefaultTasksFile = "tasks.txt"
)

// Config holds carcare settings.
type Config struct {
	// TasksFile is the path of the task list.
	TasksFile string `yaml:"tasks_file" toml:"tasks_file"`
	// LogLevel controls diagnostics: debug, info, warn, error or off.
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// Schedule replaces the built-in rules of the named vehicle categories.
	Schedule map[string][]schedule.Rule `yaml:"schedule" toml:"schedule"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		TasksFile: DefaultTasksFile,
		LogLevel:  "warn",
	}
}

// Load reads configuration from path. Files ending in .toml are decoded as
// TOML, anything else as YAML. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns ~/.carcare/config.yaml, or "" if there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName, FileName)
}

// LoadFromHome loads configuration from ~/.carcare/config.yaml.
func LoadFromHome() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TasksFile) == "" {
		return fmt.Errorf("tasks_file must not be empty")
	}
	if _, err := c.Table(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	return nil
}

// Table returns the maintenance schedule with any configured overrides applied.
func (c *Config) Table() (schedule.Table, error) {
	return schedule.DefaultTable().WithOverrides(c.Schedule)
}
