// Package config loads the tasks config file and applies environment
// overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

const (
	appName        = "tasks"
	configFileName = "config.toml"
	sqliteFileName = "tasks.db"
)

// Config represents config.toml after env overrides.
type Config struct {
	// DataDir holds the store files. Defaults to ~/.tasks.
	DataDir string `toml:"data-dir"`

	// Store selects the backend: json, sqlite or memory.
	Store string `toml:"store"`

	// DefaultProject names the project seeded into an empty store.
	DefaultProject string `toml:"default-project"`

	// Theme is the palette for non-interactive output: classic, neon or mono.
	Theme string `toml:"theme"`

	LogLevel  string `toml:"log-level"`
	LogFormat string `toml:"log-format"`

	// LogTimestamp adds a time field to every log line.
	LogTimestamp bool `toml:"log-timestamp"`
}

func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home: %w", err)
	}
	return &Config{
		DataDir:        filepath.Join(home, "."+appName),
		Store:          StoreJSON,
		DefaultProject: "My Tasks",
		Theme:          "classic",
		LogLevel:       "warn",
		LogFormat:      "text",
	}, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/tasks/config.toml, falling back to
// ~/.config/tasks/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Load reads path (a missing file is fine), then applies TASKS_* env
// overrides and validates the result. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("parse config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"TASKS_DATA_DIR", &c.DataDir},
		{"TASKS_STORE", &c.Store},
		{"TASKS_DEFAULT_PROJECT", &c.DefaultProject},
		{"TASKS_THEME", &c.Theme},
		{"TASKS_LOG_LEVEL", &c.LogLevel},
		{"TASKS_LOG_FORMAT", &c.LogFormat},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.dst = v
		}
	}
}

func (c *Config) normalize() {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.DataDir = expandHome(strings.TrimSpace(c.DataDir))
	c.DefaultProject = strings.TrimSpace(c.DefaultProject)
}

// Validate checks the fields that have a closed set of values.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q: must be one of json, sqlite, memory", c.Store)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid theme %q: must be one of classic, neon, mono", c.Theme)
	}
	if c.Store != StoreMemory && c.DataDir == "" {
		return fmt.Errorf("data-dir is required for the %s store", c.Store)
	}
	if c.DefaultProject == "" {
		return fmt.Errorf("default-project must not be empty")
	}
	return nil
}

// Overrides are command-line values. They win over both the file and the
// environment; empty fields are ignored.
type Overrides struct {
	DataDir  string
	Store    string
	LogLevel string
}

// Apply layers o on top of c and re-validates.
func (c *Config) Apply(o Overrides) error {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Store != "" {
		c.Store = o.Store
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	c.normalize()
	return c.Validate()
}

// SQLitePath is the database file used by the sqlite store.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, sqliteFileName)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
