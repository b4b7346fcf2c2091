package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up in the working directory, then the home directory
const FileName = ".linear.toml"

// Config represents the CLI configuration file
type Config struct {
	APIKey  string `toml:"api_key,omitempty"`
	TeamKey string `toml:"team_key,omitempty"`
	NoColor bool   `toml:"no_color,omitempty"`
	APIURL  string `toml:"api_url,omitempty"`
}

// ErrUnknownKey is returned by Get and Set for keys the file does not support
var ErrUnknownKey = errors.New("unknown config key")

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

var fields = map[string]field{
	"api_key": {
		get: func(c *Config) string { return c.APIKey },
		set: func(c *Config, v string) error { c.APIKey = v; return nil },
	},
	"team_key": {
		get: func(c *Config) string { return c.TeamKey },
		set: func(c *Config, v string) error { c.TeamKey = v; return nil },
	},
	"no_color": {
		get: func(c *Config) string { return strconv.FormatBool(c.NoColor) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("no_color must be true or false: %w", err)
			}
			c.NoColor = b
			return nil
		},
	},
	"api_url": {
		get: func(c *Config) string { return c.APIURL },
		set: func(c *Config, v string) error { c.APIURL = v; return nil },
	},
}

// Keys returns the supported config keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of a config value
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses and assigns a config value
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.set(c, value)
}

// Map returns the non-empty values keyed by config key, for layering into viper
func (c *Config) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if c.APIKey != "" {
		m["api_key"] = c.APIKey
	}
	if c.TeamKey != "" {
		m["team_key"] = c.TeamKey
	}
	if c.NoColor {
		m["no_color"] = true
	}
	if c.APIURL != "" {
		m["api_url"] = c.APIURL
	}
	return m
}

// Manager reads and writes the config file
type Manager struct {
	path string
}

// NewManager locates the config file: ./.linear.toml when it exists,
// otherwise ~/.linear.toml
func NewManager() (*Manager, error) {
	if _, err := os.Stat(FileName); err == nil {
		abs, err := filepath.Abs(FileName)
		if err != nil {
			return nil, err
		}
		return &Manager{path: abs}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	return &Manager{path: filepath.Join(home, FileName)}, nil
}

// NewManagerAt uses an explicit config file path
func NewManagerAt(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the config file path
func (m *Manager) Path() string {
	return m.path
}

// Load reads the config file. A missing file yields an empty config.
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", m.path, err)
	}

	return &cfg, nil
}

// Save writes the config file with owner-only permissions, since it may hold an API key
func (m *Manager) Save(cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	return os.WriteFile(m.path, data, 0600)
}
