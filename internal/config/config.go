package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/davebream/mcpmock/internal/logging"
)

type Config struct {
	LogLevel string `json:"log_level,omitempty"`
	// LogFile receives diagnostics instead of stderr. $VAR references are expanded.
	LogFile string `json:"log_file,omitempty"`
	// Debug turns on the diagnostic channel. Off, the mock writes nothing but replies.
	Debug bool `json:"debug,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// Load reads a config file. The file must not be readable by group or others.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		return nil, fmt.Errorf("config file %s has insecure permissions %o (expected 0600). Fix with: chmod 600 %s", path, perm, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields DefaultConfig.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	return AtomicWriteFile(path, data, 0600)
}

// LoggingOptions turns the config into options for logging.Setup.
func (c *Config) LoggingOptions() (logging.Options, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logging.Options{}, err
	}
	return logging.Options{
		Enabled: c.Debug,
		Level:   level,
		File:    ResolveEnv(c.LogFile),
	}, nil
}

var envVarPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// ResolveEnv resolves $VAR references from the process environment.
func ResolveEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:]) // strip leading $
	})
}
