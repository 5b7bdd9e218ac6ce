package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the mcpmock configuration directory.
// Respects MCPMOCK_CONFIG_DIR override.
func ConfigDir() (string, error) {
	if dir := os.Getenv("MCPMOCK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, "mcpmock"), nil
}

// ConfigFilePath returns the path to config.json.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogFile is where `config init` points log_file.
func DefaultLogFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "mcpmock.log"), nil
}
