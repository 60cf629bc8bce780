package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "pytutor"

// DefaultDataDir resolves the data directory:
// 1. $XDG_DATA_HOME/pytutor
// 2. ~/.local/share/pytutor
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDir), nil
}

// DefaultConfigDir resolves $XDG_CONFIG_HOME/pytutor, falling back to
// ~/.config/pytutor.
func DefaultConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appDir), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
