package config

import (
	"os"
	"path/filepath"
)

// HomeDir is the per-user directory holding config, preferences and logs.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".shelf"), nil
}

// DefaultPath returns ~/.shelf/config.yaml.
func DefaultPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultPrefsPath returns ~/.shelf/prefs.json.
func DefaultPrefsPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prefs.json"), nil
}

// DefaultLogPath returns ~/.shelf/shelf.log.
func DefaultLogPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shelf.log"), nil
}
