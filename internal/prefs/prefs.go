// Package prefs persists user preferences between sessions.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileVersion = "1.0"

// File is the on-disk layout of the preference store.
type File struct {
	Version string `json:"version"`
	Debug   bool   `json:"debug"`
}

// Store keeps preferences in a JSON file.
type Store struct {
	path    string
	mu      sync.RWMutex
	version string
	debug   bool
}

// Open creates a Store and loads it from disk. A missing file yields defaults.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		version: fileVersion,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	if err := s.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return s, nil
}

// Load reads preferences from disk.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}

	if file.Version != "" {
		s.version = file.Version
	}
	s.debug = file.Debug

	return nil
}

// Save writes preferences to disk atomically.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file := File{
		Version: s.version,
		Debug:   s.debug,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Debug reports the stored debug flag.
func (s *Store) Debug() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debug
}

// SetDebug updates the debug flag in memory. Call Save to persist it.
func (s *Store) SetDebug(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = on
}

// PersistDebug stores the flag and saves immediately.
func (s *Store) PersistDebug(on bool) error {
	s.SetDebug(on)
	return s.Save()
}
