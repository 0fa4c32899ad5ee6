// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     settings
// Description: Settings persistence with wholesale default fallback
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/msto63/ninjachat/pkg/core/apperr"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

// Store reads and writes the settings file
type Store struct {
	path   string
	logger *logging.Logger
}

// NewStore creates a store for the settings file at path
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: logging.New("settings"),
	}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing, unreadable or malformed file, a
// missing key, a null value or a value of the wrong type all yield
// Defaults(). A well formed file is used verbatim, without range checks.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Settings file unreadable, using defaults", "path", s.path, "error", err)
		}
		return Defaults()
	}

	settings, err := Parse(data)
	if err != nil {
		s.logger.Warn("Settings file malformed, using defaults", "path", s.path, "error", err)
		return Defaults()
	}

	s.logger.Debug("Settings loaded", "path", s.path)
	return settings
}

// Parse decodes a settings document. Every key must be present and non-null.
func Parse(data []byte) (Settings, error) {
	var raw map[string]interface{}
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if raw == nil {
		return Settings{}, errors.New("settings document is null")
	}
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			return Settings{}, fmt.Errorf("missing key %q", key)
		}
		if v == nil {
			return Settings{}, fmt.Errorf("key %q is null", key)
		}
	}

	var settings Settings
	if err := sonic.ConfigStd.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// Save overwrites the settings file with a flat key/value document. There
// is no atomic replace and no backup.
func (s *Store) Save(settings Settings) error {
	data, err := sonic.ConfigStd.MarshalIndent(settings, "", "  ")
	if err != nil {
		return apperr.Persistence("encode settings", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperr.Persistence("create settings directory", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return apperr.Persistence("write settings", err)
	}

	s.logger.Info("Settings saved", "path", s.path)
	return nil
}

// Reset removes the settings file so the next load yields defaults
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperr.Persistence("remove settings", err)
	}
	return nil
}
