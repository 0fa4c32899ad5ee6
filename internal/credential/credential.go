// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     credential
// Description: OpenAI API key lookup and persistence
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"

	"github.com/msto63/ninjachat/pkg/core/apperr"
)

// EnvKey is the environment variable and dot-file key holding the API key
const EnvKey = "OPENAI_API_KEY"

// ErrNotFound is returned when no key is stored
var ErrNotFound = errors.New("API key not found")

// Store persists the API key
type Store interface {
	Load() (string, error)
	Save(key string) error
	Clear() error
	Describe() string
}

// Backend names a store implementation
type Backend string

const (
	BackendDotfile Backend = "dotfile"
	BackendKeyring Backend = "keyring"
)

// Options selects and configures a store
type Options struct {
	Backend        string
	DotFile        string
	KeyringService string
	KeyringUser    string
}

// NewStore creates the store named by opts.Backend
func NewStore(opts Options) (Store, error) {
	switch Backend(opts.Backend) {
	case BackendDotfile, "":
		return &DotfileStore{Path: opts.DotFile}, nil
	case BackendKeyring:
		return &KeyringStore{Service: opts.KeyringService, User: opts.KeyringUser}, nil
	default:
		return nil, fmt.Errorf("unknown credential backend %q", opts.Backend)
	}
}

// DotfileStore keeps the key in a KEY=value file
type DotfileStore struct {
	Path string
}

func (s *DotfileStore) Describe() string {
	return "dotfile " + s.Path
}

// Load reads the key from the file
func (s *DotfileStore) Load() (string, error) {
	values, err := godotenv.Read(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", apperr.Persistence("read credential file", err)
	}
	key := strings.TrimSpace(values[EnvKey])
	if key == "" {
		return "", ErrNotFound
	}
	return key, nil
}

// Save writes the key, keeping other entries of the file
func (s *DotfileStore) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is empty")
	}

	values, err := s.read()
	if err != nil {
		return err
	}
	values[EnvKey] = key
	return s.write(values)
}

// Clear removes the key, keeping other entries of the file
func (s *DotfileStore) Clear() error {
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[EnvKey]; !ok {
		return nil
	}
	delete(values, EnvKey)
	return s.write(values)
}

func (s *DotfileStore) read() (map[string]string, error) {
	values, err := godotenv.Read(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, apperr.Persistence("read credential file", err)
	}
	return values, nil
}

func (s *DotfileStore) write(values map[string]string) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return apperr.Persistence("create credential directory", err)
		}
	}
	if err := godotenv.Write(values, s.Path); err != nil {
		return apperr.Persistence("write credential file", err)
	}
	if err := os.Chmod(s.Path, 0600); err != nil {
		return apperr.Persistence("protect credential file", err)
	}
	return nil
}

// KeyringStore keeps the key in the OS keyring
type KeyringStore struct {
	Service string
	User    string
}

func (s *KeyringStore) Describe() string {
	return fmt.Sprintf("keyring %s/%s", s.Service, s.User)
}

func (s *KeyringStore) Load() (string, error) {
	key, err := keyring.Get(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", apperr.Persistence("read keyring", err)
	}
	return key, nil
}

func (s *KeyringStore) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is empty")
	}
	if err := keyring.Set(s.Service, s.User, key); err != nil {
		return apperr.Persistence("write keyring", err)
	}
	return nil
}

func (s *KeyringStore) Clear() error {
	err := keyring.Delete(s.Service, s.User)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return apperr.Persistence("delete keyring entry", err)
	}
	return nil
}

// Source tells where a resolved key came from
type Source string

const (
	SourceNone   Source = "none"
	SourceConfig Source = "config"
	SourceEnv    Source = "environment"
	SourceStore  Source = "store"
)

// Resolver looks the key up in order: explicit value, environment (after
// loading the dot-file, which never overrides set variables), store
type Resolver struct {
	Explicit string
	DotFile  string
	Store    Store
}

// Resolve returns the first key found and its source. An empty key with
// SourceNone means nothing is configured.
func (r *Resolver) Resolve() (string, Source) {
	if key := strings.TrimSpace(r.Explicit); key != "" {
		return key, SourceConfig
	}

	if r.DotFile != "" {
		// a missing dot-file is normal
		_ = godotenv.Load(r.DotFile)
	}
	if key := strings.TrimSpace(os.Getenv(EnvKey)); key != "" {
		return key, SourceEnv
	}

	if r.Store != nil {
		if key, err := r.Store.Load(); err == nil && key != "" {
			return key, SourceStore
		}
	}
	return "", SourceNone
}

// Update stores a new key and makes it the one resolved for the rest of the
// process
func (r *Resolver) Update(key string) error {
	key = strings.TrimSpace(key)
	if r.Store == nil {
		return errors.New("no credential store configured")
	}
	if err := r.Store.Save(key); err != nil {
		return err
	}
	r.Explicit = ""
	return os.Setenv(EnvKey, key)
}

// Clear removes the stored key and forgets it for the rest of the process
func (r *Resolver) Clear() error {
	r.Explicit = ""
	if err := os.Unsetenv(EnvKey); err != nil {
		return err
	}
	if r.Store == nil {
		return nil
	}
	return r.Store.Clear()
}

// Mask hides all but the last four characters of a key
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
