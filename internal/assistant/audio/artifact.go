// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     audio
// Description: Speech artifact files with collision free names
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/msto63/ninjachat/pkg/core/apperr"
)

// maxSuffix bounds the search for a free artifact name
const maxSuffix = 1_000_000

// artifactFile is the part of *os.File the store writes through
type artifactFile interface {
	io.WriteCloser
	Name() string
}

// ArtifactStore writes speech clips into one directory. Complete files are
// never removed.
type ArtifactStore struct {
	dir  string
	base string
	open func(path string) (artifactFile, error)
}

// NewArtifactStore creates a store writing into dir with names derived from
// base, e.g. "response.mp3"
func NewArtifactStore(dir, base string) *ArtifactStore {
	return &ArtifactStore{dir: dir, base: base, open: openExclusive}
}

func openExclusive(path string) (artifactFile, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Dir returns the output directory
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// EnsureDir creates the output directory
func (s *ArtifactStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return apperr.Setup("create audio directory", err)
	}
	return nil
}

// candidate returns the n-th name: base, base_1, base_2, ...
func candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

// create opens the first free name exclusively, so two requests never get
// the same path even before anything is written
func (s *ArtifactStore) create() (artifactFile, error) {
	for n := 0; n < maxSuffix; n++ {
		path := filepath.Join(s.dir, candidate(s.base, n))
		f, err := s.open(path)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no free name for %s in %s", s.base, s.dir)
}

// Write stores data verbatim under the next free name. A partly written
// file is removed so its name stays free.
func (s *ArtifactStore) Write(data []byte) (string, error) {
	f, err := s.create()
	if err != nil {
		return "", apperr.Persistence("create artifact", err)
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", apperr.Persistence("write artifact", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", apperr.Persistence("close artifact", err)
	}
	return path, nil
}
