// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     audio
// Description: Player abstraction and backend selection
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package audio

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by players that cannot pause
var ErrUnsupported = errors.New("not supported by this player")

// Player plays speech artifacts. Play returns once playback has started;
// the other calls take effect immediately.
type Player interface {
	Play(path string, volume float64) error
	Pause() error
	Resume() error
	Stop() error
	SetVolume(volume float64)
	IsPlaying() bool
	IsPaused() bool
}

// Backend names
const (
	BackendPortAudio = "portaudio"
	BackendCommand   = "command"
	BackendNone      = "none"
)

// Options configures NewPlayer
type Options struct {
	Backend      string
	Command      string
	BufferFrames int
}

// NewPlayer creates the player for the configured backend
func NewPlayer(opts Options) (Player, error) {
	switch opts.Backend {
	case BackendPortAudio, "":
		return NewPlayback(PlaybackConfig{BufferFrames: opts.BufferFrames}), nil
	case BackendCommand:
		return NewCommandPlayer(opts.Command)
	case BackendNone:
		return &Silent{}, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", opts.Backend)
	}
}

// Silent records requests without producing sound
type Silent struct {
	LastPath string
	Volume   float64
	Plays    int
}

func (s *Silent) Play(path string, volume float64) error {
	s.LastPath = path
	s.Volume = volume
	s.Plays++
	return nil
}

func (s *Silent) Pause() error             { return nil }
func (s *Silent) Resume() error            { return nil }
func (s *Silent) Stop() error              { return nil }
func (s *Silent) SetVolume(volume float64) { s.Volume = volume }
func (s *Silent) IsPlaying() bool          { return false }
func (s *Silent) IsPaused() bool           { return false }
