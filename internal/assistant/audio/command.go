// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     audio
// Description: Playback through an external OS audio player
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/msto63/ninjachat/pkg/core/apperr"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

// knownPlayers are probed in order when no command is configured
var knownPlayers = []string{"mpv", "afplay", "ffplay", "paplay"}

// CommandPlayer runs an external player per clip. It can stop a clip but
// not pause it.
type CommandPlayer struct {
	mu      sync.Mutex
	command string
	volume  float64
	cmd     *exec.Cmd
	done    chan struct{}
	logger  *logging.Logger
}

// NewCommandPlayer uses command, or the first known player found on PATH
func NewCommandPlayer(command string) (*CommandPlayer, error) {
	if command == "" {
		for _, candidate := range knownPlayers {
			if _, err := exec.LookPath(candidate); err == nil {
				command = candidate
				break
			}
		}
	}
	if command == "" {
		return nil, apperr.New(apperr.KindPlayback, "find audio player",
			"no audio player found. Install mpv (recommended), afplay (macOS), or ffplay")
	}
	if _, err := exec.LookPath(command); err != nil {
		return nil, apperr.Playback("find audio player", err)
	}

	return &CommandPlayer{
		command: command,
		volume:  1,
		logger:  logging.New("playback"),
	}, nil
}

// Command returns the player executable
func (p *CommandPlayer) Command() string {
	return p.command
}

// playerArgs builds the command line for a clip at the given volume
func playerArgs(command, path string, volume float64) []string {
	switch filepath.Base(command) {
	case "mpv":
		return []string{"--no-terminal", "--no-video", "--volume=" + strconv.Itoa(int(volume*100)), path}
	case "afplay":
		return []string{"-v", strconv.FormatFloat(volume, 'f', 2, 64), path}
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", strconv.Itoa(int(volume*100)), path}
	case "paplay":
		return []string{"--volume=" + strconv.Itoa(int(volume*65536)), path}
	default:
		return []string{path}
	}
}

// Play starts the player process and returns without waiting for it
func (p *CommandPlayer) Play(path string, volume float64) error {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = clampVolume(volume)
	cmd := exec.Command(p.command, playerArgs(p.command, path, p.volume)...)
	if err := cmd.Start(); err != nil {
		return apperr.Playback("start player", fmt.Errorf("%s: %w", p.command, err))
	}

	done := make(chan struct{})
	p.cmd = cmd
	p.done = done

	go func() {
		defer close(done)
		if err := cmd.Wait(); err != nil {
			p.logger.Debug("Player exited", "command", p.command, "error", err)
		}
		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
		}
		p.mu.Unlock()
	}()

	return nil
}

// Pause is not available for external players
func (p *CommandPlayer) Pause() error {
	return ErrUnsupported
}

// Resume is not available for external players
func (p *CommandPlayer) Resume() error {
	return ErrUnsupported
}

// Stop kills the running player
func (p *CommandPlayer) Stop() error {
	p.mu.Lock()
	cmd, done := p.cmd, p.done
	p.cmd, p.done = nil, nil
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return apperr.Playback("stop player", err)
	}
	<-done
	return nil
}

// SetVolume applies to the next clip
func (p *CommandPlayer) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(volume)
}

// IsPlaying reports whether a player process is running
func (p *CommandPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// IsPaused is always false
func (p *CommandPlayer) IsPaused() bool {
	return false
}
