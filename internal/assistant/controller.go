// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     assistant
// Description: Turn controller owned by the client event loop
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/msto63/ninjachat/internal/assistant/audio"
	"github.com/msto63/ninjachat/internal/assistant/client"
	"github.com/msto63/ninjachat/internal/assistant/tts"
	"github.com/msto63/ninjachat/internal/personality"
	"github.com/msto63/ninjachat/internal/session"
	"github.com/msto63/ninjachat/internal/settings"
	"github.com/msto63/ninjachat/pkg/core/apperr"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

var (
	// ErrEmptyInput is returned for blank submissions
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy is returned while a turn is in flight
	ErrBusy = errors.New("a turn is already in progress")
)

// ControllerConfig wires a controller
type ControllerConfig struct {
	Features     Features
	Settings     settings.Settings
	Store        *settings.Store
	Conversation *session.Conversation
	Pipeline     *Pipeline
	Player       audio.Player

	// BasePrompt replaces the stored custom prompt when set
	BasePrompt string

	// Voice is used when the variant has no stored voice
	Voice string
}

// Controller applies user actions and worker events to the session. It is
// not safe for concurrent use: the event loop of a client owns it and the
// pipeline reaches it only through events.
type Controller struct {
	features     Features
	settings     settings.Settings
	store        *settings.Store
	conversation *session.Conversation
	pipeline     *Pipeline
	player       audio.Player
	basePrompt   string
	voice        string
	state        *StateMachine
	inputEnabled bool
	logger       *logging.Logger
}

// NewController creates a controller in the Idle state with input enabled
func NewController(cfg ControllerConfig) *Controller {
	conversation := cfg.Conversation
	if conversation == nil {
		conversation = session.New(session.DefaultLabels())
	}
	player := cfg.Player
	if player == nil {
		player = &audio.Silent{}
	}
	voice := cfg.Voice
	if voice == "" {
		voice = string(settings.VoiceAlloy)
	}

	return &Controller{
		features:     cfg.Features,
		settings:     cfg.Settings,
		store:        cfg.Store,
		conversation: conversation,
		pipeline:     cfg.Pipeline,
		player:       player,
		basePrompt:   cfg.BasePrompt,
		voice:        voice,
		state:        NewStateMachine(),
		inputEnabled: true,
		logger:       logging.New("controller"),
	}
}

// Features returns the variant feature set
func (c *Controller) Features() Features { return c.features }

// Settings returns the current settings
func (c *Controller) Settings() settings.Settings { return c.settings }

// Conversation returns the session history
func (c *Controller) Conversation() *session.Conversation { return c.conversation }

// State returns the pipeline state
func (c *Controller) State() State { return c.state.Current() }

// StateMachine exposes the state machine for listeners
func (c *Controller) StateMachine() *StateMachine { return c.state }

// InputEnabled reports whether the input control accepts submissions
func (c *Controller) InputEnabled() bool { return c.inputEnabled }

// Player returns the playback backend
func (c *Controller) Player() audio.Player { return c.player }

// Configured reports whether service clients are available
func (c *Controller) Configured() bool {
	return c.pipeline != nil && c.pipeline.Configured()
}

// SystemPrompt renders the prompt sent with the next turn
func (c *Controller) SystemPrompt() string {
	base := c.settings.CustomPrompt
	if c.basePrompt != "" {
		base = c.basePrompt
	}
	return personality.RenderPrompt(base, c.settings.Traits(), c.features.Traits)
}

func (c *Controller) request(text string) Request {
	req := Request{
		SystemPrompt: c.SystemPrompt(),
		Message:      text,
		Voice:        c.voice,
	}
	if c.features.StoredVoice {
		req.Voice = string(c.settings.Voice)
	}
	if c.features.SpeedControl {
		req.Speed = c.settings.VoiceSpeed
	}
	return req
}

// Submit starts a turn for non-empty text. The user turn is appended and
// input is disabled until the turn ends. Events from the returned channel
// must be passed to Handle.
func (c *Controller) Submit(ctx context.Context, text string) (<-chan Event, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if !c.inputEnabled || c.state.Current() != StateIdle {
		return nil, ErrBusy
	}

	c.conversation.AppendUser(text)
	c.inputEnabled = false
	c.state.Transition(StateSending)

	return c.pipeline.Start(ctx, c.request(text)), nil
}

// Handle applies a worker event. It returns true when the turn has ended.
func (c *Controller) Handle(ev Event) bool {
	switch e := ev.(type) {
	case ReplyReceived:
		c.conversation.AppendAssistant(e.Text)
		c.state.Transition(StateAwaitingSpeech)
		return false

	case ArtifactReady:
		c.state.Transition(StatePlaying)
		if err := c.player.Play(e.Path, c.settings.Volume); err != nil {
			c.logger.Warn("Playback failed", "path", e.Path, "error", err)
		}
		c.state.Transition(StateIdle)
		c.inputEnabled = true
		return true

	case TurnFailed:
		c.conversation.AppendError(apperr.Message(e.Err))
		c.state.Transition(StateError)
		c.state.Transition(StateIdle)
		c.inputEnabled = true
		return true
	}
	return false
}

// RunTurn submits text and handles every event of the turn on the calling
// goroutine. It returns the turn error, if any.
func (c *Controller) RunTurn(ctx context.Context, text string) error {
	events, err := c.Submit(ctx, text)
	if err != nil {
		return err
	}

	var turnErr error
	for ev := range events {
		if failed, ok := ev.(TurnFailed); ok {
			turnErr = failed.Err
		}
		c.Handle(ev)
	}
	return turnErr
}

// Apply updates the in-memory settings from a UI control
func (c *Controller) Apply(change settings.Change) {
	c.settings = c.settings.Apply(change)
	if _, ok := change.(settings.VolumeChanged); ok {
		c.player.SetVolume(c.settings.Volume)
	}
}

// SaveSettings persists the current settings. Failures are also reported
// in the transcript.
func (c *Controller) SaveSettings() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Save(c.settings); err != nil {
		c.conversation.AppendError(apperr.Message(err))
		return err
	}
	c.logger.Info("Settings saved", "path", c.store.Path())
	return nil
}

// SaveTranscript writes the history to path
func (c *Controller) SaveTranscript(path string) error {
	if err := c.conversation.Save(path); err != nil {
		c.conversation.AppendError(apperr.Message(err))
		return err
	}
	c.logger.Info("Transcript saved", "path", path)
	return nil
}

// LoadTranscript replaces the history with the file content. The history
// is unchanged, apart from an error turn, when loading fails.
func (c *Controller) LoadTranscript(path string) error {
	if err := c.conversation.Load(path); err != nil {
		c.conversation.AppendError(apperr.Message(err))
		return err
	}
	c.logger.Info("Transcript loaded", "path", path, "turns", c.conversation.Len())
	return nil
}

// TogglePlayback pauses or resumes the current clip and reports whether
// playback is paused afterwards
func (c *Controller) TogglePlayback() (bool, error) {
	if c.player.IsPaused() {
		if err := c.player.Resume(); err != nil {
			return true, apperr.Playback("resume", err)
		}
		return false, nil
	}
	if !c.player.IsPlaying() {
		return false, nil
	}
	if err := c.player.Pause(); err != nil {
		return false, apperr.Playback("pause", err)
	}
	return true, nil
}

// StopPlayback stops the current clip
func (c *Controller) StopPlayback() error {
	if err := c.player.Stop(); err != nil {
		return apperr.Playback("stop", err)
	}
	return nil
}

// Reconfigure swaps the service clients after a credential change
func (c *Controller) Reconfigure(chat client.Completer, speech tts.Synthesizer) {
	c.pipeline.SetClients(chat, speech)
}

// Close stops playback
func (c *Controller) Close() error {
	return c.player.Stop()
}
