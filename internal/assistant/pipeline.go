// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     assistant
// Description: Turn worker: chat request, speech request, artifact write
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/msto63/ninjachat/internal/assistant/audio"
	"github.com/msto63/ninjachat/internal/assistant/client"
	"github.com/msto63/ninjachat/internal/assistant/tts"
	"github.com/msto63/ninjachat/internal/journal"
	"github.com/msto63/ninjachat/pkg/core/apperr"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

// ErrNotConfigured is reported when a turn starts without service clients
var ErrNotConfigured = errors.New("API key not configured")

// Request is the input of one turn
type Request struct {
	SystemPrompt string
	Message      string
	Voice        string
	Speed        float64
}

// Event is sent from the worker to the event loop
type Event interface {
	isEvent()
}

// ReplyReceived carries the assistant reply
type ReplyReceived struct {
	Text string
}

// ArtifactReady carries the written speech clip. It ends the turn.
type ArtifactReady struct {
	Path string
	Size int
}

// Stage names the step that failed
type Stage string

const (
	StageChat     Stage = "chat"
	StageSpeech   Stage = "speech"
	StageArtifact Stage = "artifact"
)

// TurnFailed carries the failure of any step. It ends the turn.
type TurnFailed struct {
	Stage Stage
	Err   error
}

func (ReplyReceived) isEvent() {}
func (ArtifactReady) isEvent() {}
func (TurnFailed) isEvent()    {}

// Recorder stores finished turns
type Recorder interface {
	RecordTurn(ctx context.Context, turn *journal.Turn) error
}

// PipelineConfig holds the collaborators of a pipeline
type PipelineConfig struct {
	Chat           client.Completer
	Speech         tts.Synthesizer
	Artifacts      *audio.ArtifactStore
	Recorder       Recorder
	ConversationID string
}

// Pipeline runs turns on a worker goroutine
type Pipeline struct {
	chat           client.Completer
	speech         tts.Synthesizer
	artifacts      *audio.ArtifactStore
	recorder       Recorder
	conversationID string
	logger         *logging.Logger
}

// NewPipeline creates a pipeline. Chat and Speech may be nil until a
// credential is available; turns then fail with ErrNotConfigured.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		chat:           cfg.Chat,
		speech:         cfg.Speech,
		artifacts:      cfg.Artifacts,
		recorder:       cfg.Recorder,
		conversationID: cfg.ConversationID,
		logger:         logging.New("pipeline"),
	}
}

// SetClients swaps the service clients. Call it only between turns.
func (p *Pipeline) SetClients(chat client.Completer, speech tts.Synthesizer) {
	p.chat = chat
	p.speech = speech
}

// Configured reports whether both service clients are present
func (p *Pipeline) Configured() bool {
	return p.chat != nil && p.speech != nil
}

// Start runs one turn on a new goroutine. The returned channel delivers
// ReplyReceived on success of the chat call, then exactly one terminal
// event (ArtifactReady or TurnFailed), and is closed afterwards.
func (p *Pipeline) Start(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, 2)
	chat, speech := p.chat, p.speech

	go func() {
		defer close(events)
		p.run(ctx, chat, speech, req, events)
	}()

	return events
}

func (p *Pipeline) run(ctx context.Context, chat client.Completer, speech tts.Synthesizer, req Request, events chan<- Event) {
	record := &journal.Turn{
		ConversationID: p.conversationID,
		UserText:       req.Message,
		Voice:          req.Voice,
		StartedAt:      time.Now(),
	}
	defer p.record(ctx, record)

	fail := func(stage Stage, err error) {
		p.logger.Error("Turn failed", "stage", stage, "error", err)
		record.Error = err.Error()
		events <- TurnFailed{Stage: stage, Err: err}
	}

	if chat == nil || speech == nil {
		fail(StageChat, apperr.Wrap(apperr.KindRequest, "", ErrNotConfigured))
		return
	}

	p.logger.Debug("Sending chat request", "chars", len(req.Message))
	reply, err := chat.Complete(ctx, req.SystemPrompt, req.Message)
	if err != nil {
		fail(StageChat, err)
		return
	}
	record.Reply = reply
	events <- ReplyReceived{Text: reply}

	data, err := speech.Synthesize(ctx, tts.Request{Text: reply, Voice: req.Voice, Speed: req.Speed})
	if err != nil {
		fail(StageSpeech, err)
		return
	}

	path, err := p.artifacts.Write(data)
	if err != nil {
		fail(StageArtifact, err)
		return
	}
	record.ArtifactPath = path

	p.logger.Info("Turn completed", "artifact", path, "bytes", len(data),
		"duration", time.Since(record.StartedAt).String())
	events <- ArtifactReady{Path: path, Size: len(data)}
}

// record writes the turn to the journal; failures are only logged
func (p *Pipeline) record(ctx context.Context, turn *journal.Turn) {
	if p.recorder == nil || p.conversationID == "" {
		return
	}
	turn.FinishedAt = time.Now()
	if err := p.recorder.RecordTurn(ctx, turn); err != nil {
		p.logger.Warn("Failed to record turn", "error", err)
	}
}
