// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     tts
// Description: Text-to-speech interface and hosted OpenAI implementation
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package tts

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/msto63/ninjachat/pkg/core/apperr"
)

// Request describes one clip
type Request struct {
	// Text is the input to speak
	Text string

	// Voice overrides the configured voice when set
	Voice string

	// Speed overrides the configured speed when non-zero (1.0 = normal)
	Speed float64
}

// Synthesizer is the interface for text-to-speech engines
type Synthesizer interface {
	// Synthesize converts text to encoded audio bytes
	Synthesize(ctx context.Context, req Request) ([]byte, error)

	// Format returns the audio container of the produced bytes, e.g. "mp3"
	Format() string

	// Close releases resources
	Close() error
}

// Config holds TTS configuration
type Config struct {
	// Model is the speech model
	Model string

	// Voice is the default voice
	Voice string

	// Format is the response container
	Format string

	// Speed is the default speech speed, 0 leaves it to the service
	Speed float64
}

// DefaultConfig returns default TTS configuration
func DefaultConfig() Config {
	return Config{
		Model:  string(openai.TTSModel1),
		Voice:  string(openai.VoiceAlloy),
		Format: string(openai.SpeechResponseFormatMp3),
	}
}

// OpenAISpeech synthesizes speech with the hosted audio/speech endpoint
type OpenAISpeech struct {
	api *openai.Client
	cfg Config
}

// NewOpenAISpeech creates a synthesizer on a shared go-openai client
func NewOpenAISpeech(api *openai.Client, cfg Config) *OpenAISpeech {
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Voice == "" {
		cfg.Voice = def.Voice
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	return &OpenAISpeech{api: api, cfg: cfg}
}

// Synthesize returns the clip bytes exactly as the service sent them
func (s *OpenAISpeech) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	if req.Text == "" {
		return nil, apperr.Request("speech synthesis", errors.New("empty input text"))
	}

	voice := req.Voice
	if voice == "" {
		voice = s.cfg.Voice
	}
	speed := req.Speed
	if speed == 0 {
		speed = s.cfg.Speed
	}

	resp, err := s.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.cfg.Model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormat(s.cfg.Format),
		Speed:          speed,
	})
	if err != nil {
		return nil, apperr.Request("speech synthesis", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, apperr.Request("read speech", err)
	}
	if len(data) == 0 {
		return nil, apperr.Request("speech synthesis", errors.New("empty audio response"))
	}
	return data, nil
}

// Format returns the configured response container
func (s *OpenAISpeech) Format() string {
	return s.cfg.Format
}

// Close releases resources
func (s *OpenAISpeech) Close() error {
	return nil
}
