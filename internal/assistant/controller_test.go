// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     assistant
// Description: Tests for the turn controller
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package assistant

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/ninjachat/internal/assistant/audio"
	"github.com/msto63/ninjachat/internal/personality"
	"github.com/msto63/ninjachat/internal/session"
	"github.com/msto63/ninjachat/internal/settings"
)

type testRig struct {
	controller *Controller
	chat       *fakeChat
	speech     *fakeSpeech
	player     *audio.Silent
	dir        string
}

func createTestController(t *testing.T, features Features) *testRig {
	t.Helper()
	dir := t.TempDir()
	rig := &testRig{
		chat:   &fakeChat{reply: "All systems nominal."},
		speech: &fakeSpeech{data: []byte("mp3-bytes")},
		player: &audio.Silent{},
		dir:    filepath.Join(dir, "audio"),
	}
	if err := os.MkdirAll(rig.dir, 0755); err != nil {
		t.Fatal(err)
	}

	pipeline := NewPipeline(PipelineConfig{
		Chat:      rig.chat,
		Speech:    rig.speech,
		Artifacts: audio.NewArtifactStore(rig.dir, "response.mp3"),
	})
	rig.controller = NewController(ControllerConfig{
		Features: features,
		Settings: settings.Defaults(),
		Store:    settings.NewStore(filepath.Join(dir, "settings.json")),
		Pipeline: pipeline,
		Player:   rig.player,
		Voice:    "alloy",
	})
	return rig
}

func TestControllerEndToEnd(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	c := rig.controller

	if err := c.RunTurn(context.Background(), "status report"); err != nil {
		t.Fatalf("RunTurn() error = %v", err)
	}

	turns := c.Conversation().Turns()
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Speaker != session.SpeakerUser || turns[0].Text != "status report" {
		t.Errorf("turns[0] = %+v", turns[0])
	}
	if turns[1].Speaker != session.SpeakerAssistant || turns[1].Text != "All systems nominal." {
		t.Errorf("turns[1] = %+v", turns[1])
	}

	if files := audioFiles(t, rig.dir); len(files) != 1 {
		t.Errorf("artifacts = %v, want exactly one", files)
	}
	if rig.player.Plays != 1 {
		t.Errorf("Plays = %d, want 1", rig.player.Plays)
	}
	if rig.player.Volume != c.Settings().Volume {
		t.Errorf("play volume = %v, want %v", rig.player.Volume, c.Settings().Volume)
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %s, want Idle", c.State())
	}
	if !c.InputEnabled() {
		t.Error("input should be re-enabled")
	}
}

func TestControllerChatFailure(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	c := rig.controller
	c.Conversation().AppendAssistant("Welcome.")
	before := c.Conversation().Turns()

	rig.chat.err = errors.New("connection refused")
	err := c.RunTurn(context.Background(), "hello")
	if err == nil {
		t.Fatal("RunTurn() expected error")
	}

	turns := c.Conversation().Turns()
	if len(turns) != len(before)+2 {
		t.Fatalf("len(turns) = %d, want %d", len(turns), len(before)+2)
	}
	for i := range before {
		if turns[i] != before[i] {
			t.Errorf("turn %d changed: %+v -> %+v", i, before[i], turns[i])
		}
	}

	errorTurns := 0
	for _, turn := range turns {
		if turn.Speaker == session.SpeakerError {
			errorTurns++
			if turn.Text != "connection refused" {
				t.Errorf("error text = %q, want %q", turn.Text, "connection refused")
			}
		}
	}
	if errorTurns != 1 {
		t.Errorf("error turns = %d, want 1", errorTurns)
	}

	if !c.InputEnabled() {
		t.Error("input should be re-enabled after failure")
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %s, want Idle", c.State())
	}
	if rig.player.Plays != 0 {
		t.Errorf("Plays = %d, want 0", rig.player.Plays)
	}
	if rig.speech.calls != 0 {
		t.Errorf("speech calls = %d, want 0", rig.speech.calls)
	}
}

func TestControllerSpeechFailureKeepsReply(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	rig.speech.err = errors.New("tts unavailable")

	if err := rig.controller.RunTurn(context.Background(), "hi"); err == nil {
		t.Fatal("RunTurn() expected error")
	}

	turns := rig.controller.Conversation().Turns()
	want := []session.Speaker{session.SpeakerUser, session.SpeakerAssistant, session.SpeakerError}
	if len(turns) != len(want) {
		t.Fatalf("len(turns) = %d, want %d", len(turns), len(want))
	}
	for i, speaker := range want {
		if turns[i].Speaker != speaker {
			t.Errorf("turns[%d].Speaker = %s, want %s", i, turns[i].Speaker, speaker)
		}
	}
}

func TestControllerSubmitGuards(t *testing.T) {
	rig := createTestController(t, BasicFeatures())
	c := rig.controller

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := c.Submit(context.Background(), input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Submit(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
	if c.Conversation().Len() != 0 {
		t.Errorf("blank input changed history: %d turns", c.Conversation().Len())
	}

	events, err := c.Submit(context.Background(), "first")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if c.InputEnabled() {
		t.Error("input should be disabled while a turn runs")
	}
	if c.State() != StateSending {
		t.Errorf("State() = %s, want Sending", c.State())
	}
	if _, err := c.Submit(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("second Submit() error = %v, want ErrBusy", err)
	}

	for ev := range events {
		c.Handle(ev)
	}
	if rig.chat.calls != 1 {
		t.Errorf("chat calls = %d, want 1", rig.chat.calls)
	}
}

func TestControllerRequestByVariant(t *testing.T) {
	tests := []struct {
		name      string
		features  Features
		wantVoice string
		wantSpeed float64
		traits    int
	}{
		{name: "console", features: ConsoleFeatures(), wantVoice: "alloy", wantSpeed: 0, traits: 0},
		{name: "basic", features: BasicFeatures(), wantVoice: "echo", wantSpeed: 0, traits: len(personality.BasicTraits)},
		{name: "enhanced", features: EnhancedFeatures(), wantVoice: "echo", wantSpeed: 1.5, traits: len(personality.AllTraits)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestController(t, tt.features)
			c := rig.controller
			c.Apply(settings.VoiceChanged{Voice: settings.VoiceEcho})
			c.Apply(settings.VoiceSpeedChanged{Speed: 1.5})

			if err := c.RunTurn(context.Background(), "ping"); err != nil {
				t.Fatalf("RunTurn() error = %v", err)
			}
			if rig.speech.lastReq.Voice != tt.wantVoice {
				t.Errorf("voice = %q, want %q", rig.speech.lastReq.Voice, tt.wantVoice)
			}
			if rig.speech.lastReq.Speed != tt.wantSpeed {
				t.Errorf("speed = %v, want %v", rig.speech.lastReq.Speed, tt.wantSpeed)
			}
			if rig.chat.lastMessage != "ping" {
				t.Errorf("message = %q, want ping", rig.chat.lastMessage)
			}
			lines := strings.Count(rig.chat.lastSystem, "\n- ")
			if lines != tt.traits {
				t.Errorf("trait lines = %d, want %d", lines, tt.traits)
			}
		})
	}
}

func TestControllerBasePrompt(t *testing.T) {
	c := NewController(ControllerConfig{
		Features:   ConsoleFeatures(),
		Settings:   settings.Defaults(),
		BasePrompt: "You are a cyber ninja AI assistant.",
	})
	if got := c.SystemPrompt(); got != "You are a cyber ninja AI assistant." {
		t.Errorf("SystemPrompt() = %q", got)
	}
}

func TestControllerApplyVolume(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	rig.controller.Apply(settings.VolumeChanged{Volume: 0.3})

	if rig.controller.Settings().Volume != 0.3 {
		t.Errorf("Volume = %v, want 0.3", rig.controller.Settings().Volume)
	}
	if rig.player.Volume != 0.3 {
		t.Errorf("player volume = %v, want 0.3", rig.player.Volume)
	}
}

func TestControllerSaveSettings(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	c := rig.controller
	c.Apply(settings.TraitChanged{Trait: personality.Humor, Value: 0.9})

	if err := c.SaveSettings(); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	loaded := c.store.Load()
	if loaded.Trait(personality.Humor) != 0.9 {
		t.Errorf("saved humor = %v, want 0.9", loaded.Trait(personality.Humor))
	}
}

func TestControllerTranscript(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	c := rig.controller
	if err := c.RunTurn(context.Background(), "status report"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "chat.json")
	if err := c.SaveTranscript(path); err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}

	other := createTestController(t, EnhancedFeatures()).controller
	if err := other.LoadTranscript(path); err != nil {
		t.Fatalf("LoadTranscript() error = %v", err)
	}
	if got, want := other.Conversation().Lines(), c.Conversation().Lines(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("loaded lines = %v, want %v", got, want)
	}
}

func TestControllerLoadTranscriptFailure(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	c := rig.controller
	c.Conversation().AppendAssistant("Welcome.")

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadTranscript(bad); err == nil {
		t.Fatal("LoadTranscript() expected error")
	}

	turns := c.Conversation().Turns()
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Text != "Welcome." || turns[1].Speaker != session.SpeakerError {
		t.Errorf("turns = %+v", turns)
	}
}

func TestControllerTogglePlaybackIdle(t *testing.T) {
	rig := createTestController(t, EnhancedFeatures())
	paused, err := rig.controller.TogglePlayback()
	if err != nil || paused {
		t.Errorf("TogglePlayback() = %v, %v; want false, nil", paused, err)
	}
	if err := rig.controller.StopPlayback(); err != nil {
		t.Errorf("StopPlayback() error = %v", err)
	}
}

func TestControllerReconfigure(t *testing.T) {
	c := NewController(ControllerConfig{
		Features: EnhancedFeatures(),
		Settings: settings.Defaults(),
		Pipeline: NewPipeline(PipelineConfig{Artifacts: audio.NewArtifactStore(t.TempDir(), "response.mp3")}),
	})
	if c.Configured() {
		t.Fatal("Configured() = true without clients")
	}

	if err := c.RunTurn(context.Background(), "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("RunTurn() error = %v, want ErrNotConfigured", err)
	}

	c.Reconfigure(&fakeChat{reply: "ok"}, &fakeSpeech{data: []byte("x")})
	if !c.Configured() {
		t.Fatal("Configured() = false after Reconfigure")
	}
	if err := c.RunTurn(context.Background(), "hi"); err != nil {
		t.Errorf("RunTurn() error = %v", err)
	}
}

func TestFeaturePresets(t *testing.T) {
	if ConsoleFeatures().PersonalityControls() {
		t.Error("console should have no personality controls")
	}
	basic := BasicFeatures()
	if len(basic.Traits) != 3 || basic.SpeedControl || basic.TranscriptIO || !basic.PlaybackControls {
		t.Errorf("basic features = %+v", basic)
	}
	enhanced := EnhancedFeatures()
	if len(enhanced.Traits) != len(personality.AllTraits) || !enhanced.APIKeyDialog || !enhanced.PlaybackControls {
		t.Errorf("enhanced features = %+v", enhanced)
	}
}
