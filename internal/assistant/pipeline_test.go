// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     assistant
// Description: Tests for the turn worker
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
	"testing"

	"github.com/msto63/ninjachat/internal/assistant/audio"
	"github.com/msto63/ninjachat/internal/assistant/tts"
	"github.com/msto63/ninjachat/internal/journal"
)

type fakeChat struct {
	reply       string
	err         error
	calls       int
	lastSystem  string
	lastMessage string
}

func (f *fakeChat) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastMessage = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSpeech struct {
	data    []byte
	err     error
	calls   int
	lastReq tts.Request
}

func (f *fakeSpeech) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeSpeech) Format() string { return "mp3" }
func (f *fakeSpeech) Close() error   { return nil }

type fakeRecorder struct {
	turns []*journal.Turn
	err   error
}

func (f *fakeRecorder) RecordTurn(ctx context.Context, turn *journal.Turn) error {
	f.turns = append(f.turns, turn)
	return f.err
}

func collect(events <-chan Event) []Event {
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func audioFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPipelineSuccess(t *testing.T) {
	dir := t.TempDir()
	chat := &fakeChat{reply: "All systems nominal."}
	speech := &fakeSpeech{data: []byte("ID3-audio")}
	recorder := &fakeRecorder{}

	p := NewPipeline(PipelineConfig{
		Chat:           chat,
		Speech:         speech,
		Artifacts:      audio.NewArtifactStore(dir, "response.mp3"),
		Recorder:       recorder,
		ConversationID: "conv-1",
	})

	events := collect(p.Start(context.Background(), Request{
		SystemPrompt: "system",
		Message:      "status report",
		Voice:        "nova",
		Speed:        1.5,
	}))

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	reply, ok := events[0].(ReplyReceived)
	if !ok || reply.Text != "All systems nominal." {
		t.Errorf("events[0] = %#v, want ReplyReceived", events[0])
	}
	ready, ok := events[1].(ArtifactReady)
	if !ok {
		t.Fatalf("events[1] = %#v, want ArtifactReady", events[1])
	}
	if ready.Path != filepath.Join(dir, "response.mp3") {
		t.Errorf("Path = %q, want response.mp3 in %s", ready.Path, dir)
	}
	if ready.Size != len("ID3-audio") {
		t.Errorf("Size = %d, want %d", ready.Size, len("ID3-audio"))
	}

	if chat.lastSystem != "system" || chat.lastMessage != "status report" {
		t.Errorf("chat got (%q, %q)", chat.lastSystem, chat.lastMessage)
	}
	if speech.lastReq.Text != "All systems nominal." {
		t.Errorf("speech text = %q", speech.lastReq.Text)
	}
	if speech.lastReq.Voice != "nova" || speech.lastReq.Speed != 1.5 {
		t.Errorf("speech voice/speed = %q/%v, want nova/1.5", speech.lastReq.Voice, speech.lastReq.Speed)
	}

	if len(recorder.turns) != 1 {
		t.Fatalf("recorded %d turns, want 1", len(recorder.turns))
	}
	rec := recorder.turns[0]
	if rec.ConversationID != "conv-1" || rec.Reply != "All systems nominal." || rec.ArtifactPath != ready.Path {
		t.Errorf("recorded turn = %+v", rec)
	}
	if rec.Failed() {
		t.Error("recorded turn should not be failed")
	}
}

func TestPipelineFailures(t *testing.T) {
	tests := []struct {
		name      string
		chatErr   error
		speechErr error
		stage     Stage
		events    int
	}{
		{name: "chat", chatErr: errors.New("network down"), stage: StageChat, events: 1},
		{name: "speech", speechErr: errors.New("quota exceeded"), stage: StageSpeech, events: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			recorder := &fakeRecorder{}
			p := NewPipeline(PipelineConfig{
				Chat:           &fakeChat{reply: "ok", err: tt.chatErr},
				Speech:         &fakeSpeech{data: []byte("x"), err: tt.speechErr},
				Artifacts:      audio.NewArtifactStore(dir, "response.mp3"),
				Recorder:       recorder,
				ConversationID: "conv",
			})

			events := collect(p.Start(context.Background(), Request{Message: "hi"}))
			if len(events) != tt.events {
				t.Fatalf("len(events) = %d, want %d", len(events), tt.events)
			}
			failed, ok := events[len(events)-1].(TurnFailed)
			if !ok {
				t.Fatalf("last event = %#v, want TurnFailed", events[len(events)-1])
			}
			if failed.Stage != tt.stage {
				t.Errorf("Stage = %s, want %s", failed.Stage, tt.stage)
			}
			if files := audioFiles(t, dir); len(files) != 0 {
				t.Errorf("artifacts = %v, want none", files)
			}
			if len(recorder.turns) != 1 || !recorder.turns[0].Failed() {
				t.Errorf("expected one failed journal entry, got %+v", recorder.turns)
			}
		})
	}
}

func TestPipelineArtifactFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(PipelineConfig{
		Chat:      &fakeChat{reply: "ok"},
		Speech:    &fakeSpeech{data: []byte("x")},
		Artifacts: audio.NewArtifactStore(filepath.Join(blocker, "audio"), "response.mp3"),
	})

	events := collect(p.Start(context.Background(), Request{Message: "hi"}))
	failed, ok := events[len(events)-1].(TurnFailed)
	if !ok || failed.Stage != StageArtifact {
		t.Errorf("last event = %#v, want artifact failure", events[len(events)-1])
	}
}

func TestPipelineNotConfigured(t *testing.T) {
	p := NewPipeline(PipelineConfig{Artifacts: audio.NewArtifactStore(t.TempDir(), "response.mp3")})
	if p.Configured() {
		t.Error("Configured() = true without clients")
	}

	events := collect(p.Start(context.Background(), Request{Message: "hi"}))
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	failed, ok := events[0].(TurnFailed)
	if !ok || !errors.Is(failed.Err, ErrNotConfigured) {
		t.Errorf("event = %#v, want ErrNotConfigured", events[0])
	}

	p.SetClients(&fakeChat{}, &fakeSpeech{})
	if !p.Configured() {
		t.Error("Configured() = false after SetClients")
	}
}

func TestPipelineRecorderErrorIgnored(t *testing.T) {
	p := NewPipeline(PipelineConfig{
		Chat:           &fakeChat{reply: "ok"},
		Speech:         &fakeSpeech{data: []byte("x")},
		Artifacts:      audio.NewArtifactStore(t.TempDir(), "response.mp3"),
		Recorder:       &fakeRecorder{err: errors.New("disk full")},
		ConversationID: "conv",
	})

	events := collect(p.Start(context.Background(), Request{Message: "hi"}))
	if _, ok := events[len(events)-1].(ArtifactReady); !ok {
		t.Errorf("last event = %#v, want ArtifactReady", events[len(events)-1])
	}
}
