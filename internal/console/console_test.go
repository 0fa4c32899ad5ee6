// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     console
// Description: Tests for the console session
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/assistant/audio"
	"github.com/msto63/ninjachat/internal/assistant/tts"
	"github.com/msto63/ninjachat/internal/settings"
)

type stubChat struct {
	reply string
	err   error
	calls int
}

func (s *stubChat) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	s.calls++
	return s.reply, s.err
}

type stubSpeech struct{}

func (stubSpeech) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	return []byte("audio"), nil
}
func (stubSpeech) Format() string { return "mp3" }
func (stubSpeech) Close() error   { return nil }

func createTestConsole(t *testing.T, chat *stubChat, input io.Reader) (*Console, *assistant.Controller, *audio.Silent, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	player := &audio.Silent{}
	controller := assistant.NewController(assistant.ControllerConfig{
		Features: assistant.ConsoleFeatures(),
		Settings: settings.Defaults(),
		Pipeline: assistant.NewPipeline(assistant.PipelineConfig{
			Chat:      chat,
			Speech:    stubSpeech{},
			Artifacts: audio.NewArtifactStore(dir, "response.mp3"),
		}),
		Player:     player,
		BasePrompt: "You are a cyber ninja AI assistant.",
		Voice:      "alloy",
	})
	out := &bytes.Buffer{}
	return New(controller, Config{In: input, Out: out}), controller, player, out, dir
}

func TestIsExit(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"exit", true},
		{"EXIT", true},
		{"  Exit  ", true},
		{"exit now", false},
		{"", false},
		{"quit", false},
	}
	for _, tt := range tests {
		if got := IsExit(tt.line); got != tt.want {
			t.Errorf("IsExit(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestConsoleSession(t *testing.T) {
	chat := &stubChat{reply: "All systems nominal."}
	c, controller, player, out, dir := createTestConsole(t, chat, strings.NewReader("status report\n\nEXIT\nignored\n"))

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Cyber Ninja AI: Online. Type 'exit' to terminate session.",
		"Cyber Ninja AI: All systems nominal.",
		"Cyber Ninja AI: Terminating session. Goodbye.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	if chat.calls != 1 {
		t.Errorf("chat calls = %d, want 1", chat.calls)
	}
	if player.Plays != 1 {
		t.Errorf("Plays = %d, want 1", player.Plays)
	}
	if controller.Conversation().Len() != 2 {
		t.Errorf("history length = %d, want 2", controller.Conversation().Len())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("artifacts = %d, want 1", len(entries))
	}
}

func TestConsoleContinuesAfterError(t *testing.T) {
	chat := &stubChat{err: errors.New("rate limited")}
	c, controller, _, out, _ := createTestConsole(t, chat, strings.NewReader("one\ntwo\n"))

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	text := out.String()
	if strings.Count(text, "An error occurred: rate limited") != 2 {
		t.Errorf("expected two error reports:\n%s", text)
	}
	if !strings.Contains(text, "Continuing operation...") {
		t.Errorf("output missing continuation notice:\n%s", text)
	}
	if !strings.Contains(text, "Terminating session. Goodbye.") {
		t.Errorf("end of input should end the session:\n%s", text)
	}
	if !controller.InputEnabled() {
		t.Error("input should be enabled after failures")
	}
}

func TestConsoleInterrupt(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	c, _, _, out, _ := createTestConsole(t, &stubChat{reply: "ok"}, reader)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Detected interrupt signal. Shutting down gracefully.") {
		t.Errorf("output missing interrupt notice:\n%s", out.String())
	}
}

// endlessInput never runs out of lines
type endlessInput struct{}

func (endlessInput) Read(p []byte) (int, error) {
	for i := range p {
		if i%5 == 4 {
			p[i] = '\n'
		} else {
			p[i] = 'x'
		}
	}
	return len(p), nil
}

func TestReadLinesStopsWhenDone(t *testing.T) {
	c, _, _, _, _ := createTestConsole(t, &stubChat{reply: "ok"}, endlessInput{})

	done := make(chan struct{})
	lines := c.readLines(done)
	if line := <-lines; line != "xxxx" {
		t.Fatalf("first line = %q, want xxxx", line)
	}
	close(done)

	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("reader goroutine still running after done closed")
		}
	}
}
