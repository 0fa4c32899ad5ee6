// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     session
// Description: Append-only conversation history with transcript save/load
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/msto63/ninjachat/pkg/core/apperr"
)

// Speaker tags the origin of a turn
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
	SpeakerSystem    Speaker = "system"
	SpeakerError     Speaker = "error"
)

// Turn is one entry of the history
type Turn struct {
	Speaker   Speaker
	Text      string
	Timestamp time.Time
}

// Labels are the line prefixes used to render turns
type Labels struct {
	User      string
	Assistant string
	Error     string
}

// DefaultLabels returns the stock labels
func DefaultLabels() Labels {
	return Labels{
		User:      "You",
		Assistant: "Cyber Ninja AI",
		Error:     "Error",
	}
}

// Conversation holds the ordered history of one session. It is owned by the
// event loop and is not safe for concurrent use.
type Conversation struct {
	labels   Labels
	turns    []Turn
	onAppend []func(Turn)
	onReset  []func([]Turn)
}

// New creates an empty conversation
func New(labels Labels) *Conversation {
	return &Conversation{labels: labels}
}

// Labels returns the rendering labels
func (c *Conversation) Labels() Labels {
	return c.labels
}

// OnAppend registers fn to be called for every appended turn
func (c *Conversation) OnAppend(fn func(Turn)) {
	c.onAppend = append(c.onAppend, fn)
}

// OnReset registers fn to be called with the full history after a load
func (c *Conversation) OnReset(fn func([]Turn)) {
	c.onReset = append(c.onReset, fn)
}

// Append adds a turn to the end of the history
func (c *Conversation) Append(t Turn) {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	c.turns = append(c.turns, t)
	for _, fn := range c.onAppend {
		fn(t)
	}
}

// AppendUser adds a user turn
func (c *Conversation) AppendUser(text string) {
	c.Append(Turn{Speaker: SpeakerUser, Text: text})
}

// AppendAssistant adds an assistant turn
func (c *Conversation) AppendAssistant(text string) {
	c.Append(Turn{Speaker: SpeakerAssistant, Text: text})
}

// AppendError adds an error turn
func (c *Conversation) AppendError(text string) {
	c.Append(Turn{Speaker: SpeakerError, Text: text})
}

// AppendSystem adds a system notice
func (c *Conversation) AppendSystem(text string) {
	c.Append(Turn{Speaker: SpeakerSystem, Text: text})
}

// Turns returns a copy of the history
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Render formats a turn as a transcript line
func (c *Conversation) Render(t Turn) string {
	switch t.Speaker {
	case SpeakerUser:
		return c.labels.User + ": " + t.Text
	case SpeakerAssistant:
		return c.labels.Assistant + ": " + t.Text
	case SpeakerError:
		return c.labels.Error + ": " + t.Text
	default:
		return t.Text
	}
}

// Lines renders the whole history
func (c *Conversation) Lines() []string {
	lines := make([]string, len(c.turns))
	for i, t := range c.turns {
		lines[i] = c.Render(t)
	}
	return lines
}

// Parse maps a transcript line back to a turn by its label prefix. Lines
// without a known prefix become system turns holding the whole line.
func (c *Conversation) Parse(line string) Turn {
	prefixes := []struct {
		label   string
		speaker Speaker
	}{
		{c.labels.User, SpeakerUser},
		{c.labels.Assistant, SpeakerAssistant},
		{c.labels.Error, SpeakerError},
	}
	for _, p := range prefixes {
		if p.label == "" {
			continue
		}
		if text, ok := strings.CutPrefix(line, p.label+": "); ok {
			return Turn{Speaker: p.speaker, Text: text}
		}
	}
	return Turn{Speaker: SpeakerSystem, Text: line}
}

// Replace swaps the whole history and notifies reset observers
func (c *Conversation) Replace(turns []Turn) {
	c.turns = make([]Turn, len(turns))
	copy(c.turns, turns)
	for _, fn := range c.onReset {
		fn(c.Turns())
	}
}

// transcriptAPI keeps non-ASCII and HTML characters unescaped
var transcriptAPI = sonic.Config{EscapeHTML: false, ValidateString: true}.Froze()

// Save writes the history as a pretty printed JSON array of rendered lines
func (c *Conversation) Save(path string) error {
	data, err := transcriptAPI.MarshalIndent(c.Lines(), "", "  ")
	if err != nil {
		return apperr.Persistence("encode transcript", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperr.Persistence("write transcript", err)
	}
	return nil
}

// turnRecord is the structured transcript form
type turnRecord struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Load replaces the history with the transcript at path. Both the array of
// rendered lines and an array of {speaker, text} objects are accepted. On
// failure the history is left untouched.
func (c *Conversation) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperr.Persistence("read transcript", err)
	}

	turns, err := c.decode(data)
	if err != nil {
		return apperr.Persistence("parse transcript", err)
	}

	c.Replace(turns)
	return nil
}

func (c *Conversation) decode(data []byte) ([]Turn, error) {
	var lines []string
	lineErr := transcriptAPI.Unmarshal(data, &lines)
	if lineErr == nil {
		if lines == nil {
			return nil, errors.New("transcript is not an array")
		}
		turns := make([]Turn, len(lines))
		for i, line := range lines {
			turns[i] = c.Parse(line)
		}
		return turns, nil
	}

	var records []turnRecord
	if err := transcriptAPI.Unmarshal(data, &records); err != nil || records == nil {
		return nil, lineErr
	}
	turns := make([]Turn, len(records))
	for i, r := range records {
		switch r.Speaker {
		case SpeakerUser, SpeakerAssistant, SpeakerSystem, SpeakerError:
		default:
			return nil, fmt.Errorf("entry %d: unknown speaker %q", i, r.Speaker)
		}
		turns[i] = Turn{Speaker: r.Speaker, Text: r.Text}
	}
	return turns, nil
}
