// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     console
// Description: Line oriented chat session on stdin/stdout
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/session"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

// ExitCommand ends the session; case and surrounding space are ignored
const ExitCommand = "exit"

// Config holds console I/O
type Config struct {
	In  io.Reader
	Out io.Writer
}

// Console runs the console variant on top of a controller
type Console struct {
	controller *assistant.Controller
	in         io.Reader
	out        io.Writer
	name       string
	logger     *logging.Logger
}

// New creates a console and subscribes it to the conversation so replies
// and errors are printed as they are appended
func New(controller *assistant.Controller, cfg Config) *Console {
	c := &Console{
		controller: controller,
		in:         cfg.In,
		out:        cfg.Out,
		name:       controller.Conversation().Labels().Assistant,
		logger:     logging.New("console"),
	}
	controller.Conversation().OnAppend(c.print)
	return c
}

// IsExit reports whether a line ends the session
func IsExit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), ExitCommand)
}

func (c *Console) print(turn session.Turn) {
	switch turn.Speaker {
	case session.SpeakerAssistant:
		fmt.Fprintf(c.out, "\n%s\n", c.controller.Conversation().Render(turn))
	case session.SpeakerError:
		fmt.Fprintf(c.out, "\n%s: An error occurred: %s\n", c.name, turn.Text)
		fmt.Fprintln(c.out, "Continuing operation...")
	}
}

// readLines scans input until it ends or done closes. A Scan blocked on
// the terminal returns with the next line or EOF.
func (c *Console) readLines(done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			c.logger.Warn("Reading input failed", "error", err)
		}
	}()
	return lines
}

// Run reads lines until exit, end of input or ctx cancellation. Each
// non-empty line runs one turn.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintf(c.out, "%s: Online. Type '%s' to terminate session.\n", c.name, ExitCommand)
	done := make(chan struct{})
	defer close(done)
	lines := c.readLines(done)

	for {
		fmt.Fprint(c.out, "\nYou: ")

		var line string
		select {
		case <-ctx.Done():
			c.interrupted()
			return nil
		case l, ok := <-lines:
			if !ok {
				c.goodbye()
				return nil
			}
			line = l
		}

		if IsExit(line) {
			c.goodbye()
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !c.turn(ctx, line) {
			c.interrupted()
			return nil
		}
	}
}

// turn runs one turn and returns false when interrupted. A started turn is
// not cancelled; an interrupt abandons it.
func (c *Console) turn(ctx context.Context, line string) bool {
	events, err := c.controller.Submit(context.WithoutCancel(ctx), line)
	if err != nil {
		c.logger.Warn("Submit rejected", "error", err)
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return true
			}
			c.controller.Handle(ev)
		}
	}
}

func (c *Console) goodbye() {
	fmt.Fprintf(c.out, "%s: Terminating session. Goodbye.\n", c.name)
}

func (c *Console) interrupted() {
	fmt.Fprintf(c.out, "\n%s: Detected interrupt signal. Shutting down gracefully.\n", c.name)
}
