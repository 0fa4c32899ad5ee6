// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     ninjachat
// Description: Message types and commands for async operations
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package ninjachat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/assistant/client"
	"github.com/msto63/ninjachat/internal/assistant/tts"
)

// Connection is a set of service clients built from one API key
type Connection struct {
	Chat   client.Completer
	Speech tts.Synthesizer
	// Check probes the chat service; nil skips the status check
	Check func(ctx context.Context) error
}

// pipelineEventMsg carries one worker event into the update loop
type pipelineEventMsg struct {
	event  assistant.Event
	closed bool
}

// serviceStatus is the connection indicator state
type serviceStatus int

const (
	statusUnknown serviceStatus = iota
	statusChecking
	statusOnline
	statusOffline
	statusNoKey
)

// statusMsg is sent when the service check finished
type statusMsg struct {
	status serviceStatus
	err    error
}

// noticeExpiredMsg clears a transient notice
type noticeExpiredMsg struct {
	id int
}

// waitForEvent blocks on the worker channel for the next event
func waitForEvent(events <-chan assistant.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return pipelineEventMsg{event: ev, closed: !ok}
	}
}

// checkStatus probes the chat service with a timeout
func checkStatus(conn *Connection, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if conn == nil {
			return statusMsg{status: statusNoKey}
		}
		if conn.Check == nil {
			return statusMsg{status: statusUnknown}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := conn.Check(ctx); err != nil {
			return statusMsg{status: statusOffline, err: err}
		}
		return statusMsg{status: statusOnline}
	}
}

// expireNotice schedules the removal of notice id
func expireNotice(id int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}
