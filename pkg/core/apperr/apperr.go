// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     apperr
// Description: Error kinds shared by all components
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package apperr classifies failures so that each boundary can decide
// whether to abort, show the error in the transcript, fall back to defaults
// or only log it.
package apperr

import (
	"errors"
	"fmt"
)

// Kind represents the category of a failure
type Kind string

const (
	// KindUnknown is reported for errors that were never classified
	KindUnknown Kind = "UNKNOWN"

	// KindSetup covers directory and permission failures during startup
	KindSetup Kind = "SETUP"

	// KindRequest covers chat or speech service failures
	KindRequest Kind = "REQUEST"

	// KindPersistence covers settings, transcript and journal I/O
	KindPersistence Kind = "PERSISTENCE"

	// KindPlayback covers audio output failures
	KindPlayback Kind = "PLAYBACK"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// Severity represents how a failure affects the process
type Severity int

const (
	// SeverityLow failures are logged only
	SeverityLow Severity = iota
	// SeverityMedium failures are shown to the user
	SeverityMedium
	// SeverityCritical failures abort startup
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Severity returns the default severity of the kind
func (k Kind) Severity() Severity {
	switch k {
	case KindSetup:
		return SeverityCritical
	case KindPlayback:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// Error is a classified error with the operation that produced it
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error from a message
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Err: errors.New(message)}
}

// Wrap classifies err. It returns nil when err is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Setup wraps err as a setup failure
func Setup(op string, err error) error { return Wrap(KindSetup, op, err) }

// Request wraps err as a service request failure
func Request(op string, err error) error { return Wrap(KindRequest, op, err) }

// Persistence wraps err as a persistence failure
func Persistence(op string, err error) error { return Wrap(KindPersistence, op, err) }

// Playback wraps err as a playback failure
func Playback(op string, err error) error { return Wrap(KindPlayback, op, err) }

// KindOf returns the kind of the outermost classified error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the innermost message, without operation prefixes, for
// display in the transcript
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	for errors.As(err, &e) {
		err = e.Err
	}
	return err.Error()
}
