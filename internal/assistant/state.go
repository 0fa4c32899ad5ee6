// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     assistant
// Description: State machine for one conversation turn
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package assistant

import (
	"sync"
	"time"
)

// State represents the phase of the current turn
type State int

const (
	// StateIdle - Waiting for user input
	StateIdle State = iota

	// StateSending - Chat request in flight
	StateSending

	// StateAwaitingSpeech - Reply shown, speech request in flight
	StateAwaitingSpeech

	// StatePlaying - Clip written and handed to the player
	StatePlaying

	// StateError - The turn failed
	StateError
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Ready"
	case StateSending:
		return "Sending..."
	case StateAwaitingSpeech:
		return "Synthesizing..."
	case StatePlaying:
		return "Playing"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the state
func (s State) Icon() string {
	switch s {
	case StateIdle:
		return "◇"
	case StateSending:
		return "⇡"
	case StateAwaitingSpeech:
		return "≋"
	case StatePlaying:
		return "♪"
	case StateError:
		return "✖"
	default:
		return "?"
	}
}

// validTransitions lists the allowed successors of each state
var validTransitions = map[State][]State{
	StateIdle:           {StateSending},
	StateSending:        {StateAwaitingSpeech, StateError},
	StateAwaitingSpeech: {StatePlaying, StateError},
	StatePlaying:        {StateIdle},
	StateError:          {StateIdle},
}

// StateMachine manages state transitions
type StateMachine struct {
	mu            sync.RWMutex
	currentState  State
	previousState State
	stateTime     time.Time
	listeners     []StateChangeListener
}

// StateChangeListener is called when state changes
type StateChangeListener func(oldState, newState State)

// NewStateMachine creates a new state machine
func NewStateMachine() *StateMachine {
	return &StateMachine{
		currentState: StateIdle,
		stateTime:    time.Now(),
		listeners:    make([]StateChangeListener, 0),
	}
}

// Current returns the current state
func (sm *StateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// Previous returns the previous state
func (sm *StateMachine) Previous() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.previousState
}

// StateDuration returns how long we've been in the current state
func (sm *StateMachine) StateDuration() time.Duration {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return time.Since(sm.stateTime)
}

// Transition changes to a new state. Invalid transitions are refused.
func (sm *StateMachine) Transition(newState State) bool {
	sm.mu.Lock()
	oldState := sm.currentState

	if !isValidTransition(oldState, newState) {
		sm.mu.Unlock()
		return false
	}

	sm.previousState = oldState
	sm.currentState = newState
	sm.stateTime = time.Now()
	listeners := sm.listeners
	sm.mu.Unlock()

	for _, listener := range listeners {
		listener(oldState, newState)
	}

	return true
}

// AddListener adds a state change listener
func (sm *StateMachine) AddListener(listener StateChangeListener) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.listeners = append(sm.listeners, listener)
}

func isValidTransition(from, to State) bool {
	for _, valid := range validTransitions[from] {
		if valid == to {
			return true
		}
	}
	return false
}

// IsBusy returns true while a turn is in flight
func (sm *StateMachine) IsBusy() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState == StateSending || sm.currentState == StateAwaitingSpeech
}
