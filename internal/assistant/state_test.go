package assistant

import "testing"

func TestStateMachine_HappyPath(t *testing.T) {
	sm := NewStateMachine()

	var seen []State
	sm.AddListener(func(_, newState State) {
		seen = append(seen, newState)
	})

	for _, next := range []State{StateSending, StateAwaitingSpeech, StatePlaying, StateIdle} {
		if !sm.Transition(next) {
			t.Fatalf("Transition(%v) from %v refused", next, sm.Current())
		}
	}

	want := []State{StateSending, StateAwaitingSpeech, StatePlaying, StateIdle}
	if len(seen) != len(want) {
		t.Fatalf("listener saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, seen[i], want[i])
		}
	}
	if sm.Previous() != StatePlaying {
		t.Errorf("Previous() = %v, want Playing", sm.Previous())
	}
}

func TestStateMachine_Transitions(t *testing.T) {
	tests := []struct {
		from  State
		to    State
		valid bool
	}{
		{StateIdle, StateSending, true},
		{StateIdle, StatePlaying, false},
		{StateIdle, StateError, false},
		{StateSending, StateAwaitingSpeech, true},
		{StateSending, StateError, true},
		{StateSending, StateIdle, false},
		{StateAwaitingSpeech, StatePlaying, true},
		{StateAwaitingSpeech, StateError, true},
		{StatePlaying, StateIdle, true},
		{StatePlaying, StateError, false},
		{StateError, StateIdle, true},
		{StateError, StateSending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := isValidTransition(tt.from, tt.to); got != tt.valid {
				t.Errorf("isValidTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.valid)
			}
		})
	}
}

func TestStateMachine_RefusedTransitionKeepsState(t *testing.T) {
	sm := NewStateMachine()

	if sm.Transition(StatePlaying) {
		t.Fatal("Idle -> Playing should be refused")
	}
	if sm.Current() != StateIdle {
		t.Errorf("Current() = %v, want Idle", sm.Current())
	}
}

func TestStateMachine_IsBusy(t *testing.T) {
	sm := NewStateMachine()
	if sm.IsBusy() {
		t.Error("Idle should not be busy")
	}
	sm.Transition(StateSending)
	if !sm.IsBusy() {
		t.Error("Sending should be busy")
	}
	sm.Transition(StateError)
	if sm.IsBusy() {
		t.Error("Error should not be busy")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Ready"},
		{StateSending, "Sending..."},
		{StateAwaitingSpeech, "Synthesizing..."},
		{StatePlaying, "Playing"},
		{StateError, "Error"},
		{State(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
		if tt.state.Icon() == "" {
			t.Errorf("State(%d).Icon() is empty", tt.state)
		}
	}
}
