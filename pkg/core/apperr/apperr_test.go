package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(KindRequest, "chat", nil); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"setup", Setup("create audio dir", base), KindSetup},
		{"request", Request("chat", base), KindRequest},
		{"persistence", Persistence("save transcript", base), KindPersistence},
		{"playback", Playback("play", base), KindPlayback},
		{"wrapped", fmt.Errorf("turn failed: %w", Request("speech", base)), KindRequest},
		{"plain", base, KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Format(t *testing.T) {
	err := Request("chat completion", errors.New("status 401"))

	if got := err.Error(); got != "chat completion: status 401" {
		t.Errorf("Error() = %q, want %q", got, "chat completion: status 401")
	}
	if got := Message(err); got != "status 401" {
		t.Errorf("Message() = %q, want %q", got, "status 401")
	}
	if !Is(err, KindRequest) {
		t.Error("Is(err, KindRequest) = false, want true")
	}
}

func TestKind_Severity(t *testing.T) {
	tests := []struct {
		kind Kind
		want Severity
	}{
		{KindSetup, SeverityCritical},
		{KindRequest, SeverityMedium},
		{KindPersistence, SeverityMedium},
		{KindPlayback, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Severity(); got != tt.want {
				t.Errorf("Severity() = %v, want %v", got, tt.want)
			}
		})
	}
}
