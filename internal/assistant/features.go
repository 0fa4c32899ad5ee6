// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     assistant
// Description: Feature sets that distinguish the client variants
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package assistant

import "github.com/msto63/ninjachat/internal/personality"

// Variant names a client flavor
type Variant string

const (
	VariantConsole  Variant = "console"
	VariantBasic    Variant = "basic"
	VariantEnhanced Variant = "enhanced"
)

// Features selects which optional controls a client offers. All variants
// share the same pipeline and controller.
type Features struct {
	Variant Variant

	// Traits rendered into the system prompt, in order. Empty means the
	// base prompt is sent as is.
	Traits []personality.Trait

	// StoredVoice uses the voice and speed from the settings instead of
	// the fixed console voice
	StoredVoice bool

	VoiceControl     bool
	SpeedControl     bool
	VolumeControl    bool
	ThemeControl     bool
	PromptEditor     bool
	TranscriptIO     bool
	APIKeyDialog     bool
	PlaybackControls bool
	Welcome          bool
}

// ConsoleFeatures is the stdin client: fixed prompt, fixed voice
func ConsoleFeatures() Features {
	return Features{
		Variant: VariantConsole,
	}
}

// BasicFeatures is the small terminal UI with three personality sliders
func BasicFeatures() Features {
	return Features{
		Variant:          VariantBasic,
		Traits:           personality.BasicTraits,
		StoredVoice:      true,
		VoiceControl:     true,
		PlaybackControls: true,
		Welcome:          true,
	}
}

// EnhancedFeatures is the full terminal UI
func EnhancedFeatures() Features {
	return Features{
		Variant:          VariantEnhanced,
		Traits:           personality.AllTraits,
		StoredVoice:      true,
		VoiceControl:     true,
		SpeedControl:     true,
		VolumeControl:    true,
		ThemeControl:     true,
		PromptEditor:     true,
		TranscriptIO:     true,
		APIKeyDialog:     true,
		PlaybackControls: true,
		Welcome:          true,
	}
}

// PersonalityControls reports whether trait sliders are shown
func (f Features) PersonalityControls() bool {
	return len(f.Traits) > 0
}
