// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     settings
// Description: User adjustable settings and their change events
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package settings

import (
	"github.com/msto63/ninjachat/internal/personality"
)

// Theme selects the color scheme
type Theme string

const (
	ThemeSystem Theme = "System"
	ThemeDark   Theme = "Dark"
	ThemeLight  Theme = "Light"
)

// Themes lists the selectable themes in display order
var Themes = []Theme{ThemeSystem, ThemeDark, ThemeLight}

// Voice names a speech synthesis voice
type Voice string

const (
	VoiceAlloy   Voice = "alloy"
	VoiceEcho    Voice = "echo"
	VoiceFable   Voice = "fable"
	VoiceOnyx    Voice = "onyx"
	VoiceNova    Voice = "nova"
	VoiceShimmer Voice = "shimmer"
)

// Voices lists the selectable voices in display order
var Voices = []Voice{VoiceAlloy, VoiceEcho, VoiceFable, VoiceOnyx, VoiceNova, VoiceShimmer}

// Control ranges
const (
	MinSpeed  = 0.5
	MaxSpeed  = 2.0
	MinUnit   = 0.0
	MaxUnit   = 1.0
	keysTotal = 11
)

// DefaultPrompt is the base system prompt until the user edits it
const DefaultPrompt = "You are a cyber ninja AI assistant. Maintain the cyber ninja theme while adjusting to the personality traits."

// Settings holds every user adjustable value. All keys are always present.
type Settings struct {
	Theme        Theme   `json:"theme"`
	Voice        Voice   `json:"voice"`
	VoiceSpeed   float64 `json:"voice_speed"`
	Volume       float64 `json:"volume"`
	Formality    float64 `json:"formality"`
	TechLevel    float64 `json:"tech_level"`
	Humor        float64 `json:"humor"`
	Creativity   float64 `json:"creativity"`
	Empathy      float64 `json:"empathy"`
	Efficiency   float64 `json:"efficiency"`
	CustomPrompt string  `json:"custom_prompt"`
}

// keys are the persisted key names, all required on load
var keys = [keysTotal]string{
	"theme", "voice", "voice_speed", "volume",
	"formality", "tech_level", "humor", "creativity", "empathy", "efficiency",
	"custom_prompt",
}

// Defaults returns the documented default settings
func Defaults() Settings {
	return Settings{
		Theme:        ThemeSystem,
		Voice:        VoiceAlloy,
		VoiceSpeed:   1.0,
		Volume:       0.7,
		Formality:    0.7,
		TechLevel:    0.8,
		Humor:        0.3,
		Creativity:   0.6,
		Empathy:      0.5,
		Efficiency:   0.7,
		CustomPrompt: DefaultPrompt,
	}
}

// Traits returns the personality slider values
func (s Settings) Traits() personality.Values {
	return personality.Values{
		personality.Formality:  s.Formality,
		personality.TechLevel:  s.TechLevel,
		personality.Humor:      s.Humor,
		personality.Creativity: s.Creativity,
		personality.Empathy:    s.Empathy,
		personality.Efficiency: s.Efficiency,
	}
}

// Trait returns the value of a single trait
func (s Settings) Trait(t personality.Trait) float64 {
	return s.Traits()[t]
}

func (s *Settings) setTrait(t personality.Trait, v float64) {
	switch t {
	case personality.Formality:
		s.Formality = v
	case personality.TechLevel:
		s.TechLevel = v
	case personality.Humor:
		s.Humor = v
	case personality.Creativity:
		s.Creativity = v
	case personality.Empathy:
		s.Empathy = v
	case personality.Efficiency:
		s.Efficiency = v
	}
}

// Valid reports whether the theme is selectable
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Valid reports whether the voice is selectable
func (v Voice) Valid() bool {
	for _, known := range Voices {
		if v == known {
			return true
		}
	}
	return false
}

// Change is a typed settings control event
type Change interface {
	apply(*Settings)
}

// ThemeChanged selects a theme
type ThemeChanged struct{ Theme Theme }

// VoiceChanged selects a voice
type VoiceChanged struct{ Voice Voice }

// VoiceSpeedChanged moves the speech speed slider
type VoiceSpeedChanged struct{ Speed float64 }

// VolumeChanged moves the volume slider
type VolumeChanged struct{ Volume float64 }

// TraitChanged moves a personality slider
type TraitChanged struct {
	Trait personality.Trait
	Value float64
}

// CustomPromptChanged replaces the base system prompt
type CustomPromptChanged struct{ Prompt string }

func (c ThemeChanged) apply(s *Settings) {
	if c.Theme.Valid() {
		s.Theme = c.Theme
	}
}

func (c VoiceChanged) apply(s *Settings) {
	if c.Voice.Valid() {
		s.Voice = c.Voice
	}
}

func (c VoiceSpeedChanged) apply(s *Settings) {
	s.VoiceSpeed = clamp(c.Speed, MinSpeed, MaxSpeed)
}

func (c VolumeChanged) apply(s *Settings) {
	s.Volume = clamp(c.Volume, MinUnit, MaxUnit)
}

func (c TraitChanged) apply(s *Settings) {
	s.setTrait(c.Trait, clamp(c.Value, MinUnit, MaxUnit))
}

func (c CustomPromptChanged) apply(s *Settings) {
	s.CustomPrompt = c.Prompt
}

// Apply returns the settings with the change applied. Slider changes are
// clamped to the control range, unknown voices and themes are ignored.
func (s Settings) Apply(c Change) Settings {
	if c == nil {
		return s
	}
	c.apply(&s)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
