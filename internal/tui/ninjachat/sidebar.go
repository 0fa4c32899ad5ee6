// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     ninjachat
// Description: Sidebar controls bound to settings changes
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package ninjachat

import (
	"fmt"
	"math"
	"strings"

	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/settings"
)

type controlKind int

const (
	kindOption controlKind = iota
	kindSlider
	kindAction
)

type actionID int

const (
	actionNone actionID = iota
	actionEditPrompt
	actionSaveSettings
	actionSaveChat
	actionLoadChat
	actionAPIKey
)

const (
	sliderStep  = 0.05
	sliderWidth = 10
)

// control is one row of the sidebar
type control struct {
	section string
	label   string
	kind    controlKind

	// sliders
	min, max float64
	value    func(settings.Settings) float64
	set      func(float64) settings.Change

	// options
	options []string
	current func(settings.Settings) string
	choose  func(string) settings.Change

	action actionID
}

// buildControls lists the controls a variant offers, top to bottom
func buildControls(f assistant.Features) []control {
	var controls []control

	if f.ThemeControl {
		names := make([]string, len(settings.Themes))
		for i, t := range settings.Themes {
			names[i] = string(t)
		}
		controls = append(controls, control{
			section: "Theme Settings",
			label:   "Theme",
			kind:    kindOption,
			options: names,
			current: func(s settings.Settings) string { return string(s.Theme) },
			choose:  func(v string) settings.Change { return settings.ThemeChanged{Theme: settings.Theme(v)} },
		})
	}

	if f.VoiceControl {
		names := make([]string, len(settings.Voices))
		for i, v := range settings.Voices {
			names[i] = string(v)
		}
		controls = append(controls, control{
			section: "Voice Settings",
			label:   "Voice",
			kind:    kindOption,
			options: names,
			current: func(s settings.Settings) string { return string(s.Voice) },
			choose:  func(v string) settings.Change { return settings.VoiceChanged{Voice: settings.Voice(v)} },
		})
	}

	if f.SpeedControl {
		controls = append(controls, control{
			section: "Voice Settings",
			label:   "Voice Speed",
			kind:    kindSlider,
			min:     settings.MinSpeed,
			max:     settings.MaxSpeed,
			value:   func(s settings.Settings) float64 { return s.VoiceSpeed },
			set:     func(v float64) settings.Change { return settings.VoiceSpeedChanged{Speed: v} },
		})
	}

	if f.VolumeControl {
		controls = append(controls, control{
			section: "Audio",
			label:   "Volume",
			kind:    kindSlider,
			min:     settings.MinUnit,
			max:     settings.MaxUnit,
			value:   func(s settings.Settings) float64 { return s.Volume },
			set:     func(v float64) settings.Change { return settings.VolumeChanged{Volume: v} },
		})
	}

	for _, trait := range f.Traits {
		trait := trait
		controls = append(controls, control{
			section: "Personality Traits",
			label:   trait.Label(),
			kind:    kindSlider,
			min:     settings.MinUnit,
			max:     settings.MaxUnit,
			value:   func(s settings.Settings) float64 { return s.Trait(trait) },
			set: func(v float64) settings.Change {
				return settings.TraitChanged{Trait: trait, Value: v}
			},
		})
	}

	if f.PromptEditor {
		controls = append(controls, control{section: "Custom System Prompt", label: "Edit prompt", kind: kindAction, action: actionEditPrompt})
	}
	if f.TranscriptIO {
		controls = append(controls,
			control{section: "Chat History", label: "Save Chat", kind: kindAction, action: actionSaveChat},
			control{section: "Chat History", label: "Load Chat", kind: kindAction, action: actionLoadChat},
		)
	}
	if f.APIKeyDialog {
		controls = append(controls, control{section: "Credentials", label: "Set API key", kind: kindAction, action: actionAPIKey})
	}
	if f.PersonalityControls() || f.VoiceControl {
		controls = append(controls, control{section: "", label: "Save Settings", kind: kindAction, action: actionSaveSettings})
	}

	return controls
}

// step moves a slider by one step or cycles an option. Actions return nil.
func (c control) step(s settings.Settings, dir int) settings.Change {
	switch c.kind {
	case kindSlider:
		v := c.value(s) + float64(dir)*sliderStep
		v = math.Round(v*100) / 100
		return c.set(v)
	case kindOption:
		idx := 0
		cur := c.current(s)
		for i, o := range c.options {
			if o == cur {
				idx = i
				break
			}
		}
		idx = (idx + dir + len(c.options)) % len(c.options)
		return c.choose(c.options[idx])
	}
	return nil
}

// renderSlider draws a fixed width bar with the numeric value
func renderSlider(st Styles, value, min, max float64) string {
	ratio := 0.0
	if max > min {
		ratio = (value - min) / (max - min)
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * sliderWidth))

	return st.SliderFill.Render(strings.Repeat("█", filled)) +
		st.SliderTrack.Render(strings.Repeat("░", sliderWidth-filled)) +
		fmt.Sprintf(" %.2f", value)
}

// render draws a control row
func (c control) render(st Styles, s settings.Settings, selected bool) string {
	var line string
	switch c.kind {
	case kindSlider:
		line = fmt.Sprintf("%-12s %s", c.label, renderSlider(st, c.value(s), c.min, c.max))
	case kindOption:
		line = fmt.Sprintf("%-12s ◂ %s ▸", c.label, c.current(s))
	default:
		line = "[ " + c.label + " ]"
	}

	if selected {
		return st.ControlSel.Render("▶ " + line)
	}
	return st.Control.Render("  " + line)
}

// renderSidebar draws every control grouped by section
func renderSidebar(st Styles, controls []control, s settings.Settings, selected int, focused bool) string {
	var b strings.Builder
	section := ""
	for i, c := range controls {
		if c.section != section && c.section != "" {
			section = c.section
			b.WriteString(st.Section.Render(section))
			b.WriteString("\n")
		}
		b.WriteString(c.render(st, s, focused && i == selected))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
