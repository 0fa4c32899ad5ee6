// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     personality
// Description: Personality traits and system prompt rendering
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package personality

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Trait names a numeric personality slider
type Trait string

// Traits in declaration order. The order is part of the rendered prompt.
const (
	Formality  Trait = "formality"
	TechLevel  Trait = "tech_level"
	Humor      Trait = "humor"
	Creativity Trait = "creativity"
	Empathy    Trait = "empathy"
	Efficiency Trait = "efficiency"
)

var (
	// AllTraits is the full trait set of the enhanced client
	AllTraits = []Trait{Formality, TechLevel, Humor, Creativity, Empathy, Efficiency}

	// BasicTraits is the subset exposed by the basic client
	BasicTraits = []Trait{Formality, TechLevel, Humor}
)

// Values maps traits to their slider values
type Values map[Trait]float64

// Label returns the human readable trait name, e.g. "Tech Level"
func (t Trait) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

// Valid reports whether t is one of the declared traits
func (t Trait) Valid() bool {
	for _, known := range AllTraits {
		if t == known {
			return true
		}
	}
	return false
}

// RenderPrompt appends the listing of the given traits to base. Each line
// reads "- <Label>: <value>" with one decimal. Values are not validated.
// An empty trait list returns base unchanged.
func RenderPrompt(base string, values Values, traits []Trait) string {
	if len(traits) == 0 {
		return base
	}

	lines := make([]string, 0, len(traits))
	for _, t := range traits {
		lines = append(lines, fmt.Sprintf("- %s: %.1f", t.Label(), values[t]))
	}

	return base + "\n\nPersonality Traits:\n" + strings.Join(lines, "\n")
}
