// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     ninjachat
// Description: Dark and light styles for the terminal UI
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package ninjachat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ninjachat/internal/settings"
)

// Palette holds the colors of one theme
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Dimmed    lipgloss.Color
	Panel     lipgloss.Color
	Selected  lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
}

var (
	darkPalette = Palette{
		Primary:   lipgloss.Color("#22D3EE"), // Cyan
		Secondary: lipgloss.Color("#A855F7"), // Purple
		Accent:    lipgloss.Color("#F59E0B"), // Amber
		Success:   lipgloss.Color("#10B981"), // Emerald
		Error:     lipgloss.Color("#EF4444"), // Red
		Dimmed:    lipgloss.Color("#374151"), // Dark Gray
		Panel:     lipgloss.Color("#1E293B"), // Slate 800
		Selected:  lipgloss.Color("#164E63"), // Cyan 900
		Text:      lipgloss.Color("#F8FAFC"), // Slate 50
		TextMuted: lipgloss.Color("#94A3B8"), // Slate 400
	}

	lightPalette = Palette{
		Primary:   lipgloss.Color("#0E7490"), // Cyan 700
		Secondary: lipgloss.Color("#7E22CE"), // Purple 700
		Accent:    lipgloss.Color("#B45309"), // Amber 700
		Success:   lipgloss.Color("#047857"), // Emerald 700
		Error:     lipgloss.Color("#B91C1C"), // Red 700
		Dimmed:    lipgloss.Color("#CBD5E1"), // Slate 300
		Panel:     lipgloss.Color("#E2E8F0"), // Slate 200
		Selected:  lipgloss.Color("#CFFAFE"), // Cyan 100
		Text:      lipgloss.Color("#0F172A"), // Slate 900
		TextMuted: lipgloss.Color("#475569"), // Slate 600
	}
)

// Styles are the rendered styles of one theme
type Styles struct {
	Dark bool

	Title       lipgloss.Style
	TitlePanel  lipgloss.Style
	ChatPanel   lipgloss.Style
	Sidebar     lipgloss.Style
	SidebarOn   lipgloss.Style
	Input       lipgloss.Style
	InputOn     lipgloss.Style
	Dialog      lipgloss.Style
	StatusBar   lipgloss.Style
	Section     lipgloss.Style
	Control     lipgloss.Style
	ControlSel  lipgloss.Style
	UserLabel   lipgloss.Style
	AssistLabel lipgloss.Style
	ErrorText   lipgloss.Style
	SystemText  lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Online      lipgloss.Style
	Offline     lipgloss.Style
	Busy        lipgloss.Style
	Spinner     lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	SliderFill  lipgloss.Style
	SliderTrack lipgloss.Style
}

// newStyles builds the styles for a dark or light terminal
func newStyles(dark bool) Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return Styles{
		Dark: dark,

		Title: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		TitlePanel: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Padding(0, 2),
		ChatPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dimmed).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dimmed).
			Padding(0, 1),
		SidebarOn: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dimmed).
			Padding(0, 1),
		InputOn: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		StatusBar: lipgloss.NewStyle().
			Background(p.Panel).
			Foreground(p.Text).
			Padding(0, 1),

		Section:    lipgloss.NewStyle().Foreground(p.Secondary).Bold(true).MarginTop(1),
		Control:    lipgloss.NewStyle().Foreground(p.Text),
		ControlSel: lipgloss.NewStyle().Foreground(p.Text).Background(p.Selected).Bold(true),

		UserLabel:   lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
		AssistLabel: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		ErrorText:   lipgloss.NewStyle().Foreground(p.Error),
		SystemText:  lipgloss.NewStyle().Foreground(p.TextMuted).Italic(true),
		Body:        lipgloss.NewStyle().Foreground(p.Text),
		Muted:       lipgloss.NewStyle().Foreground(p.TextMuted),

		Online:  lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		Offline: lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Busy:    lipgloss.NewStyle().Foreground(p.Accent),
		Spinner: lipgloss.NewStyle().Foreground(p.Primary),

		HelpKey:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		HelpDesc: lipgloss.NewStyle().Foreground(p.TextMuted),

		SliderFill:  lipgloss.NewStyle().Foreground(p.Primary),
		SliderTrack: lipgloss.NewStyle().Foreground(p.Dimmed),
	}
}

// isDark resolves a theme setting; System follows the terminal background
func isDark(theme settings.Theme) bool {
	switch theme {
	case settings.ThemeDark:
		return true
	case settings.ThemeLight:
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

// keyHint renders a keyboard shortcut hint
func (s Styles) keyHint(key, description string) string {
	return s.HelpKey.Render(key) + " " + s.HelpDesc.Render(description)
}
