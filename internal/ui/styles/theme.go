// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the terminal view.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Palette Palette

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style
	HeaderClock lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	Prompt      lipgloss.Style
	CommandText lipgloss.Style
	Output      lipgloss.Style
	NotFound    lipgloss.Style
	Greeting    lipgloss.Style
	Link        lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputPrompt     lipgloss.Style
	InputText       lipgloss.Style
	Placeholder     lipgloss.Style
	Suggestion      lipgloss.Style
	SuggestionMatch lipgloss.Style
	RecallBadge     lipgloss.Style

	// ==========================================================================
	// FOOTER STYLES
	// ==========================================================================

	Footer       lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a theme from the named palette. Unknown names fall back
// to the default palette.
func NewTheme(name string) *Theme {
	p, ok := PaletteFor(name)
	if !ok {
		p = DefaultPalette
	}
	return NewThemeWithProfile(p, termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeWithProfile creates a theme without probing the terminal.
func NewThemeWithProfile(p Palette, profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark || p.Dark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Palette:      p,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	p := t.Palette

	// Header
	t.Header = lipgloss.NewStyle().
		Background(p.HeaderBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Secondary).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(p.Muted)

	t.HeaderClock = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	// Transcript
	t.Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.CommandText = lipgloss.NewStyle().
		Foreground(p.Text)

	t.Output = lipgloss.NewStyle().
		Foreground(p.Text)

	t.NotFound = lipgloss.NewStyle().
		Foreground(p.Error)

	t.Greeting = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Greeting)

	// Underline keeps links distinct without relying on color
	t.Link = lipgloss.NewStyle().
		Foreground(p.Link).
		Underline(true)

	// Input
	t.InputPrompt = t.Prompt
	t.InputText = lipgloss.NewStyle().Foreground(p.Text)
	t.Placeholder = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(p.Muted)

	t.SuggestionMatch = lipgloss.NewStyle().
		Foreground(p.Accent).
		Underline(true)

	t.RecallBadge = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	// Footer
	t.Footer = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// GlamourStyle names the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
