// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the termfolio TUI.
// Default colors use Lip Gloss AdaptiveColor for light/dark detection; the
// matrix and cyberpunk palettes assume a dark terminal.
package styles

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// BASE COLORS
// =============================================================================

// Cyan - Brand color, prompt and command names
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Purple - Headings and rich output accents
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Emerald - Success and the prompt symbol
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Unknown commands
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Greeting
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// LinkColor - Hyperlinks
var LinkColor = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// PALETTES
// =============================================================================

// Palette is the set of colors a Theme is built from.
type Palette struct {
	Name string

	Accent    lipgloss.TerminalColor // prompt, command names, header title
	Secondary lipgloss.TerminalColor // headings, borders
	Text      lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor // hints, clock, suggestions
	Error     lipgloss.TerminalColor
	Greeting  lipgloss.TerminalColor
	Link      lipgloss.TerminalColor
	HeaderBg  lipgloss.TerminalColor

	// Dark forces a dark glamour style regardless of the terminal background
	Dark bool
}

// DefaultPalette follows the terminal's light or dark background.
var DefaultPalette = Palette{
	Name:      "default",
	Accent:    Cyan,
	Secondary: Purple,
	Text:      TextPrimary,
	Muted:     TextMuted,
	Error:     Rose,
	Greeting:  Amber,
	Link:      LinkColor,
	HeaderBg:  SurfaceDim,
}

// MatrixPalette is green on black.
var MatrixPalette = Palette{
	Name:      "matrix",
	Accent:    lipgloss.Color("#4ADE80"),
	Secondary: lipgloss.Color("#22C55E"),
	Text:      lipgloss.Color("#4ADE80"),
	Muted:     lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#F87171"),
	Greeting:  lipgloss.Color("#86EFAC"),
	Link:      lipgloss.Color("#BBF7D0"),
	HeaderBg:  lipgloss.Color("#000000"),
	Dark:      true,
}

// CyberpunkPalette is pink on dark gray.
var CyberpunkPalette = Palette{
	Name:      "cyberpunk",
	Accent:    lipgloss.Color("#F472B6"),
	Secondary: lipgloss.Color("#EC4899"),
	Text:      lipgloss.Color("#F9A8D4"),
	Muted:     lipgloss.Color("#9D174D"),
	Error:     lipgloss.Color("#FACC15"),
	Greeting:  lipgloss.Color("#22D3EE"),
	Link:      lipgloss.Color("#67E8F9"),
	HeaderBg:  lipgloss.Color("#111827"),
	Dark:      true,
}

var palettes = map[string]Palette{
	DefaultPalette.Name:   DefaultPalette,
	MatrixPalette.Name:    MatrixPalette,
	CyberpunkPalette.Name: CyberpunkPalette,
}

// PaletteFor looks a palette up by case-insensitive name.
func PaletteFor(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// PaletteNames lists the known palettes in alphabetical order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
