// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for line-mode output.

package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// plainStyles are the lipgloss styles used by the line-mode commands. They
// follow the configured palette so plain mode matches the full-screen view.
type plainStyles struct {
	Prompt   lipgloss.Style
	Output   lipgloss.Style
	NotFound lipgloss.Style
	Greeting lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style

	// Width wraps output; 0 leaves lines alone
	Width int
}

func newPlainStyles(theme string) plainStyles {
	p, ok := styles.PaletteFor(theme)
	if !ok {
		p = styles.DefaultPalette
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(GetColorProfile())

	width := 0
	if IsStdoutTTY() {
		width = GetTerminalWidth()
	}

	return plainStyles{
		Prompt:   r.NewStyle().Foreground(p.Accent).Bold(true),
		Output:   r.NewStyle(),
		NotFound: r.NewStyle().Foreground(p.Error),
		Greeting: r.NewStyle().Foreground(p.Greeting).Bold(true),
		Muted:    r.NewStyle().Foreground(p.Muted),
		Success:  r.NewStyle().Foreground(styles.Emerald).Bold(true),
		Width:    width,
	}
}
