// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the termfolio TUI.

# Palettes (colors.go)

Three palettes are available, selected by the ui.theme setting:

	default   - adaptive cyan/purple, follows the terminal background
	matrix    - green on black
	cyberpunk - pink on dark gray

# Themes (theme.go)

A Theme turns a Palette into Lip Gloss styles for the header, transcript,
input line and footer, and records the terminal's color profile as detected
by termenv. GlamourStyle picks the matching glamour renderer style for rich
command output.

	theme := styles.NewTheme(cfg.UI.Theme)
	theme.SetSize(width, height)
	line := theme.Prompt.Render(prompt) + " " + theme.CommandText.Render(cmd)
*/
package styles
