// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package termview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/util"
)

// ClockLayout formats the header clock.
const ClockLayout = "Mon Jan 02 15:04"

// Fixed rows around the viewport: header (text + border), suggestion line,
// input line.
const (
	headerHeight     = 2
	suggestionHeight = 1
	inputHeight      = 1
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderSuggestions(),
		m.renderInput(),
		m.renderFooter(),
	)
}

func (m Model) viewportHeight() int {
	h := m.height - headerHeight - suggestionHeight - inputHeight - lipgloss.Height(m.renderFooter())
	return max(h, 1)
}

func (m Model) promptText() string {
	return m.profile.Prompt() + ":~$"
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m Model) renderHeader() string {
	t := m.theme
	left := t.HeaderTitle.Render(m.profile.Prompt())
	if m.profile.Tagline != "" && t.GetLayoutMode() != styles.LayoutNarrow {
		left += t.HeaderMeta.Render("  " + m.profile.Tagline)
	}

	right := ""
	if m.clockInterval > 0 {
		right = t.HeaderClock.Render(m.now.Format(ClockLayout))
	}

	inner := m.width - t.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = util.TruncateWidth(m.profile.Prompt(), max(inner-lipgloss.Width(right)-1, 1))
		left = t.HeaderTitle.Render(left)
		gap = max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	}

	return t.Header.Width(max(m.width, 1)).Render(left + strings.Repeat(" ", gap) + right)
}

// renderSuggestions shows the commands the current buffer could complete to.
// Empty while recalling history.
func (m Model) renderSuggestions() string {
	if m.maxSuggestions <= 0 || m.ctrl.Session().Recalling() {
		return ""
	}
	hints := m.ctrl.Suggestions(m.maxSuggestions)
	if len(hints) == 0 {
		return ""
	}

	typed := strings.ToLower(strings.TrimSpace(m.input.Value()))
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		rest := strings.TrimPrefix(h, typed)
		parts = append(parts, m.theme.SuggestionMatch.Render(typed)+m.theme.Suggestion.Render(rest))
	}
	prefix := m.theme.Suggestion.Render("  Tab: ")
	sep := m.theme.Suggestion.Render("  ")
	for len(parts) > 1 && lipgloss.Width(prefix+strings.Join(parts, sep)) > m.width {
		parts = parts[:len(parts)-1]
	}
	return prefix + strings.Join(parts, sep)
}

func (m Model) renderInput() string {
	line := m.theme.InputPrompt.Render(m.promptText()) + " " + m.input.View()
	if s := m.ctrl.Session(); s.Recalling() {
		line += " " + m.theme.RecallBadge.Render("[history]")
	}
	return line
}

func (m Model) renderFooter() string {
	return m.theme.Footer.Render(m.help.View(m.keys))
}
