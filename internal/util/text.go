// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the number of terminal cells s occupies. Wide runes
// (CJK, most emoji) count as two.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth cuts s to at most maxWidth cells, ending with "..." when
// there is room for it.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Wrap hard-wraps each line of s to width cells, breaking at spaces where
// possible. Existing newlines and leading indentation are kept.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0
	lastSpace := -1 // byte offset in cur of the last break point

	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if r == ' ' && curWidth+rw > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
			lastSpace = -1
			continue
		}
		if curWidth+rw > width && cur.Len() > 0 {
			text := cur.String()
			if lastSpace > 0 {
				lines = append(lines, strings.TrimRight(text[:lastSpace], " "))
				rest := text[lastSpace+1:]
				cur.Reset()
				cur.WriteString(rest)
				curWidth = runewidth.StringWidth(rest)
			} else {
				lines = append(lines, text)
				cur.Reset()
				curWidth = 0
			}
			lastSpace = -1
		}
		if r == ' ' {
			lastSpace = cur.Len()
		}
		cur.WriteRune(r)
		curWidth += rw
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
