// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of splitting a command line.
type ParseResult struct {
	// Name is the lowercased first token
	Name string

	// Args are the remaining tokens in original case
	Args []string

	// Raw is the trimmed input
	Raw string
}

// Empty reports whether the line had no tokens.
func (r ParseResult) Empty() bool {
	return r.Name == ""
}

// =============================================================================
// PARSER
// =============================================================================

// Parse splits a command line on whitespace. The command name is normalized;
// arguments keep their case. There is no quoting or escaping.
func Parse(input string) ParseResult {
	trimmed := strings.TrimSpace(input)
	result := ParseResult{Raw: trimmed}

	tokens := Split(trimmed)
	if len(tokens) == 0 {
		return result
	}
	result.Name = Normalize(tokens[0])
	if len(tokens) > 1 {
		result.Args = tokens[1:]
	}
	return result
}

// Split breaks a line into whitespace-separated tokens.
func Split(input string) []string {
	return strings.FieldsFunc(input, isSpace)
}

// HasFlag reports whether args contains flag, compared case-insensitively.
func HasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// IsCommandName reports whether input is a single token, i.e. the user is
// still typing a command name rather than its arguments.
func IsCommandName(input string) bool {
	trimmed := strings.TrimSpace(input)
	return trimmed != "" && !strings.ContainsFunc(trimmed, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
