// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// Reserved command names interpreted by the terminal controller. They take
// part in completion even when the registry does not define them.
const (
	ReservedClear   = "clear"
	ReservedHistory = "history"
	ReservedEcho    = "echo"
)

// reservedDescriptions documents the reserved names for help and hints.
var reservedDescriptions = map[string]string{
	ReservedClear:   "Clear terminal",
	ReservedHistory: "Show recent commands",
	ReservedEcho:    "Echo text back",
}

// DefaultSuggestionLimit is the number of inline suggestions shown under the
// input line.
const DefaultSuggestionLimit = 4

// =============================================================================
// COMPLETER
// =============================================================================

// Completer answers prefix queries over the completion universe: registry
// names in order, then reserved names the registry does not define.
type Completer struct {
	registry *Registry
	universe []string
}

// NewCompleter creates a completer for the given registry.
func NewCompleter(registry *Registry) *Completer {
	universe := registry.Names()
	for _, name := range []string{ReservedClear, ReservedHistory} {
		if !registry.Has(name) {
			universe = append(universe, name)
		}
	}
	return &Completer{
		registry: registry,
		universe: universe,
	}
}

// Universe returns every completable name in enumeration order.
func (c *Completer) Universe() []string {
	names := make([]string, len(c.universe))
	copy(names, c.universe)
	return names
}

// Match returns every name starting with prefix, in enumeration order. The
// prefix is normalized first.
func (c *Completer) Match(prefix string) []string {
	prefix = Normalize(prefix)
	var matches []string
	for _, name := range c.universe {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Suggest returns up to limit inline suggestions for a partially typed
// command name. An exact match is left out since there is nothing left to
// suggest. Input with whitespace yields nothing. A limit <= 0 means no cap.
func (c *Completer) Suggest(input string, limit int) []string {
	if !IsCommandName(input) {
		return nil
	}
	typed := Normalize(input)
	var out []string
	for _, name := range c.Match(typed) {
		if name == typed {
			continue
		}
		out = append(out, name)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Complete returns matches for input with their descriptions.
func (c *Completer) Complete(input string) []Completion {
	if !IsCommandName(input) {
		return nil
	}
	matches := c.Match(input)
	completions := make([]Completion, 0, len(matches))
	for _, name := range matches {
		completions = append(completions, Completion{
			Value:       name,
			Description: c.Describe(name),
		})
	}
	return completions
}

// Describe returns the description shown next to name.
func (c *Completer) Describe(name string) string {
	if cmd, ok := c.registry.Lookup(name); ok {
		return cmd.Description
	}
	return reservedDescriptions[name]
}
