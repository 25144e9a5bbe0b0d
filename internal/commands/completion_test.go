// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"testing"
)

func TestCompleterUniverse(t *testing.T) {
	reg, err := NewRegistry(
		&Command{Name: "help", Action: noop},
		&Command{Name: "clear", Action: noop},
		&Command{Name: "about", Action: noop},
	)
	if err != nil {
		t.Fatal(err)
	}

	got := strings.Join(NewCompleter(reg).Universe(), ",")
	if got != "help,clear,about,history" {
		t.Errorf("Universe() = %s", got)
	}
}

func TestCompleterMatchOrder(t *testing.T) {
	reg, err := NewRegistry(&Command{Name: "help", Action: noop})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompleter(reg)

	tests := []struct {
		prefix string
		want   string
	}{
		{"h", "help,history"},
		{"H", "help,history"},
		{"hel", "help"},
		{"his", "history"},
		{"c", "clear"},
		{"z", ""},
	}

	for _, tc := range tests {
		got := strings.Join(c.Match(tc.prefix), ",")
		if got != tc.want {
			t.Errorf("Match(%q) = %q, want %q", tc.prefix, got, tc.want)
		}
	}
}

func TestCompleterSuggest(t *testing.T) {
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompleter(reg)

	tests := []struct {
		input string
		limit int
		want  string
	}{
		{"", 4, ""},
		{"help", 4, ""},
		{"he", 4, "help"},
		{"c", 4, "contact,certificates,clear"},
		{"c", 2, "contact,certificates"},
		{"projects --d", 4, ""},
		{"h", 0, "help,history"},
	}

	for _, tc := range tests {
		got := strings.Join(c.Suggest(tc.input, tc.limit), ",")
		if got != tc.want {
			t.Errorf("Suggest(%q, %d) = %q, want %q", tc.input, tc.limit, got, tc.want)
		}
	}
}

func TestCompleterComplete(t *testing.T) {
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompleter(reg)

	got := c.Complete("hi")
	if len(got) != 1 || got[0].Value != "history" || got[0].Description != "Show recent commands" {
		t.Errorf("Complete(hi) = %+v", got)
	}
	if c.Complete("a b") != nil {
		t.Error("Complete with arguments should return nil")
	}
}
