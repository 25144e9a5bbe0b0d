// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
)

// =============================================================================
// OUTPUT KIND
// =============================================================================

// OutputKind tags the variant held by an Output.
type OutputKind int

const (
	// OutputText is plain text.
	OutputText OutputKind = iota
	// OutputRich is a fragment with markdown and links.
	OutputRich
	// OutputNotFound is the notice for an unrecognized command.
	OutputNotFound
)

var outputKindNames = map[OutputKind]string{
	OutputText:     "text",
	OutputRich:     "rich",
	OutputNotFound: "not_found",
}

// String returns the wire name of the kind.
func (k OutputKind) String() string {
	if s, ok := outputKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("OutputKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k OutputKind) MarshalText() ([]byte, error) {
	s, ok := outputKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown output kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OutputKind) UnmarshalText(b []byte) error {
	for kind, name := range outputKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown output kind %q", string(b))
}

// =============================================================================
// OUTPUT
// =============================================================================

// Link is a labelled hyperlink inside a rich fragment.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Fragment is the rich payload of an OutputRich value.
type Fragment struct {
	Markdown string `json:"markdown"`
	Links    []Link `json:"links,omitempty"`
}

// Output is the value produced by one command invocation. It is created once
// and stored verbatim in the transcript.
//
// Text always holds a plain rendering, so front-ends that cannot draw a
// Fragment can fall back to it.
type Output struct {
	Kind     OutputKind `json:"kind"`
	Text     string     `json:"text"`
	Fragment *Fragment  `json:"fragment,omitempty"`
}

// Text builds a plain text Output.
func Text(s string) Output {
	return Output{Kind: OutputText, Text: s}
}

// Rich builds a rich Output with a plain fallback.
func Rich(plain string, frag Fragment) Output {
	return Output{Kind: OutputRich, Text: plain, Fragment: &frag}
}

// NotFound builds the notice for an unrecognized command.
func NotFound(msg string) Output {
	return Output{Kind: OutputNotFound, Text: msg}
}

// String returns the plain rendering of the output.
func (o Output) String() string {
	return o.Text
}

// IsRich reports whether the output carries a fragment.
func (o Output) IsRich() bool {
	return o.Kind == OutputRich && o.Fragment != nil
}
