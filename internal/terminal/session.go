// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"strings"

	"github.com/jeranaias/termfolio/internal/commands"
)

// NoRecall is the cursor value when the user is not browsing history.
const NoRecall = -1

// =============================================================================
// TRANSCRIPT ENTRY
// =============================================================================

// Entry is one command and its output as displayed.
type Entry struct {
	// Seq increases with every append and is never reused, even after clear
	Seq int `json:"seq"`

	// CommandText is the command as typed; empty for greetings
	CommandText string `json:"command"`

	// Output is stored verbatim
	Output commands.Output `json:"output"`
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds the transcript, command history, recall cursor and input
// buffer of one terminal. It is not safe for concurrent use; the owning event
// loop serializes access.
type Session struct {
	transcript []Entry
	history    []string
	cursor     int
	input      string
	nextSeq    int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{cursor: NoRecall}
}

// AppendTranscript appends an entry and returns it.
func (s *Session) AppendTranscript(commandText string, out commands.Output) Entry {
	e := Entry{Seq: s.nextSeq, CommandText: commandText, Output: out}
	s.nextSeq++
	s.transcript = append(s.transcript, e)
	return e
}

// AppendHistory records a submitted command. Empty or whitespace-only text is
// a caller bug and panics.
func (s *Session) AppendHistory(commandText string) {
	if strings.TrimSpace(commandText) == "" {
		panic("terminal: AppendHistory called with empty command")
	}
	s.history = append(s.history, commandText)
}

// ResetRecall leaves history browsing.
func (s *Session) ResetRecall() {
	s.cursor = NoRecall
}

// ClearTranscript removes every transcript entry. History and the recall
// cursor are untouched.
func (s *Session) ClearTranscript() {
	s.transcript = nil
}

// Transcript returns a copy of the transcript in display order.
func (s *Session) Transcript() []Entry {
	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// History returns a copy of the command history, oldest first.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Len returns the number of transcript entries.
func (s *Session) Len() int { return len(s.transcript) }

// Cursor returns the recall index or NoRecall.
func (s *Session) Cursor() int { return s.cursor }

// Recalling reports whether the input buffer mirrors a history entry.
func (s *Session) Recalling() bool { return s.cursor != NoRecall }

// Input returns the input buffer.
func (s *Session) Input() string { return s.input }

// SetInput replaces the input buffer. This is the text-editing path; the
// recall cursor is kept so that further Up/Down presses continue from where
// the user was.
func (s *Session) SetInput(text string) {
	s.input = text
}

// setRecall moves the cursor and mirrors the history entry into the buffer.
func (s *Session) setRecall(i int) {
	if i < 0 || i >= len(s.history) {
		panic("terminal: recall cursor out of range")
	}
	s.cursor = i
	s.input = s.history[i]
}

// restore replaces state from a snapshot.
func (s *Session) restore(transcript []Entry, history []string) {
	s.transcript = transcript
	s.history = history
	s.cursor = NoRecall
	s.input = ""
	s.nextSeq = 0
	for _, e := range transcript {
		if e.Seq >= s.nextSeq {
			s.nextSeq = e.Seq + 1
		}
	}
}
