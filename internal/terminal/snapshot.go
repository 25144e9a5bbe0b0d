// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Keys under which a session snapshot is stored.
const (
	TranscriptKey = "termfolio.transcript"
	HistoryKey    = "termfolio.history"
)

// KV is a durable string store. Get reports ok=false for a missing key.
// There are no transactional guarantees.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

var errCorrupt = errors.New("corrupt snapshot")

// Save writes the transcript and history of s to kv.
func Save(kv KV, s *Session) error {
	transcript, err := json.Marshal(s.transcript)
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	history, err := json.Marshal(s.history)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := kv.Set(TranscriptKey, string(transcript)); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	if err := kv.Set(HistoryKey, string(history)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Restore loads a session from kv. A missing key restores that part as
// empty. Any read error or corrupt value yields a fresh session; the error
// is returned for logging only and the session is always usable.
func Restore(kv KV) (*Session, error) {
	s := NewSession()
	if kv == nil {
		return s, nil
	}

	var transcript []Entry
	var history []string
	if err := load(kv, TranscriptKey, &transcript); err != nil {
		return s, err
	}
	if err := load(kv, HistoryKey, &history); err != nil {
		return s, err
	}
	if err := validate(transcript, history); err != nil {
		return s, err
	}

	// Entries saved before the input cap existed are cut to fit.
	for i, h := range history {
		history[i] = strings.TrimSpace(ClampInput(h))
	}
	s.restore(transcript, history)
	return s, nil
}

func load(kv KV, key string, v any) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", errCorrupt, key, err)
	}
	return nil
}

func validate(transcript []Entry, history []string) error {
	for i, h := range history {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("%w: history[%d] is empty", errCorrupt, i)
		}
	}
	seen := make(map[int]bool, len(transcript))
	for i, e := range transcript {
		if e.Seq < 0 || seen[e.Seq] {
			return fmt.Errorf("%w: transcript[%d] has bad sequence %d", errCorrupt, i, e.Seq)
		}
		seen[e.Seq] = true
	}
	return nil
}
