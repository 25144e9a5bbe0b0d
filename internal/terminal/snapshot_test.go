// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/commands"
)

type mapKV struct {
	data   map[string]string
	getErr error
}

func newMapKV() *mapKV { return &mapKV{data: map[string]string{}} }

func (m *mapKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestController(t)
	c.Greet("welcome")
	submitAll(c, "about", "projects", "clear", "echo Hi There", "zzz")

	kv := newMapKV()
	require.NoError(t, Save(kv, c.Session()))

	restored, err := Restore(kv)
	require.NoError(t, err)
	assert.Equal(t, c.Session().History(), restored.History())

	want := c.Session().Transcript()
	got := restored.Transcript()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Seq, got[i].Seq)
		assert.Equal(t, want[i].CommandText, got[i].CommandText)
		assert.Equal(t, want[i].Output.Kind, got[i].Output.Kind)
		assert.Equal(t, want[i].Output.Text, got[i].Output.Text)
	}
	assert.Equal(t, NoRecall, restored.Cursor())
	assert.Equal(t, "", restored.Input())

	// New entries continue the sequence.
	c2 := newTestController(t, WithSession(restored))
	out := c2.Submit("whoami")
	assert.Greater(t, out.Entry.Seq, got[len(got)-1].Seq)
}

func TestSnapshotKeepsRichFragments(t *testing.T) {
	c := newTestController(t)
	c.Submit("projects")

	kv := newMapKV()
	require.NoError(t, Save(kv, c.Session()))
	restored, err := Restore(kv)
	require.NoError(t, err)

	tr := restored.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, commands.OutputRich, tr[0].Output.Kind)
	require.NotNil(t, tr[0].Output.Fragment)
	assert.NotEmpty(t, tr[0].Output.Fragment.Links)
}

func TestRestoreFallsBackToFreshSession(t *testing.T) {
	tests := []struct {
		name string
		kv   KV
	}{
		{"nil store", nil},
		{"empty store", newMapKV()},
		{"corrupt transcript", &mapKV{data: map[string]string{TranscriptKey: "{not json"}}},
		{"corrupt history", &mapKV{data: map[string]string{HistoryKey: `[1,2]`}}},
		{"empty history entry", &mapKV{data: map[string]string{HistoryKey: `["ok","  "]`}}},
		{"duplicate seq", &mapKV{data: map[string]string{TranscriptKey: `[{"seq":1,"command":"a","output":{"kind":"text","text":""}},{"seq":1,"command":"b","output":{"kind":"text","text":""}}]`}}},
		{"unknown kind", &mapKV{data: map[string]string{TranscriptKey: `[{"seq":0,"command":"a","output":{"kind":"video","text":""}}]`}}},
		{"read error", &mapKV{getErr: errors.New("disk on fire")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := Restore(tc.kv)
			require.NotNil(t, s)
			assert.Empty(t, s.Transcript())
			assert.Empty(t, s.History())
			assert.Equal(t, NoRecall, s.Cursor())
		})
	}
}

func TestRestoreHistoryOnly(t *testing.T) {
	kv := &mapKV{data: map[string]string{HistoryKey: `["help","about"]`}}
	s, err := Restore(kv)
	require.NoError(t, err)
	assert.Equal(t, []string{"help", "about"}, s.History())
	assert.Empty(t, s.Transcript())
}

func TestRestoreClampsLongHistory(t *testing.T) {
	long := "echo " + strings.Repeat("x", MaxInputLen)
	raw, err := json.Marshal([]string{"help", long})
	require.NoError(t, err)

	s, err := Restore(&mapKV{data: map[string]string{HistoryKey: string(raw)}})
	require.NoError(t, err)
	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, "help", h[0])
	assert.Equal(t, long[:MaxInputLen], h[1])
}
