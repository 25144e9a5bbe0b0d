// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package termview

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/terminal"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

func newTestModel(t *testing.T, bell *bytes.Buffer) Model {
	t.Helper()
	reg, err := commands.DefaultRegistry()
	require.NoError(t, err)

	cmdCtx := commands.NewContext(nil, reg)
	cmdCtx.Now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	opts := Options{
		Registry:       reg,
		Context:        cmdCtx,
		Theme:          styles.NewThemeWithProfile(styles.DefaultPalette, termenv.Ascii, true),
		MaxSuggestions: commands.DefaultSuggestionLimit,
		ClockInterval:  time.Minute,
	}
	if bell != nil {
		opts.Bell = true
		opts.BellWriter = bell
	}
	m := New(opts)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	runCmd(cmd)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// runCmd executes a command and any batch it expands to. Blink and tick
// commands are skipped by only following batches one level deep.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				if c != nil {
					c()
				}
			}
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func TestModelSubmit(t *testing.T) {
	m := newTestModel(t, nil)

	m = typeText(t, m, "help")
	assert.Equal(t, "help", m.Session().Input(), "typing mirrors into the session")

	m = press(t, m, tea.KeyEnter)
	entries := m.Session().Transcript()
	require.Len(t, entries, 1)
	assert.Equal(t, "help", entries[0].CommandText)
	assert.Equal(t, "", m.input.Value())
	assert.Contains(t, m.View(), "Available commands:")
}

func TestModelRecall(t *testing.T) {
	m := newTestModel(t, nil)
	for _, c := range []string{"about", "skills"} {
		m = typeText(t, m, c)
		m = press(t, m, tea.KeyEnter)
	}

	m = press(t, m, tea.KeyUp)
	assert.Equal(t, "skills", m.input.Value())
	m = press(t, m, tea.KeyUp)
	assert.Equal(t, "about", m.input.Value())
	assert.Contains(t, m.View(), "[history]")

	m = press(t, m, tea.KeyDown)
	m = press(t, m, tea.KeyDown)
	assert.Equal(t, "", m.input.Value())
	assert.False(t, m.Session().Recalling())
}

func TestModelAutocomplete(t *testing.T) {
	m := newTestModel(t, nil)

	m = typeText(t, m, "he")
	assert.Contains(t, m.View(), "help", "inline suggestion")

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, "help ", m.input.Value())
	assert.Equal(t, "help ", m.Session().Input())

	m = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "c")
	m = press(t, m, tea.KeyTab)
	entries := m.Session().Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, "Possible commands: contact, certificates, clear", entries[1].Output.Text)
}

func TestModelClearKey(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "whoami")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, 1, m.Session().Len())

	m = typeText(t, m, "abo")
	m = press(t, m, tea.KeyCtrlL)
	assert.Equal(t, 0, m.Session().Len())
	assert.Equal(t, []string{"whoami", "clear"}, m.Session().History())
	assert.Equal(t, "abo", m.Session().Input(), "typed text survives the clear")
	assert.Equal(t, "abo", m.input.Value())

	m = typeText(t, m, "ut")
	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, []string{"whoami", "clear", "about"}, m.Session().History())
}

func TestModelBellOnNotFound(t *testing.T) {
	var bell bytes.Buffer
	m := newTestModel(t, &bell)

	m = typeText(t, m, "help")
	m = press(t, m, tea.KeyEnter)
	assert.Empty(t, bell.String())

	m = typeText(t, m, "sudo")
	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, "\a", bell.String())
	assert.Contains(t, m.View(), "Command not found: sudo")

	m = typeText(t, m, "c")
	m = press(t, m, tea.KeyTab)
	assert.Equal(t, "\a\a", bell.String())
}

func TestModelResumesSession(t *testing.T) {
	reg, err := commands.DefaultRegistry()
	require.NoError(t, err)

	s := terminal.NewSession()
	s.AppendHistory("about")
	s.AppendTranscript("about", commands.Text("restored output"))

	m := New(Options{Registry: reg, Session: s, Theme: styles.NewThemeWithProfile(styles.DefaultPalette, termenv.Ascii, true)})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Same(t, s, m.Session())
	assert.Contains(t, m.View(), "restored output")
	m = press(t, m, tea.KeyUp)
	assert.Equal(t, "about", m.input.Value())
}

func newSessionModel(t *testing.T, s *terminal.Session) Model {
	t.Helper()
	reg, err := commands.DefaultRegistry()
	require.NoError(t, err)
	m := New(Options{Registry: reg, Session: s, Theme: styles.NewThemeWithProfile(styles.DefaultPalette, termenv.Ascii, true)})
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func TestModelRecallLongEntry(t *testing.T) {
	long := "echo " + strings.Repeat("x", 400)
	s := terminal.NewSession()
	s.AppendHistory(long)
	m := newSessionModel(t, s)

	m = press(t, m, tea.KeyUp)
	assert.Equal(t, long, m.Session().Input())
	assert.Equal(t, long, m.input.Value())

	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, []string{long, long}, m.Session().History())
}

func TestModelRecallWiderThanField(t *testing.T) {
	long := "echo " + strings.Repeat("y", 2*terminal.MaxInputLen)
	s := terminal.NewSession()
	s.AppendHistory(long)
	m := newSessionModel(t, s)

	m = press(t, m, tea.KeyUp)
	require.Len(t, m.input.Value(), terminal.MaxInputLen)

	// Tab does nothing here but syncs the field first
	m = press(t, m, tea.KeyTab)
	assert.Equal(t, long, m.Session().Input(), "recalled entry is not cut to the field")

	m = press(t, m, tea.KeyEnter)
	h := m.Session().History()
	require.Len(t, h, 2)
	assert.Equal(t, terminal.ClampInput(long), h[1])
}

func TestModelClockAndQuit(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Contains(t, m.View(), "Tue Mar 04 05:06")

	m = update(t, m, clockMsg(time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)))
	assert.Contains(t, m.View(), "Tue Mar 04 09:30")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, "", next.View())
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t, nil)
	short := m.viewport.Height

	m = press(t, m, tea.KeyF1)
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.viewport.Height, short)
	assert.True(t, strings.Contains(m.View(), "previous command"))
}
