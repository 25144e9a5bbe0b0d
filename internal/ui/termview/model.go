// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package termview

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/profile"
	"github.com/jeranaias/termfolio/internal/terminal"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configure a Model.
type Options struct {
	Registry *commands.Registry
	Context  *commands.Context

	// Session to continue; nil starts a fresh one
	Session *terminal.Session

	Theme *styles.Theme

	// Bell rings the terminal bell on unknown commands and ambiguous Tab
	Bell bool
	// BellWriter receives the bell character; defaults to stderr
	BellWriter io.Writer

	Hyperlinks     bool
	ClockInterval  time.Duration
	MaxSuggestions int

	Logger *zap.SugaredLogger
}

// =============================================================================
// MESSAGES
// =============================================================================

// clockMsg refreshes the header clock.
type clockMsg time.Time

// =============================================================================
// EFFECT QUEUE
// =============================================================================

// effectQueue collects controller effects during one Update so the model can
// turn them into commands afterwards.
type effectQueue struct {
	pending []terminal.Effect
}

func (q *effectQueue) Play(e terminal.Effect) {
	q.pending = append(q.pending, e)
}

func (q *effectQueue) drain() []terminal.Effect {
	out := q.pending
	q.pending = nil
	return out
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the portfolio terminal.
type Model struct {
	ctrl     *terminal.Controller
	profile  *profile.Profile
	theme    *styles.Theme
	renderer *Renderer
	effects  *effectQueue
	log      *zap.SugaredLogger

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     KeyMap

	bell           bool
	bellWriter     io.Writer
	clockInterval  time.Duration
	maxSuggestions int

	width  int
	height int
	now    time.Time

	// renderedLen is the transcript length last pushed to the viewport
	renderedLen int
	renderedSeq int
	ready       bool
	quitting    bool
}

// New creates the terminal view and the controller behind it.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("default")
	}
	cmdCtx := opts.Context
	if cmdCtx == nil {
		cmdCtx = commands.NewContext(nil, opts.Registry)
	}
	now := time.Now()
	if cmdCtx.Now != nil {
		now = cmdCtx.Now()
	}
	bellWriter := opts.BellWriter
	if bellWriter == nil {
		bellWriter = os.Stderr
	}

	queue := &effectQueue{}
	ctrlOpts := []terminal.Option{
		terminal.WithEffects(queue),
		terminal.WithLogger(log),
	}
	if opts.Session != nil {
		ctrlOpts = append(ctrlOpts, terminal.WithSession(opts.Session))
	}
	ctrl := terminal.NewController(opts.Registry, cmdCtx, ctrlOpts...)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Type 'help' and press Enter"
	ti.CharLimit = terminal.MaxInputLen
	ti.Focus()
	ti.SetValue(ctrl.Session().Input())

	vp := viewport.New(80, 20)

	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc

	return Model{
		ctrl:           ctrl,
		profile:        cmdCtx.Profile,
		theme:          theme,
		renderer:       NewRenderer(theme, cmdCtx.Profile, opts.Hyperlinks),
		effects:        queue,
		log:            log,
		input:          ti,
		viewport:       vp,
		help:           h,
		keys:           DefaultKeyMap(),
		bell:           opts.Bell,
		bellWriter:     bellWriter,
		clockInterval:  opts.ClockInterval,
		maxSuggestions: opts.MaxSuggestions,
		now:            now,
		renderedSeq:    -1,
	}
}

// Controller returns the controller driving the view.
func (m Model) Controller() *terminal.Controller {
	return m.ctrl
}

// Session returns the session, for saving once the program exits.
func (m Model) Session() *terminal.Session {
	return m.ctrl.Session()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickClock())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case clockMsg:
		m.now = time.Time(msg)
		return m, m.tickClock()

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	m.viewport.Width = max(msg.Width, 1)
	m.viewport.Height = m.viewportHeight()
	m.renderer.SetWidth(msg.Width - 1)

	promptWidth := len([]rune(m.promptText())) + 1
	m.input.Width = max(msg.Width-promptWidth-1, 10)

	m.ready = true
	m.refresh(true)
	return m, nil
}

// handleKey routes bindings to the controller and everything else to the
// input line.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.viewportHeight()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		// The typed line survives the clear.
		m.syncInput()
		typed := m.ctrl.Session().Input()
		out := m.ctrl.Submit(commands.ReservedClear)
		m.ctrl.Session().SetInput(typed)
		return m.apply(out)

	case key.Matches(msg, m.keys.Submit):
		m.syncInput()
		return m.apply(m.ctrl.HandleKey(terminal.KeyEnter))

	case key.Matches(msg, m.keys.Prev):
		m.syncInput()
		return m.apply(m.ctrl.HandleKey(terminal.KeyUp))

	case key.Matches(msg, m.keys.Next):
		m.syncInput()
		return m.apply(m.ctrl.HandleKey(terminal.KeyDown))

	case key.Matches(msg, m.keys.Complete):
		m.syncInput()
		return m.apply(m.ctrl.HandleKey(terminal.KeyTab))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncInput()
	return m, cmd
}

// syncInput copies the text field into the session buffer. The recall
// cursor is kept. A recalled entry wider than the field is left whole
// rather than replaced by the field's cut-down copy.
func (m *Model) syncInput() {
	s := m.ctrl.Session()
	v, buf := m.input.Value(), s.Input()
	if v == buf {
		return
	}
	if s.Recalling() && utf8.RuneCountInString(buf) > m.input.CharLimit && strings.HasPrefix(buf, v) {
		return
	}
	s.SetInput(v)
}

// apply reflects a controller outcome in the widgets and turns queued
// effects into commands.
func (m Model) apply(out terminal.Outcome) (tea.Model, tea.Cmd) {
	if buf := m.ctrl.Session().Input(); buf != m.input.Value() {
		m.input.SetValue(buf)
		m.input.CursorEnd()
	}
	if out.Changed() {
		m.refresh(false)
	}

	var cmds []tea.Cmd
	for _, e := range m.effects.drain() {
		m.log.Debugw("effect", "effect", e.String())
		if m.bell && (e == terminal.EffectNotFound || e == terminal.EffectAmbiguous) {
			cmds = append(cmds, ringBell(m.bellWriter))
		}
	}
	return m, tea.Batch(cmds...)
}

// refresh re-renders the transcript into the viewport when it changed.
// Clear empties the transcript without reusing sequence numbers, so length
// and last sequence together detect every change.
func (m *Model) refresh(force bool) {
	entries := m.ctrl.Session().Transcript()
	lastSeq := -1
	if len(entries) > 0 {
		lastSeq = entries[len(entries)-1].Seq
	}
	if !force && len(entries) == m.renderedLen && lastSeq == m.renderedSeq {
		return
	}
	m.renderedLen = len(entries)
	m.renderedSeq = lastSeq

	m.viewport.SetContent(m.renderer.Transcript(entries))
	m.viewport.GotoBottom()
}

func (m Model) tickClock() tea.Cmd {
	if m.clockInterval <= 0 {
		return nil
	}
	return tea.Tick(m.clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		fmt.Fprint(w, "\a")
		return nil
	}
}
