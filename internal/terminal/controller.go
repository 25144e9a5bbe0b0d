// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jeranaias/termfolio/internal/commands"
)

// EmptyHistoryMessage is printed by history when nothing was submitted.
const EmptyHistoryMessage = "No commands executed yet."

// MaxInputLen caps a command line in bytes. Every front-end submits through
// the controller, so history never holds a longer entry.
const MaxInputLen = 1024

// echoPrefix must match the lowercased input exactly, trailing space included.
const echoPrefix = "echo "

// =============================================================================
// KEYS AND OUTCOMES
// =============================================================================

// Key is an abstract key event the controller understands. Every other key
// is plain text editing and goes through Session.SetInput.
type Key int

const (
	KeyEnter Key = iota
	KeyUp
	KeyDown
	KeyTab
)

// OutcomeKind says what an operation did.
type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeEchoed
	OutcomeCleared
	OutcomeHistory
	OutcomeExecuted
	OutcomeNotFound
	OutcomeRecalled
	OutcomeCompleted
	OutcomeAmbiguous
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeEchoed:
		return "echoed"
	case OutcomeCleared:
		return "cleared"
	case OutcomeHistory:
		return "history"
	case OutcomeExecuted:
		return "executed"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeRecalled:
		return "recalled"
	case OutcomeCompleted:
		return "completed"
	case OutcomeAmbiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome describes the result of one controller operation.
type Outcome struct {
	Kind OutcomeKind

	// Entry is the transcript entry appended, if any
	Entry *Entry

	// Command is the registry command that ran, for OutcomeExecuted
	Command *commands.Command

	// Matches holds autocomplete candidates
	Matches []string
}

// Changed reports whether the operation touched session state beyond the
// input buffer.
func (o Outcome) Changed() bool {
	return o.Kind != OutcomeIgnored
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller turns submissions and key events into session mutations. All
// mutation of a Session flows through it.
type Controller struct {
	session   *Session
	registry  *commands.Registry
	completer *commands.Completer
	ctx       *commands.Context
	effects   Effects
	log       *zap.SugaredLogger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSession makes the controller drive an existing session, e.g. one
// restored from a snapshot.
func WithSession(s *Session) Option {
	return func(c *Controller) {
		if s != nil {
			c.session = s
		}
	}
}

// WithEffects installs an effects sink.
func WithEffects(e Effects) Option {
	return func(c *Controller) {
		if e != nil {
			c.effects = e
		}
	}
}

// WithLogger sets the logger for dispatch tracing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController creates a controller over reg. A nil ctx gets a context with
// the default profile.
func NewController(reg *commands.Registry, ctx *commands.Context, opts ...Option) *Controller {
	if ctx == nil {
		ctx = commands.NewContext(nil, reg)
	}
	if ctx.Registry == nil {
		cp := *ctx
		cp.Registry = reg
		ctx = &cp
	}
	c := &Controller{
		session:   NewSession(),
		registry:  reg,
		completer: commands.NewCompleter(reg),
		ctx:       ctx,
		effects:   NopEffects{},
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the controller drives. Callers read from it
// and may edit the input buffer with SetInput.
func (c *Controller) Session() *Session { return c.session }

// Registry returns the command table.
func (c *Controller) Registry() *commands.Registry { return c.registry }

// Completer returns the completer used for Tab.
func (c *Controller) Completer() *commands.Completer { return c.completer }

// Greet appends a greeting entry with no command text. Used on fresh
// sessions.
func (c *Controller) Greet(text string) {
	if text == "" {
		return
	}
	c.session.AppendTranscript("", commands.Text(text))
}

// HandleKey dispatches an abstract key event.
func (c *Controller) HandleKey(k Key) Outcome {
	switch k {
	case KeyEnter:
		return c.Submit(c.session.Input())
	case KeyUp:
		return c.RecallPrev()
	case KeyDown:
		return c.RecallNext()
	case KeyTab:
		return c.Autocomplete()
	default:
		return Outcome{}
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit runs one command line. Reserved names (echo, clear, history) are
// handled before the registry is consulted. The input buffer is always left
// empty.
func (c *Controller) Submit(raw string) Outcome {
	defer c.session.SetInput("")

	trimmed := strings.TrimSpace(ClampInput(raw))
	if trimmed == "" {
		return Outcome{Kind: OutcomeIgnored}
	}

	c.session.AppendHistory(trimmed)
	c.session.ResetRecall()
	c.effects.Play(EffectSubmit)

	lower := strings.ToLower(trimmed)
	var out Outcome
	switch {
	case strings.HasPrefix(lower, echoPrefix):
		out = c.appendEntry(OutcomeEchoed, trimmed, commands.Text(trimmed[len(echoPrefix):]))

	case lower == commands.ReservedClear:
		c.session.ClearTranscript()
		c.effects.Play(EffectClear)
		out = Outcome{Kind: OutcomeCleared}

	case lower == commands.ReservedHistory:
		out = c.appendEntry(OutcomeHistory, trimmed, commands.Text(FormatHistory(c.session.history)))

	default:
		out = c.dispatch(trimmed)
	}

	c.log.Debugw("submit", "command", trimmed, "outcome", out.Kind.String())
	return out
}

// ClampInput cuts s to at most MaxInputLen bytes on a rune boundary.
func ClampInput(s string) string {
	if len(s) <= MaxInputLen {
		return s
	}
	i := MaxInputLen
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}

func (c *Controller) dispatch(trimmed string) Outcome {
	parsed := commands.Parse(trimmed)
	cmd, ok := c.registry.Lookup(parsed.Name)
	if !ok {
		c.effects.Play(EffectNotFound)
		return c.appendEntry(OutcomeNotFound, trimmed, NotFoundOutput(trimmed))
	}
	out := c.appendEntry(OutcomeExecuted, trimmed, cmd.Action(c.ctx, parsed.Args))
	out.Command = cmd
	return out
}

func (c *Controller) appendEntry(kind OutcomeKind, commandText string, output commands.Output) Outcome {
	e := c.session.AppendTranscript(commandText, output)
	return Outcome{Kind: kind, Entry: &e}
}

// NotFoundOutput is the notice for an unrecognized command line.
func NotFoundOutput(trimmed string) commands.Output {
	return commands.NotFound("Command not found: " + trimmed + "\nType 'help' for available commands.")
}

// FormatHistory numbers history entries from 1, one per line.
func FormatHistory(history []string) string {
	if len(history) == 0 {
		return EmptyHistoryMessage
	}
	lines := make([]string, len(history))
	for i, h := range history {
		lines[i] = fmt.Sprintf("%d. %s", i+1, h)
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// RECALL
// =============================================================================

// RecallPrev moves to the previous history entry. It stops at the oldest
// entry and does not wrap.
func (c *Controller) RecallPrev() Outcome {
	s := c.session
	if len(s.history) == 0 {
		return Outcome{Kind: OutcomeIgnored}
	}
	if s.cursor == NoRecall {
		s.setRecall(len(s.history) - 1)
	} else {
		s.setRecall(max(0, s.cursor-1))
	}
	c.effects.Play(EffectRecall)
	return Outcome{Kind: OutcomeRecalled}
}

// RecallNext moves to the next history entry. Moving past the newest entry
// leaves recall and empties the buffer.
func (c *Controller) RecallNext() Outcome {
	s := c.session
	if s.cursor == NoRecall {
		return Outcome{Kind: OutcomeIgnored}
	}
	next := s.cursor + 1
	if next > len(s.history)-1 {
		s.ResetRecall()
		s.SetInput("")
	} else {
		s.setRecall(next)
	}
	c.effects.Play(EffectRecall)
	return Outcome{Kind: OutcomeRecalled}
}

// =============================================================================
// AUTOCOMPLETE
// =============================================================================

// Autocomplete completes a partially typed command name. A single match
// replaces the buffer with the name and a trailing space. Several matches
// are listed in the transcript and the buffer is left alone.
func (c *Controller) Autocomplete() Outcome {
	buffer := c.session.Input()
	if !commands.IsCommandName(buffer) {
		return Outcome{Kind: OutcomeIgnored}
	}

	matches := c.completer.Match(strings.ToLower(strings.TrimSpace(buffer)))
	switch len(matches) {
	case 0:
		return Outcome{Kind: OutcomeIgnored}
	case 1:
		c.session.SetInput(matches[0] + " ")
		c.effects.Play(EffectComplete)
		return Outcome{Kind: OutcomeCompleted, Matches: matches}
	default:
		out := c.appendEntry(OutcomeAmbiguous, buffer,
			commands.Text("Possible commands: "+strings.Join(matches, ", ")))
		out.Matches = matches
		c.effects.Play(EffectAmbiguous)
		return out
	}
}

// Suggestions returns inline hints for the current buffer.
func (c *Controller) Suggestions(limit int) []string {
	return c.completer.Suggest(c.session.Input(), limit)
}
