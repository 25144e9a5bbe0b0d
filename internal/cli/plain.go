// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// plain.go - Line-by-line prompt for dumb terminals and pipes.
//
// Uses liner for line editing, Tab completion and Up/Down history when a
// terminal is attached. liner reads plain lines when it is not.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/terminal"
	"github.com/jeranaias/termfolio/internal/util"
)

// lineReader is the part of liner.State the prompt loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

func newPlainCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plain",
		Short: "Run the line-by-line prompt instead of the full-screen view",
		Long: `Run the portfolio as a simple prompt. Each line you enter runs as a
command and its output is printed below it.

Tab completes command names, Up and Down walk the history.
Press Ctrl+D or Ctrl+C to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlain(cmd, flags, nil)
		},
	}
}

// runPlain runs the prompt loop. A nil reader uses liner on the process
// terminal.
func runPlain(cmd *cobra.Command, flags *rootFlags, reader lineReader) error {
	a, err := newApp(flags, logging.Options{}, true)
	if err != nil {
		return err
	}
	defer a.Close()

	session := a.loadSession()
	ctrl := terminal.NewController(a.registry, a.cmdCtx,
		terminal.WithSession(session),
		terminal.WithLogger(logging.Named("plain")),
	)

	if reader == nil {
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)
		line.SetCompleter(lineCompleter(ctrl.Completer()))
		reader = line
	}
	defer reader.Close()

	for _, h := range session.History() {
		reader.AppendHistory(h)
	}

	out := cmd.OutOrStdout()
	st := newPlainStyles(a.cfg.UI.Theme)

	// A resumed session reprints what was on screen.
	for _, e := range session.Transcript() {
		printEntry(out, e, st, true)
	}
	if session.Len() == 0 {
		a.greet(ctrl)
		for _, e := range ctrl.Session().Transcript() {
			printEntry(out, e, st, false)
		}
	}

	err = promptLoop(out, reader, ctrl, st, a.profile.Prompt()+":~$ ")
	a.saveSession(ctrl.Session())
	return err
}

// promptLoop reads and runs lines until EOF or Ctrl+C.
func promptLoop(w io.Writer, reader lineReader, ctrl *terminal.Controller, st plainStyles, prompt string) error {
	for {
		line, err := reader.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(w)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		outcome := ctrl.Submit(line)
		switch outcome.Kind {
		case terminal.OutcomeIgnored:
			continue
		case terminal.OutcomeCleared:
			if IsStdoutTTY() {
				termenv.NewOutput(w).ClearScreen()
			}
		default:
			if outcome.Entry != nil {
				printEntry(w, *outcome.Entry, st, false)
			}
		}
		reader.AppendHistory(strings.TrimSpace(line))
	}
}

// lineCompleter adapts the command completer to liner. Only a bare command
// name is completed, and a unique match gets the trailing space the other
// front-ends add.
func lineCompleter(c *commands.Completer) liner.Completer {
	return func(line string) []string {
		if !commands.IsCommandName(line) {
			return nil
		}
		matches := c.Match(line)
		if len(matches) == 1 {
			return []string{matches[0] + " "}
		}
		return matches
	}
}

// printEntry writes the plain rendering of e. withPrompt prefixes the
// command line, which is used when replaying a restored transcript.
func printEntry(w io.Writer, e terminal.Entry, st plainStyles, withPrompt bool) {
	if withPrompt && e.CommandText != "" {
		fmt.Fprintln(w, st.Prompt.Render("$")+" "+e.CommandText)
	}

	text := util.Wrap(strings.TrimRight(e.Output.Text, "\n"), st.Width)
	switch {
	case e.CommandText == "":
		fmt.Fprintln(w, renderLines(st.Greeting, text))
	case e.Output.Kind == commands.OutputNotFound:
		fmt.Fprintln(w, renderLines(st.NotFound, text))
	case text != "":
		fmt.Fprintln(w, renderLines(st.Output, text))
	}
}

// renderLines styles each line on its own. Rendering a block would pad every
// line to the widest one.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
