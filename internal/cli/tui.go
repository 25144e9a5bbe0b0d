// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/ui/termview"
)

// runTUI starts the full-screen terminal and saves the session on exit.
func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	a, err := newApp(flags, logging.Options{}, true)
	if err != nil {
		return err
	}
	defer a.Close()

	session := a.loadSession()

	palette, ok := styles.PaletteFor(a.cfg.UI.Theme)
	if !ok {
		palette = styles.DefaultPalette
	}
	theme := styles.NewThemeWithProfile(palette, GetColorProfile(), termenv.HasDarkBackground())

	model := termview.New(termview.Options{
		Registry:       a.registry,
		Context:        a.cmdCtx,
		Session:        session,
		Theme:          theme,
		Bell:           a.cfg.UI.Bell,
		BellWriter:     cmd.ErrOrStderr(),
		Hyperlinks:     a.cfg.UI.Hyperlinks,
		ClockInterval:  time.Duration(a.cfg.UI.ClockIntervalSecs) * time.Second,
		MaxSuggestions: a.cfg.Terminal.MaxSuggestions,
		Logger:         logging.Named("tui"),
	})
	a.greet(model.Controller())

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if a.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	a.log.Infow("starting terminal", "theme", a.cfg.UI.Theme, "resumed", session.Len())
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	if m, ok := final.(termview.Model); ok {
		a.saveSession(m.Session())
	} else {
		a.saveSession(session)
	}
	return nil
}
