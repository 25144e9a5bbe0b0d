// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// exec.go - Run a single command line and print the result.

package cli

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/terminal"
)

// =============================================================================
// JSON OUTPUT
// =============================================================================

// JSONResponse is the envelope printed by --json.
type JSONResponse struct {
	Success   bool    `json:"success"`
	Command   string  `json:"command"`
	Data      any     `json:"data,omitempty"`
	Error     *string `json:"error,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// ExecData is the payload of an exec response.
type ExecData struct {
	Outcome string           `json:"outcome"`
	Entries []terminal.Entry `json:"entries"`
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// COMMAND
// =============================================================================

func newExecCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "exec <command line>",
		Short: "Run one portfolio command and print its output",
		Long: `Run one command line in a fresh session and print the output.

Examples:
  termfolio exec about
  termfolio exec echo hello world
  termfolio exec --json projects`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, logging.Options{}, false)
			if err != nil {
				return err
			}
			defer a.Close()

			line := strings.Join(args, " ")
			ctrl := terminal.NewController(a.registry, a.cmdCtx, terminal.WithLogger(logging.Named("exec")))
			outcome := ctrl.Submit(line)

			entries := ctrl.Session().Transcript()
			if entries == nil {
				entries = []terminal.Entry{}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				resp := JSONResponse{
					Success:   outcome.Kind != terminal.OutcomeNotFound,
					Command:   strings.TrimSpace(line),
					Data:      ExecData{Outcome: outcome.Kind.String(), Entries: entries},
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				}
				if outcome.Kind == terminal.OutcomeNotFound {
					msg := "command not found"
					resp.Error = &msg
				}
				return writeJSON(w, resp)
			}

			st := newPlainStyles(a.cfg.UI.Theme)
			for _, e := range entries {
				printEntry(w, e, st, false)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	// Everything after the command name belongs to the command line
	cmd.Flags().SetInterspersed(false)
	return cmd
}
