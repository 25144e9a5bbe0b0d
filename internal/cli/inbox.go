// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/contact"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/util"
)

// inboxPreviewWidth caps the message preview in the listing.
const inboxPreviewWidth = 60

func newInboxCmd(flags *rootFlags) *cobra.Command {
	var (
		asJSON bool
		full   bool
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List contact messages received by 'termfolio serve'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, logging.Options{}, true)
			if err != nil {
				return err
			}
			defer a.Close()

			msgs, err := contact.ListMessages(a.store)
			if err != nil {
				return fmt.Errorf("failed to read messages: %w", err)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, msgs)
			}

			st := newPlainStyles(a.cfg.UI.Theme)
			if len(msgs) == 0 {
				fmt.Fprintln(w, st.Muted.Render("No messages."))
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintf(w, "%s  %s <%s>\n",
					st.Prompt.Render(m.ReceivedAt.Local().Format(time.DateTime)), m.Name, m.Email)
				if m.Subject != "" {
					fmt.Fprintf(w, "  %s\n", m.Subject)
				}
				body := m.Message
				if !full {
					body = util.TruncateWidth(strings.Join(strings.Fields(body), " "), inboxPreviewWidth)
				}
				fmt.Fprintf(w, "  %s\n", st.Muted.Render(body))
			}
			fmt.Fprintf(w, "\n%d message(s)\n", len(msgs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&full, "full", false, "print whole messages instead of a preview")
	return cmd
}
