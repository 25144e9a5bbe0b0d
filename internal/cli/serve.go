// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - HTTP service for web front-ends.

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/contact"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/profile"
	"github.com/jeranaias/termfolio/internal/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the command set and contact form over HTTP",
		Long: `Start the HTTP service used by web front-ends.

Endpoints:
  GET  /health
  GET  /api/terminal/commands
  POST /api/terminal/exec
  POST /api/terminal/complete
  POST /api/contact

Contact messages are logged and kept in the configured store; list them
with 'termfolio inbox'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, logging.Options{Stderr: true}, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			svc := contact.NewService(
				contact.LogRelay{Log: logging.Named("contact"), To: contactEmail(a.profile)},
				contact.StoreRelay{Store: a.store},
			)
			srv := server.NewServer(a.cfg.Server, a.registry, a.cmdCtx).
				WithContact(svc).
				WithLogger(logging.Named("server"))

			ln, err := net.Listen("tcp", srv.Addr())
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr(), err)
			}
			st := newPlainStyles(a.cfg.UI.Theme)
			fmt.Fprintf(cmd.OutOrStdout(), "%s termfolio %s on http://%s\n", st.Success.Render("Listening"), Version, ln.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			timeout := time.Duration(a.cfg.Server.ShutdownTimeoutSecs) * time.Second
			return serveUntilDone(ctx, srv, ln, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts down
// within timeout.
func serveUntilDone(ctx context.Context, srv *server.Server, ln net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	// Serve may not have reached the listener yet when ctx ended early
	_ = ln.Close()
	if err := <-errCh; err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// contactEmail returns the profile's email contact, if any.
func contactEmail(p *profile.Profile) string {
	for _, c := range p.Contact {
		if strings.EqualFold(c.Label, "email") {
			return c.Value
		}
	}
	return ""
}
