// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/termfolio/internal/server"
)

// Version information (set at build time via -ldflags)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call returns a fresh tree so
// tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	server.Version = Version

	root := &cobra.Command{
		Use:   "termfolio",
		Short: "An interactive portfolio in your terminal",
		Long: `termfolio is a portfolio you browse by typing commands.

Run it in a terminal for the full-screen view. When stdin or stdout is not a
terminal it falls back to a plain line-by-line prompt.

Try 'help' once it starts.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if Interactive() {
				return runTUI(cmd, flags)
			}
			return runPlain(cmd, flags, nil)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.termfolio/config.toml)")
	pf.StringVar(&flags.profilePath, "profile", "", "YAML profile to show instead of the built-in one")
	pf.StringVar(&flags.theme, "theme", "", "color theme: default, matrix or cyberpunk")
	pf.BoolVar(&flags.noPersist, "no-persist", false, "do not restore or save the session")

	root.AddCommand(
		newPlainCmd(flags),
		newExecCmd(flags),
		newServeCmd(flags),
		newInboxCmd(flags),
		newConfigCmd(flags),
		newVersionCmd(),
	)
	return root
}
