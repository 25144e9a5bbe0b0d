// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the command table of the portfolio terminal.
//
// A Registry is an ordered, immutable mapping from lowercase command name to
// a Command whose Action produces an Output. Outputs are a tagged variant:
// plain text, a rich fragment (markdown plus links) or a not-found notice.
//
// # Key Types
//
//   - Registry: ordered command table, built once with NewRegistry
//   - Command: name, description and Action
//   - Output: Text, Rich or NotFound result of one invocation
//   - Completer: prefix completion over registry names plus reserved names
//   - ParseResult: command name and arguments split from a line
//
// # Built-in Commands
//
//   - help, about, skills, projects, contact, resume
//   - experience, certificates, whoami, date, clear, banner
//
// The names clear, history and "echo " are interpreted by the terminal
// controller before the registry is consulted.
//
// # Usage
//
//	reg, err := commands.DefaultRegistry()
//	ctx := commands.NewContext(profile.Default(), reg)
//	cmd, ok := reg.Lookup("Skills")
//	if ok {
//	    out := cmd.Action(ctx, nil)
//	    fmt.Println(out.String())
//	}
package commands
