// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the termfolio command line.
//
// # Commands
//
//   - termfolio: full-screen view on a terminal, plain prompt otherwise
//   - termfolio plain: line-by-line prompt (liner)
//   - termfolio exec <line>: run one command in a fresh session
//   - termfolio serve: HTTP service with the contact form
//   - termfolio inbox: list stored contact messages
//   - termfolio config init|show|path
//   - termfolio version
//
// # Persistent Flags
//
//	--config      config file (default ~/.termfolio/config.toml)
//	--profile     YAML profile to show
//	--theme       default, matrix or cyberpunk
//	--no-persist  do not restore or save the session
//
// Every command starts the same way: config, logging, profile, registry and,
// when needed, the storage backend. Sessions are restored before the prompt
// opens and saved when it closes.
package cli
