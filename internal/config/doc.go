// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for termfolio.
//
// Settings come from a TOML file with environment overrides, sensible
// defaults and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - TerminalConfig: persistence, greeting and suggestion settings
//   - StorageConfig: snapshot backend and directory
//   - UIConfig: theme, bell, clock and hyperlink settings
//   - ServerConfig: HTTP address, CORS origins and rate limits
//   - LogConfig: log level, file and encoding
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TERMFOLIO_<SECTION>_<KEY>)
//   - ~/.termfolio/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	theme := cfg.UI.Theme
package config
