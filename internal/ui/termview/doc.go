// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package termview is the Bubble Tea front-end of the portfolio terminal.
//
// The model owns a terminal.Controller and maps keys onto it: Enter submits,
// Up and Down walk the history, Tab completes and Ctrl+L clears. Any other key
// edits a bubbles textinput whose value is mirrored into the session buffer.
// The transcript is rendered into a viewport; rich outputs go through glamour
// and their links become OSC 8 hyperlinks when enabled.
//
// Controller effects are queued during an update and turned into commands
// afterwards, so the terminal bell is rung outside the render path.
package termview
