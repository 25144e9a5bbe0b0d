// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal implements the simulated command line: session state,
// the input controller and session snapshots.
//
// A Session holds the transcript (what is on screen), the command history
// (what was typed), a recall cursor into the history and the input buffer.
// A Controller is the only writer: Submit runs a line, RecallPrev and
// RecallNext browse history, Autocomplete completes a command name.
//
// Dispatch order for Submit:
//
//  1. empty input is ignored
//  2. the trimmed line is added to history
//  3. "echo " prints the rest of the line verbatim
//  4. "clear" empties the transcript
//  5. "history" lists history, including itself
//  6. anything else is looked up in the registry or reported as not found
//
// Nothing here blocks or spawns goroutines; the owning event loop calls the
// controller one event at a time.
package terminal
