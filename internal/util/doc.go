// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the storage and rendering
// layers.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//   - StringWidth, TruncateWidth, PadRight: cell-width aware text helpers
//   - Wrap: word wrapping for plain output
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0600)
//	line := util.TruncateWidth(title, 40)
package util
