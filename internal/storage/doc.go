// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the key-value stores behind session snapshots and
// stored contact messages.
//
// # Key Types
//
//   - Store: Get/Set/Delete/Keys over string values
//   - FileStore: one file per key under ~/.termfolio/state, atomic writes
//   - SQLiteStore: a single kv table in termfolio.db
//   - MemoryStore: process-local map
//
// # Usage
//
//	store, err := storage.Open(storage.BackendSQLite, cfg.Storage.Dir)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//	sess, _ := terminal.Restore(store)
package storage
