// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package internal contains race detection tests for termfolio.
//
// Run with: go test -race -v ./internal/...
//
// The terminal session itself is owned by one event loop, so these tests
// target what is shared: the global config and logger, the stores, the rate
// limiter and the HTTP handlers.
package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/contact"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/server"
	"github.com/jeranaias/termfolio/internal/storage"
)

// =============================================================================
// TEST CONFIGURATION
// =============================================================================

const (
	// Number of concurrent goroutines for race tests
	raceConcurrency = 50
	// Number of iterations per goroutine
	raceIterations = 20
	// Timeout for race tests
	raceTimeout = 30 * time.Second
)

// =============================================================================
// CONFIG CONCURRENCY TESTS
// =============================================================================

// TestConcurrency_ConfigGlobalAccess reads and replaces the global config
// from many goroutines.
func TestConcurrency_ConfigGlobalAccess(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	config.ResetGlobalForTesting()
	defer config.ResetGlobalForTesting()

	ctx, cancel := context.WithTimeout(context.Background(), raceTimeout)
	defer cancel()

	var wg sync.WaitGroup
	var nilReads atomic.Int64

	for i := 0; i < raceConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < raceIterations; j++ {
				if ctx.Err() != nil {
					return
				}
				cfg := config.Global()
				if cfg == nil {
					nilReads.Add(1)
					continue
				}
				_ = cfg.UI.Theme
				_ = cfg.Storage.Backend
				_ = cfg.Terminal.Persist
			}
		}()
	}

	for i := 0; i < raceConcurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < raceIterations/5; j++ {
				if ctx.Err() != nil {
					return
				}
				cfg := config.Default()
				cfg.Terminal.Persist = idx%2 == 0
				config.SetGlobal(cfg)
			}
		}(i)
	}

	wg.Wait()
	if n := nilReads.Load(); n > 0 {
		t.Errorf("Global() returned nil %d times", n)
	}
}

// =============================================================================
// STORAGE CONCURRENCY TESTS
// =============================================================================

// TestConcurrency_StoreAccess writes and reads distinct keys in parallel.
func TestConcurrency_StoreAccess(t *testing.T) {
	for _, backend := range []string{storage.BackendMemory, storage.BackendFile, storage.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			store, err := storage.Open(backend, t.TempDir())
			if err != nil {
				t.Fatalf("Open(%s) error = %v", backend, err)
			}
			defer store.Close()

			var wg sync.WaitGroup
			errCh := make(chan error, raceConcurrency)

			for i := 0; i < raceConcurrency; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					key := fmt.Sprintf("race.%d", idx)
					for j := 0; j < raceIterations; j++ {
						want := fmt.Sprintf("value-%d", j)
						if err := store.Set(key, want); err != nil {
							errCh <- err
							return
						}
						got, ok, err := store.Get(key)
						if err != nil || !ok || got != want {
							errCh <- fmt.Errorf("Get(%s) = %q, %v, %v; want %q", key, got, ok, err, want)
							return
						}
					}
				}(i)
			}

			wg.Wait()
			close(errCh)
			for err := range errCh {
				t.Error(err)
			}

			keys, err := store.Keys("race.")
			if err != nil {
				t.Fatalf("Keys() error = %v", err)
			}
			if len(keys) != raceConcurrency {
				t.Errorf("Keys() = %d keys, want %d", len(keys), raceConcurrency)
			}
		})
	}
}

// =============================================================================
// RATE LIMITER CONCURRENCY TESTS
// =============================================================================

// TestConcurrency_RateLimiter hammers the limiter from many clients and
// checks no client gets more than its burst.
func TestConcurrency_RateLimiter(t *testing.T) {
	const (
		clients = 10
		burst   = 5
	)
	rl := server.NewRateLimiter(1, burst)

	var wg sync.WaitGroup
	allowed := make([]atomic.Int64, clients)

	for i := 0; i < raceConcurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			client := idx % clients
			ip := fmt.Sprintf("10.0.0.%d", client)
			for j := 0; j < raceIterations; j++ {
				if rl.Allow(ip) {
					allowed[client].Add(1)
				}
			}
		}(i)
	}

	wg.Wait()
	for i := range allowed {
		if n := allowed[i].Load(); n < burst || n > burst+1 {
			t.Errorf("client %d allowed %d requests, want %d", i, n, burst)
		}
	}
	if v := rl.Visitors(); v != clients {
		t.Errorf("Visitors() = %d, want %d", v, clients)
	}
}

// =============================================================================
// HTTP CONCURRENCY TESTS
// =============================================================================

// TestConcurrency_ServerRequests runs exec, complete and contact requests
// against one handler at the same time.
func TestConcurrency_ServerRequests(t *testing.T) {
	logging.InitWriter(io.Discard, "debug")

	store := storage.NewMemoryStore()
	srv := newTestServer(t).
		WithContact(contact.NewService(contact.StoreRelay{Store: store})).
		WithLogger(logging.Named("server"))
	h := srv.Handler()

	var wg sync.WaitGroup
	var failures atomic.Int64
	var contacts atomic.Int64

	for i := 0; i < raceConcurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < raceIterations/4; j++ {
				var path, body string
				switch (idx + j) % 3 {
				case 0:
					path, body = "/api/terminal/exec", `{"command":"projects"}`
				case 1:
					path, body = "/api/terminal/complete", `{"input":"c"}`
				default:
					path = "/api/contact"
					body = fmt.Sprintf(`{"name":"n%d","email":"u%d@example.com","subject":"s","message":"m"}`, idx, j)
					contacts.Add(1)
				}
				if w := postJSON(t, h, path, body); w.Code != http.StatusOK {
					failures.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()
	if n := failures.Load(); n > 0 {
		t.Errorf("%d requests failed", n)
	}

	msgs, err := contact.ListMessages(store)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if int64(len(msgs)) != contacts.Load() {
		t.Errorf("stored %d messages, want %d", len(msgs), contacts.Load())
	}
}
