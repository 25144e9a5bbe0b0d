// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package internal provides integration tests for the complete termfolio
// system.
//
// These tests verify end-to-end functionality including:
// - Session persistence through every storage backend
// - Configuration load and save
// - Custom profiles driving the built-in commands
// - The HTTP service agreeing with the local controller
// - Contact messages flowing from the API into the inbox store
package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/contact"
	"github.com/jeranaias/termfolio/internal/profile"
	"github.com/jeranaias/termfolio/internal/server"
	"github.com/jeranaias/termfolio/internal/storage"
	"github.com/jeranaias/termfolio/internal/terminal"
)

// =============================================================================
// TEST UTILITIES
// =============================================================================

// newController builds a controller over the default registry.
func newController(t *testing.T, p *profile.Profile, opts ...terminal.Option) *terminal.Controller {
	t.Helper()
	reg, err := commands.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	return terminal.NewController(reg, commands.NewContext(p, reg), opts...)
}

// newTestServer returns a server with rate limiting off, so tests can send
// many requests from the same address.
func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	reg, err := commands.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	cfg := config.Default().Server
	cfg.RatePerMinute = 0
	return server.NewServer(cfg, reg, nil)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// =============================================================================
// SESSION PERSISTENCE
// =============================================================================

// TestSessionPersistenceAcrossBackends runs a session, saves it, reopens the
// store and continues where it left off.
func TestSessionPersistenceAcrossBackends(t *testing.T) {
	for _, backend := range []string{storage.BackendFile, storage.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()

			store, err := storage.Open(backend, dir)
			if err != nil {
				t.Fatalf("Open(%s) error = %v", backend, err)
			}
			ctrl := newController(t, nil)
			ctrl.Greet("hello")
			for _, line := range []string{"projects", "echo one", "nosuch"} {
				ctrl.Submit(line)
			}
			if err := terminal.Save(store, ctrl.Session()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			store, err = storage.Open(backend, dir)
			if err != nil {
				t.Fatalf("reopen %s error = %v", backend, err)
			}
			defer store.Close()

			restored, err := terminal.Restore(store)
			if err != nil {
				t.Fatalf("Restore() error = %v", err)
			}
			if got := restored.Len(); got != 4 {
				t.Fatalf("restored transcript length = %d, want 4", got)
			}

			ctrl = newController(t, nil, terminal.WithSession(restored))
			out := ctrl.Submit("history")
			if out.Entry == nil {
				t.Fatal("history produced no entry")
			}
			if out.Entry.Seq != 4 {
				t.Errorf("next Seq = %d, want 4", out.Entry.Seq)
			}
			want := "1. projects\n2. echo one\n3. nosuch\n4. history"
			if out.Entry.Output.Text != want {
				t.Errorf("history output = %q, want %q", out.Entry.Output.Text, want)
			}

			// Rich fragments survive the round trip
			projects := restored.Transcript()[1]
			if !projects.Output.IsRich() {
				t.Errorf("projects entry kind = %v, want rich", projects.Output.Kind)
			}
		})
	}
}

// TestCorruptSnapshotStartsFresh verifies a damaged store never blocks startup.
func TestCorruptSnapshotStartsFresh(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Set(terminal.TranscriptKey, "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	s, err := terminal.Restore(store)
	if err == nil {
		t.Error("Restore() error = nil, want corruption error")
	}
	if s == nil || s.Len() != 0 || len(s.History()) != 0 {
		t.Fatalf("Restore() session = %+v, want fresh session", s)
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// TestConfigLoadSave writes a config, loads it back and applies an
// environment override on top.
func TestConfigLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := config.Default()
	cfg.UI.Theme = "cyberpunk"
	cfg.Storage.Backend = storage.BackendSQLite
	cfg.Server.AllowedOrigins = []string{"https://example.dev"}
	if err := config.SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config permissions = %o, want 600", perm)
	}

	t.Setenv("TERMFOLIO_UI_THEME", "matrix")
	loaded, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.UI.Theme != "matrix" {
		t.Errorf("theme = %q, want env override %q", loaded.UI.Theme, "matrix")
	}
	if loaded.Storage.Backend != storage.BackendSQLite {
		t.Errorf("backend = %q, want %q", loaded.Storage.Backend, storage.BackendSQLite)
	}
	if len(loaded.Server.AllowedOrigins) != 1 || loaded.Server.AllowedOrigins[0] != "https://example.dev" {
		t.Errorf("allowed origins = %v", loaded.Server.AllowedOrigins)
	}
}

// =============================================================================
// PROFILES
// =============================================================================

// TestCustomProfileDrivesCommands loads a minimal profile and checks the
// commands pick up its content and the defaults it leaves out.
func TestCustomProfileDrivesCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	yaml := `name: Jordan Park
user: jordan
tagline: Builds things
skills:
  - { name: Go, level: 10, label: Expert }
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	p, err := profile.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Prompt() != "jordan@portfolio" {
		t.Errorf("Prompt() = %q, want %q", p.Prompt(), "jordan@portfolio")
	}

	ctrl := newController(t, p)
	if got := ctrl.Submit("whoami").Entry.Output.Text; got != "jordan" {
		t.Errorf("whoami = %q, want %q", got, "jordan")
	}
	if got := ctrl.Submit("skills").Entry.Output.Text; !strings.Contains(got, "Go") {
		t.Errorf("skills output missing Go:\n%s", got)
	}
	if !strings.Contains(p.Welcome, "Jordan") {
		t.Errorf("Welcome = %q, want derived from name", p.Welcome)
	}
}

// =============================================================================
// HTTP SERVICE
// =============================================================================

// TestHTTPExecMatchesController checks that the service returns exactly what
// a local session produces for the same command.
func TestHTTPExecMatchesController(t *testing.T) {
	h := newTestServer(t).Handler()
	for _, line := range []string{"help", "about", "projects", "echo same text", "nosuch"} {
		t.Run(line, func(t *testing.T) {
			w := postJSON(t, h, "/api/terminal/exec", `{"command":"`+line+`"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			var resp server.ExecResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if len(resp.Entries) != 1 {
				t.Fatalf("entries = %d, want 1", len(resp.Entries))
			}

			ctrl := newController(t, nil)
			out := ctrl.Submit(line)
			if out.Kind.String() != resp.Outcome {
				t.Errorf("outcome = %q, local %q", resp.Outcome, out.Kind.String())
			}
			got, want := resp.Entries[0].Output, out.Entry.Output
			if got.Kind != want.Kind || got.Text != want.Text {
				t.Errorf("output = %+v, local %+v", got, want)
			}
		})
	}
}

// =============================================================================
// CONTACT
// =============================================================================

// TestContactFlowToInbox posts the contact form and reads the message back
// from the SQLite store.
func TestContactFlowToInbox(t *testing.T) {
	store, err := storage.Open(storage.BackendSQLite, t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	srv := newTestServer(t).WithContact(contact.NewService(
		contact.LogRelay{To: "owner@example.dev"},
		contact.StoreRelay{Store: store},
	))
	h := srv.Handler()

	body := `{"name":"Sam","email":"sam@example.com","subject":"Hi","message":"Let's talk"}`
	w := postJSON(t, h, "/api/contact", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp server.ContactResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error = %v", err)
	}

	// The honeypot is rejected before any relay runs
	w = postJSON(t, h, "/api/contact", `{"name":"Bot","email":"bot@example.com","subject":"x","message":"y","honeypot":"filled"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("honeypot status = %d, want 400", w.Code)
	}

	msgs, err := contact.ListMessages(store)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if msgs[0].ID != resp.ID || msgs[0].Name != "Sam" {
		t.Errorf("stored message = %+v, want id %s from Sam", msgs[0], resp.ID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() without Start error = %v", err)
	}
}
