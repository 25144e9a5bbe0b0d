// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/contact"
	"github.com/jeranaias/termfolio/internal/terminal"
)

// ============================================================================
// CONSTANTS
// ============================================================================

// Version is reported by /health. The CLI overwrites it at startup.
var Version = "dev"

// MaxCommandLen bounds the command line accepted by exec and complete. It
// matches the cap every terminal front-end applies.
const MaxCommandLen = terminal.MaxInputLen

// Contact responses.
const (
	ContactSentMessage   = "Message sent successfully"
	ContactFailedMessage = "Failed to send message"
)

// ============================================================================
// SERVER
// ============================================================================

// Server is the HTTP API that exposes the terminal and the contact form.
type Server struct {
	cfg    config.ServerConfig
	router *http.ServeMux
	server *http.Server

	registry  *commands.Registry
	completer *commands.Completer
	cmdCtx    *commands.Context
	contact   *contact.Service
	log       *zap.SugaredLogger

	started time.Time

	mu sync.RWMutex
}

// NewServer creates a Server for reg. A nil cmdCtx uses the default profile.
func NewServer(cfg config.ServerConfig, reg *commands.Registry, cmdCtx *commands.Context) *Server {
	if cmdCtx == nil {
		cmdCtx = commands.NewContext(nil, reg)
	} else if cmdCtx.Registry == nil {
		cp := *cmdCtx
		cp.Registry = reg
		cmdCtx = &cp
	}
	s := &Server{
		cfg:       cfg,
		router:    http.NewServeMux(),
		registry:  reg,
		completer: commands.NewCompleter(reg),
		cmdCtx:    cmdCtx,
		log:       zap.NewNop().Sugar(),
		started:   time.Now(),
	}

	s.setupRoutes()
	return s
}

// WithContact sets the contact form service. Without one, POST /api/contact
// answers 503.
func (s *Server) WithContact(svc *contact.Service) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contact = svc
	return s
}

// WithLogger sets the request and lifecycle logger.
func (s *Server) WithLogger(l *zap.SugaredLogger) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l != nil {
		s.log = l
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	s.router.HandleFunc("GET /api/terminal/commands", s.handleCommands)
	s.router.HandleFunc("POST /api/terminal/exec", s.handleExec)
	s.router.HandleFunc("POST /api/terminal/complete", s.handleComplete)

	s.router.HandleFunc("POST /api/contact", s.handleContact)
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	s.mu.RLock()
	log := s.log
	s.mu.RUnlock()

	return Chain(
		RecoveryMiddleware(log),
		RequestIDMiddleware(),
		LoggingMiddleware(log),
		SecurityHeadersMiddleware(),
		CORSMiddleware(s.cfg.AllowedOrigins),
		RateLimitMiddleware(NewRateLimiter(s.cfg.RatePerMinute, s.cfg.Burst)),
		MaxBodyMiddleware(s.cfg.MaxBodyBytes),
	)(s.router)
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Commands int    `json:"commands"`
	Contact  string `json:"contact"`
	Uptime   string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	svc := s.contact
	s.mu.RUnlock()

	health := HealthResponse{
		Status:   "ok",
		Version:  Version,
		Commands: s.registry.Len(),
		Contact:  "configured",
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	}
	if svc == nil {
		health.Contact = "not_configured"
	}

	writeJSON(w, http.StatusOK, health)
}

// ============================================================================
// TERMINAL HANDLERS
// ============================================================================

// CommandInfo describes one completable command.
type CommandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	names := s.completer.Universe()
	infos := make([]CommandInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, CommandInfo{Name: name, Description: s.completer.Describe(name)})
	}
	writeJSON(w, http.StatusOK, infos)
}

// ExecRequest is the body of POST /api/terminal/exec.
type ExecRequest struct {
	Command string `json:"command"`
}

// ExecResponse lists the transcript entries produced by the command.
type ExecResponse struct {
	Entries []terminal.Entry `json:"entries"`
	Outcome string           `json:"outcome"`
}

// handleExec runs one command line in a fresh session. Nothing is kept
// between requests.
func (s *Server) handleExec(w http.ResponseWriter, r *http.Request) {
	var req ExecRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Command) > MaxCommandLen {
		writeError(w, http.StatusBadRequest, "command is too long")
		return
	}

	ctrl := terminal.NewController(s.registry, s.cmdCtx, terminal.WithLogger(s.logger()))
	outcome := ctrl.Submit(req.Command)

	entries := ctrl.Session().Transcript()
	if entries == nil {
		entries = []terminal.Entry{}
	}
	writeJSON(w, http.StatusOK, ExecResponse{
		Entries: entries,
		Outcome: outcome.Kind.String(),
	})
}

// CompleteRequest is the body of POST /api/terminal/complete.
type CompleteRequest struct {
	Input string `json:"input"`
}

// CompleteResponse carries every match and, for a unique match, the text
// that should replace the input.
type CompleteResponse struct {
	Matches    []string `json:"matches"`
	Completion string   `json:"completion,omitempty"`
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Input) > MaxCommandLen {
		writeError(w, http.StatusBadRequest, "input is too long")
		return
	}

	resp := CompleteResponse{Matches: []string{}}
	prefix := strings.TrimSpace(req.Input)
	if prefix != "" {
		if m := s.completer.Match(prefix); len(m) > 0 {
			resp.Matches = m
		}
		if len(resp.Matches) == 1 {
			resp.Completion = resp.Matches[0] + " "
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ============================================================================
// CONTACT HANDLER
// ============================================================================

// ContactResponse is the success body of POST /api/contact.
type ContactResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	svc := s.contact
	s.mu.RUnlock()
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "contact form is not configured")
		return
	}

	var sub contact.Submission
	if !s.decode(w, r, &sub) {
		return
	}

	m, err := svc.Submit(r.Context(), sub)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ContactResponse{Message: ContactSentMessage, ID: m.ID})
	case contact.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger().Errorw("contact delivery failed",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, ContactFailedMessage)
	}
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
// http.ErrServerClosed is not reported as an error.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	s.logger().Infow("server started", "addr", ln.Addr().String(), "version", Version)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}

	s.logger().Infow("server shutting down")
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *Server) logger() *zap.SugaredLogger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log
}

// decode reads a JSON body into v, writing a 400 or 413 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
