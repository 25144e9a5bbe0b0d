// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes the portfolio terminal and the contact form over
// HTTP so a web front-end can drive the same command table as the TUI.
//
// # Endpoints
//
//   - GET  /health                 - Health check
//   - GET  /api/terminal/commands  - Completable commands with descriptions
//   - POST /api/terminal/exec      - Run one command line in a fresh session
//   - POST /api/terminal/complete  - Tab completion for a partial command
//   - POST /api/contact            - Contact form submission
//
// # Middleware
//
// Requests pass through panic recovery, request ids, zap request logging,
// security headers, CORS (rs/cors), a per-IP token bucket
// (golang.org/x/time/rate) and a body size cap, in that order.
//
// # Usage
//
//	srv := server.NewServer(cfg.Server, registry, cmdCtx).
//		WithContact(contactSvc).
//		WithLogger(logging.Named("server"))
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server
