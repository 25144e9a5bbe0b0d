// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared startup for every termfolio command.
//
// Order matters: config first (it locates the log file and the store), then
// logging, then the profile and registry, then storage.

package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/profile"
	"github.com/jeranaias/termfolio/internal/storage"
	"github.com/jeranaias/termfolio/internal/terminal"
)

// rootFlags are the persistent flags shared by all commands.
type rootFlags struct {
	configPath  string
	profilePath string
	theme       string
	noPersist   bool
}

// app bundles what a command needs once startup succeeded.
type app struct {
	cfg      *config.Config
	profile  *profile.Profile
	registry *commands.Registry
	cmdCtx   *commands.Context
	store    storage.Store
	log      *zap.SugaredLogger
}

// loadConfig reads the config file named by --config, or the default one,
// and applies the flag overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFromPath(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if flags.profilePath != "" {
		cfg.Profile.Path = flags.profilePath
	}
	if flags.theme != "" {
		cfg.UI.Theme = strings.ToLower(flags.theme)
	}
	if flags.noPersist {
		cfg.Terminal.Persist = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

// newApp performs the full startup. withStore opens the configured storage
// backend; commands that never touch storage skip it.
func newApp(flags *rootFlags, logOpts logging.Options, withStore bool) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	if err := logging.Init(cfg.Log, logOpts); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logging.Named("cli")

	p, err := profile.Load(cfg.Profile.Path)
	if err != nil {
		return nil, err
	}
	reg, err := commands.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}

	a := &app{
		cfg:      cfg,
		profile:  p,
		registry: reg,
		cmdCtx:   commands.NewContext(p, reg),
		log:      log,
	}

	if withStore {
		store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
		}
		a.store = store
	}

	log.Debugw("startup complete",
		"profile", p.Prompt(),
		"commands", reg.Len(),
		"backend", cfg.Storage.Backend,
		"persist", cfg.Terminal.Persist,
	)
	return a, nil
}

// loadSession restores the previous session when persistence is on.
// Restore always returns a usable session; an unreadable snapshot is logged
// and replaced by a fresh one.
func (a *app) loadSession() *terminal.Session {
	if a.store == nil || !a.cfg.Terminal.Persist {
		return terminal.NewSession()
	}
	s, err := terminal.Restore(a.store)
	if err != nil {
		a.log.Warnw("discarding unreadable session snapshot", "error", err)
	}
	return s
}

// greet adds the welcome banner to an empty session.
func (a *app) greet(ctrl *terminal.Controller) {
	if !a.cfg.Terminal.Greeting || ctrl.Session().Len() > 0 {
		return
	}
	if a.profile.Welcome != "" {
		ctrl.Greet(a.profile.Welcome)
	}
}

// saveSession writes s back when persistence is on. Failures are logged.
func (a *app) saveSession(s *terminal.Session) {
	if a.store == nil || !a.cfg.Terminal.Persist || s == nil {
		return
	}
	if err := terminal.Save(a.store, s); err != nil {
		a.log.Errorw("failed to save session", "error", err)
		return
	}
	a.log.Debugw("session saved", "entries", s.Len(), "history", len(s.History()))
}

// Close releases the store and flushes the logger.
func (a *app) Close() error {
	defer logging.Sync()
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
