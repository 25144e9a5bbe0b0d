// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/jeranaias/termfolio/internal/util"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TERMFOLIO_"

// Accepted values for enumerated settings.
var (
	ValidThemes    = []string{"default", "matrix", "cyberpunk"}
	ValidBackends  = []string{"file", "sqlite", "memory"}
	ValidLogLevels = []string{"debug", "info", "warn", "error"}
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete termfolio configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Terminal TerminalConfig `toml:"terminal" json:"terminal" envPrefix:"TERMINAL_"`
	Profile  ProfileConfig  `toml:"profile" json:"profile" envPrefix:"PROFILE_"`
	Storage  StorageConfig  `toml:"storage" json:"storage" envPrefix:"STORAGE_"`
	UI       UIConfig       `toml:"ui" json:"ui" envPrefix:"UI_"`
	Server   ServerConfig   `toml:"server" json:"server" envPrefix:"SERVER_"`
	Log      LogConfig      `toml:"log" json:"log" envPrefix:"LOG_"`
}

// TerminalConfig controls the simulated command line.
type TerminalConfig struct {
	// Persist saves transcript and history between runs
	Persist bool `toml:"persist" json:"persist" env:"PERSIST"`
	// Greeting prints the profile welcome on a fresh session
	Greeting bool `toml:"greeting" json:"greeting" env:"GREETING"`
	// MaxSuggestions caps inline command hints (0 disables them)
	MaxSuggestions int `toml:"max_suggestions" json:"max_suggestions" env:"MAX_SUGGESTIONS"`
}

// ProfileConfig points at the portfolio content.
type ProfileConfig struct {
	// Path is a YAML profile; empty uses the built-in one
	Path string `toml:"path" json:"path" env:"PATH"`
}

// StorageConfig selects where snapshots and contact messages go.
type StorageConfig struct {
	// Backend is "file", "sqlite" or "memory"
	Backend string `toml:"backend" json:"backend" env:"BACKEND"`
	// Dir holds the store; defaults to ~/.termfolio/state
	Dir string `toml:"dir" json:"dir" env:"DIR"`
}

// UIConfig contains TUI settings.
type UIConfig struct {
	// Theme is "default", "matrix" or "cyberpunk"
	Theme string `toml:"theme" json:"theme" env:"THEME"`
	// Bell rings the terminal bell on unknown commands
	Bell bool `toml:"bell" json:"bell" env:"BELL"`
	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `toml:"alt_screen" json:"alt_screen" env:"ALT_SCREEN"`
	// Hyperlinks emits OSC 8 links for rich output
	Hyperlinks bool `toml:"hyperlinks" json:"hyperlinks" env:"HYPERLINKS"`
	// ClockIntervalSecs is the header clock refresh period
	ClockIntervalSecs int `toml:"clock_interval_secs" json:"clock_interval_secs" env:"CLOCK_INTERVAL_SECS"`
}

// ServerConfig contains HTTP service settings.
type ServerConfig struct {
	Addr           string   `toml:"addr" json:"addr" env:"ADDR"`
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	// RatePerMinute is the per-client request budget
	RatePerMinute int `toml:"rate_per_minute" json:"rate_per_minute" env:"RATE_PER_MINUTE"`
	Burst         int `toml:"burst" json:"burst" env:"BURST"`
	// MaxBodyBytes caps request bodies
	MaxBodyBytes int64 `toml:"max_body_bytes" json:"max_body_bytes" env:"MAX_BODY_BYTES"`
	// ShutdownTimeoutSecs bounds graceful shutdown
	ShutdownTimeoutSecs int `toml:"shutdown_timeout_secs" json:"shutdown_timeout_secs" env:"SHUTDOWN_TIMEOUT_SECS"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `toml:"level" json:"level" env:"LEVEL"`
	// File is the rotating log file; defaults to ~/.termfolio/logs/termfolio.log
	File string `toml:"file" json:"file" env:"FILE"`
	// Dev switches to human-readable console encoding
	Dev bool `toml:"dev" json:"dev" env:"DEV"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Terminal: TerminalConfig{
			Persist:        true,
			Greeting:       true,
			MaxSuggestions: 4,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		UI: UIConfig{
			Theme:             "default",
			AltScreen:         true,
			Hyperlinks:        true,
			ClockIntervalSecs: 60,
		},
		Server: ServerConfig{
			Addr:                "127.0.0.1:8080",
			AllowedOrigins:      []string{"http://localhost:3000"},
			RatePerMinute:       60,
			Burst:               10,
			MaxBodyBytes:        64 << 10,
			ShutdownTimeoutSecs: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the termfolio configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".termfolio"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.termfolio/config.toml if it exists, applies environment
// overrides, fills defaults and validates.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		path = ""
	}
	return load(path, false)
}

// LoadFromPath is Load for an explicit file, which must exist.
func LoadFromPath(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, mustExist bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		err := LoadTOML(cfg, path)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist) && !mustExist:
		default:
			return nil, err
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path over cfg. Keys absent from the file keep the values
// already in cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to load TOML config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides applies TERMFOLIO_* environment variables, e.g.
// TERMFOLIO_UI_THEME=matrix or TERMFOLIO_SERVER_ALLOWED_ORIGINS=a,b.
// Unset variables leave the current value alone.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// SetDefaults fills derived and zero values.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.ClockIntervalSecs <= 0 {
		c.UI.ClockIntervalSecs = defaults.UI.ClockIntervalSecs
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = defaults.Server.MaxBodyBytes
	}
	if c.Server.ShutdownTimeoutSecs <= 0 {
		c.Server.ShutdownTimeoutSecs = defaults.Server.ShutdownTimeoutSecs
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)

	if dir, err := ConfigDir(); err == nil {
		if c.Storage.Dir == "" {
			c.Storage.Dir = filepath.Join(dir, "state")
		}
		if c.Log.File == "" {
			c.Log.File = filepath.Join(dir, "logs", "termfolio.log")
		}
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to ~/.termfolio/config.toml.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# termfolio configuration file\n")
	buf.WriteString("# Environment variables TERMFOLIO_<SECTION>_<KEY> override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Terminal.MaxSuggestions < 0 {
		add("terminal.max_suggestions", "must be >= 0, got %d", c.Terminal.MaxSuggestions)
	}
	if !slices.Contains(ValidBackends, c.Storage.Backend) {
		add("storage.backend", "must be one of %s, got %q", strings.Join(ValidBackends, ", "), c.Storage.Backend)
	}
	if !slices.Contains(ValidThemes, c.UI.Theme) {
		add("ui.theme", "must be one of %s, got %q", strings.Join(ValidThemes, ", "), c.UI.Theme)
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		add("server.addr", "must be host:port, got %q", c.Server.Addr)
	}
	if c.Server.RatePerMinute < 0 {
		add("server.rate_per_minute", "must be >= 0, got %d", c.Server.RatePerMinute)
	}
	if c.Server.RatePerMinute > 0 && c.Server.Burst <= 0 {
		add("server.burst", "must be > 0 when rate limiting is on, got %d", c.Server.Burst)
	}
	for _, origin := range c.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			add("server.allowed_origins", "origin %q must start with http:// or https://", origin)
		}
	}
	if !slices.Contains(ValidLogLevels, c.Log.Level) {
		add("log.level", "must be one of %s, got %q", strings.Join(ValidLogLevels, ", "), c.Log.Level)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access. Load errors fall back to defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
			cfg.SetDefaults()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
