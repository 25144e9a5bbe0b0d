// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging wraps zap for termfolio. The TUI owns stdout, so logs go to
// a rotating file; the HTTP service can mirror them to stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jeranaias/termfolio/internal/config"
)

// LevelEnv overrides the configured level when set.
const LevelEnv = "TERMFOLIO_LOG_LEVEL"

var (
	mu          sync.RWMutex
	logger      *zap.SugaredLogger
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

	noopLogger = zap.NewNop().Sugar()
)

// Options tune Init beyond the config file.
type Options struct {
	// Stderr mirrors log lines to standard error
	Stderr bool
}

// L returns the global logger, or a no-op logger before Init.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return noopLogger
	}
	return logger
}

// Named returns a child of the global logger.
func Named(name string) *zap.SugaredLogger {
	return L().Named(name)
}

// Init builds the global logger from cfg. An empty cfg.File disables the
// file sink.
func Init(cfg config.LogConfig, opts Options) error {
	atomicLevel.SetLevel(ParseLevel(levelName(cfg)))

	var sinks []zapcore.WriteSyncer
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
			return err
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}))
	}
	if opts.Stderr {
		sinks = append(sinks, zapcore.Lock(os.Stderr))
	}
	if len(sinks) == 0 {
		setLogger(noopLogger)
		return nil
	}

	core := zapcore.NewCore(newEncoder(cfg.Dev), zapcore.NewMultiWriteSyncer(sinks...), atomicLevel)
	setLogger(zap.New(core, zap.AddCaller()).Sugar())
	L().Debugw("logger initialized", "file", cfg.File, "level", atomicLevel.Level().String())
	return nil
}

// InitWriter points the global logger at w. Used by tests.
func InitWriter(w io.Writer, level string) {
	atomicLevel.SetLevel(ParseLevel(level))
	core := zapcore.NewCore(newEncoder(false), zapcore.AddSync(w), atomicLevel)
	setLogger(zap.New(core).Sugar())
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

// SetLevel changes the level at runtime.
func SetLevel(level string) {
	atomicLevel.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a zap level; unknown names mean info.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func levelName(cfg config.LogConfig) string {
	if v := os.Getenv(LevelEnv); v != "" {
		return v
	}
	return cfg.Level
}

func newEncoder(dev bool) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if dev {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

func setLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}
