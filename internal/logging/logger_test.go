// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/termfolio/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"chatty":  zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info")
	t.Cleanup(func() { setLogger(nil) })

	L().Debugw("hidden")
	L().Infow("submit", "command", "help")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "submit", entry["msg"])
	assert.Equal(t, "help", entry["command"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestInitFile(t *testing.T) {
	t.Setenv(LevelEnv, "debug")
	path := filepath.Join(t.TempDir(), "logs", "termfolio.log")
	require.NoError(t, Init(config.LogConfig{Level: "error", File: path}, Options{}))
	t.Cleanup(func() { setLogger(nil) })

	L().Debugw("from env level")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "from env level")
}

func TestLBeforeInitIsNoop(t *testing.T) {
	setLogger(nil)
	assert.NotPanics(t, func() { L().Infow("nothing") })
	assert.NotNil(t, Named("x"))
}
