/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLevels(t *testing.T) {
	t.Run("debug entries are written at debug level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		m := decodeLine(t, buffer.Bytes())
		assert.Equal(t, "test debug", m["msg"])
		assert.Equal(t, "debug", m["level"])
	})

	t.Run("debug entries are dropped at info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Debugf("hidden %d", 1)
		assert.Empty(t, buffer.String())
		assert.False(t, logger.Enabled(DebugLevel))
		assert.True(t, logger.Enabled(ErrorLevel))
	})

	t.Run("formatted warn and error", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		require.Equal(t, WarningLevel, logger.LogLevel())

		logger.Infof("skipped %s", "info")
		logger.Warnf("value %d", 7)
		m := decodeLine(t, buffer.Bytes())
		assert.Equal(t, "value 7", m["msg"])
		assert.Equal(t, "warn", m["level"])

		buffer.Reset()
		logger.Errorf("boom %s", "now")
		m = decodeLine(t, buffer.Bytes())
		assert.Equal(t, "boom now", m["msg"])
		assert.Equal(t, "error", m["level"])
	})
}

func TestZapWith(t *testing.T) {
	t.Run("adds structured fields to output", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("domain", "boon", "value", int64(42), "err", errors.New("dup")).Info("rejected")

		m := decodeLine(t, buffer.Bytes())
		assert.Equal(t, "rejected", m["msg"])
		assert.Equal(t, "boon", m["domain"])
		assert.EqualValues(t, 42, m["value"])
		assert.Equal(t, "dup", m["err"])
	})

	t.Run("returns same logger when keyValues empty", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With())
	})

	t.Run("odd trailing value is logged under underscore", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("k", "v", "dangling").Info("odd")
		m := decodeLine(t, buffer.Bytes())
		assert.Equal(t, "dangling", m["_"])
	})
}

func TestZapFlushFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enumx.log")
	file, err := os.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	logger := NewZap(InfoLevel, file)
	logger.Info("persisted")
	require.NoError(t, logger.Flush())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "persisted")
	assert.Len(t, logger.LogOutput(), 1)
}

func TestDiscardLogger(t *testing.T) {
	l := OrDiscard(nil)
	assert.Equal(t, DiscardLogger, l)
	l.Info("x")
	l.Errorf("y %d", 1)
	assert.Equal(t, DiscardLogger, l.With("a", 1))
	assert.False(t, l.Enabled(ErrorLevel))
	assert.NoError(t, l.Flush())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warn":    WarningLevel,
		"warning": WarningLevel,
		"error":   ErrorLevel,
	}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, "INVALID", Level(99).String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
}

func decodeLine(t *testing.T, out []byte) map[string]any {
	t.Helper()
	line := bytes.TrimSpace(bytes.SplitN(out, []byte("\n"), 2)[0])
	m := make(map[string]any)
	require.NoError(t, json.Unmarshal(line, &m))
	return m
}
