package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kanbancal/core/internal/infrastructure/config"
)

func observed(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "loud", Format: "json"})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNewConsoleLogger(t *testing.T) {
	l, err := New(config.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	assert.NotNil(t, l.SugaredLogger)
}

func TestLogSecurityEvent(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)

	l.LogSecurityEvent("pin_mismatch", "10.0.0.1", map[string]interface{}{"project_id": int64(3)})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "pin_mismatch", ctx["security_event"])
	assert.Equal(t, "10.0.0.1", ctx["ip"])
	assert.Equal(t, int64(3), ctx["project_id"])
}

func TestLogDatabaseQuery(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)

	l.LogDatabaseQuery("SELECT 1", 1.5, nil)
	l.LogDatabaseQuery("SELECT 2", 2.5, errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestWithComponent(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)

	l.WithComponent("cards").Infow("listed")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "cards", logs.All()[0].ContextMap()["component"])
}
