package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextLogger checks that names and fields travel with the context.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zapcore.DebugLevel, &buf))
	ctx = WithName(ctx, "engine")
	ctx = WithKV(ctx, "alarm_id", "a1")
	ctx = WithFields(ctx, "zone", "UTC")

	InfoKV(ctx, "Alarm fired", "message", "Alarm: Standup for 14:30")
	DebugKV(ctx, "Tick evaluated")

	out := buf.String()
	require.Contains(t, out, "engine")
	require.Contains(t, out, "Alarm fired")
	require.Contains(t, out, `"alarm_id": "a1"`)
	require.Contains(t, out, `"zone": "UTC"`)
	require.Contains(t, out, "Tick evaluated")
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestNew_LevelFilter checks that entries below the level are dropped.
func TestNew_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zapcore.WarnLevel, &buf))
	Infof(ctx, "hidden %d", 1)
	WarnKV(ctx, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
