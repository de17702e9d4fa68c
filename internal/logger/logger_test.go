package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
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

// TestNew_WritesPlainLevelToBuffer ensures non-terminal output gets uncolored level names.
func TestNew_WritesPlainLevelToBuffer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := New(zap.NewAtomicLevelAt(zapcore.InfoLevel), &buf)
	l.Infow("Downloading artifact", "artifact", "kubernetes-mcp-server-linux-amd64")
	l.Debug("hidden")

	out := buf.String()
	require.Contains(t, out, "INFO")
	require.Contains(t, out, "Downloading artifact")
	require.Contains(t, out, "kubernetes-mcp-server-linux-amd64")
	require.NotContains(t, out, "hidden")
	require.NotContains(t, out, "\x1b[")
}

// TestContextHelpers checks that named loggers travel through the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zap.NewAtomicLevelAt(zapcore.DebugLevel), &buf))
	ctx = WithName(ctx, "launcher")
	ctx = WithKV(ctx, "version", "1.2.3")

	DebugKV(ctx, "Cache hit", "path", "/tmp/x")

	out := buf.String()
	require.Contains(t, out, "launcher")
	require.Contains(t, out, "1.2.3")
	require.Contains(t, out, "Cache hit")
	require.Same(t, Logger(), FromContext(context.Background()))
}
