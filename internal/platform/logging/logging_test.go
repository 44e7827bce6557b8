package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup := SetupLogger(Options{Level: slog.LevelWarn, Output: &buf})
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("table not found", "name", "Hits")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "name=Hits")
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := SetupLogger(Options{Level: slog.LevelInfo, Output: &buf})

	tagged, id := WithRunID(logger)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	tagged.Info("converted")
	assert.Contains(t, buf.String(), "run_id="+id)

	_, other := WithRunID(logger)
	assert.NotEqual(t, id, other)
}

func TestMultiHandler_FansOut(t *testing.T) {
	var debug, warn bytes.Buffer
	m := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(m).With("run_id", "r1").WithGroup("table")

	assert.True(t, m.Enabled(context.Background(), slog.LevelDebug))
	logger.Debug("chunk", "rows", 3)
	logger.Warn("slow", "rows", 4)

	assert.Equal(t, 2, strings.Count(debug.String(), "run_id=r1"))
	assert.Contains(t, debug.String(), "table.rows=3")
	assert.NotContains(t, warn.String(), "table.rows=3")
	assert.Contains(t, warn.String(), "table.rows=4")
}
