package slogx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigure_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(Output(&buf), Level(slog.LevelDebug))
	logger.Debug("hello", slog.String("key", "value"))

	var record map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record), "Non-terminal output should be JSON")
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestConfigure_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(Output(&buf), Level(slog.LevelWarn))
	logger.Info("filtered out")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestConfigure_ForceJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(Output(&buf), JSON())
	logger.Info("structured")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}

func TestTee(t *testing.T) {
	var first, second bytes.Buffer
	logger := slog.New(Tee(
		slog.NewJSONHandler(&first, nil),
		slog.NewJSONHandler(&second, &slog.HandlerOptions{Level: slog.LevelError}),
	))
	logger.Info("fanned out")

	assert.Contains(t, first.String(), "fanned out")
	assert.Zero(t, second.Len(), "A handler below its level threshold should not receive the record")

	logger.Error("both")
	assert.Contains(t, first.String(), "both")
	assert.Contains(t, second.String(), "both")
}

func TestTee_WithAttrs(t *testing.T) {
	var first, second bytes.Buffer
	handler := Tee(
		slog.NewJSONHandler(&first, nil),
		slog.NewJSONHandler(&second, nil),
	).WithAttrs([]slog.Attr{slog.String("component", "test")})

	slog.New(handler).Info("attributed")
	assert.Contains(t, first.String(), `"component":"test"`)
	assert.Contains(t, second.String(), `"component":"test"`)
}
