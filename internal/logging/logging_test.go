package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"uppercase", "DEBUG", log.DebugLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"unknown defaults to info", "verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, logging.ParseFormatter("json"))
	assert.Equal(t, log.LogfmtFormatter, logging.ParseFormatter("logfmt"))
	assert.Equal(t, log.TextFormatter, logging.ParseFormatter("text"))
	assert.Equal(t, log.TextFormatter, logging.ParseFormatter(""))
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("save failed", "key", "todoAppData")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "save failed", entry["msg"])
	assert.Equal(t, "todoAppData", entry["key"])
	assert.Equal(t, "tasks", entry["prefix"])
}

func TestDiscard(t *testing.T) {
	logger := logging.Discard()
	logger.Error("nobody hears this")
	assert.Equal(t, log.FatalLevel, logger.GetLevel())
}

func TestNew_Timestamp(t *testing.T) {
	for _, withTime := range []bool{false, true} {
		var buf bytes.Buffer
		logger := logging.New(&buf, logging.Options{Format: "json", Timestamp: withTime})
		logger.Info("loaded")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		_, ok := entry["time"]
		assert.Equal(t, withTime, ok)
	}
}
