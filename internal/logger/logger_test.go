package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONRedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})

	log.Info("login submitted",
		"email", "user@example.com",
		"password", "hunter22",
		"token", "jwt-token",
		slog.Group("request", "Authorization", "Bearer jwt-token", "path", "/auth/login"),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "user@example.com", entry["email"])
	assert.Equal(t, RedactedValue, entry["password"])
	assert.Equal(t, RedactedValue, entry["token"])

	group, ok := entry["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, RedactedValue, group["Authorization"])
	assert.Equal(t, "/auth/login", group["path"])
	assert.NotContains(t, buf.String(), "hunter22")
	assert.NotContains(t, buf.String(), "jwt-token")
}

func TestNew_EmptySensitiveValueKept(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Output: &buf})

	log.Info("status", "token", "")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "", entry["token"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "text", Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)
	log.Error("discarded")
}
