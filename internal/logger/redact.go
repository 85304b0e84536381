package logger

import (
	"log/slog"
	"strings"
)

// Key fragments whose values must never be written out.
var sensitiveKeyPatterns = []string{
	"password",
	"token",
	"authorization",
	"bearer",
	"secret",
	"cookie",
}

// RedactedValue replaces sensitive values.
const RedactedValue = "***REDACTED***"

func redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redact(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if !isSensitiveKey(a.Key) {
		return a
	}
	if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
		return a
	}
	return slog.String(a.Key, RedactedValue)
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
