package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs_RedactsCredentials(t *testing.T) {
	out := sanitizeKVs([]any{"api_key", "sk-123", "learner", 1, "AuthToken", "abc"})
	assert.Equal(t, []any{"api_key", "[REDACTED]", "learner", 1, "AuthToken", "[REDACTED]"}, out)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	out := sanitizeKVs([]any{"learner", 1, "dangling"})
	assert.Equal(t, []any{"learner", 1, "dangling"}, out)
}

func TestLogger_WritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "quiz").Info("session complete", "score", 3, "token", "x")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "quiz", ctx["component"])
		assert.Equal(t, int64(3), ctx["score"])
		assert.Equal(t, "[REDACTED]", ctx["token"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Debug("ignored", "k", "v")
	l.Sync()
}
