package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeEntry parses a single JSON log line written into buf.
func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("server")
	require.NotNil(t, l)
	l.Logger = l.Output(&buf)

	l.Info().Msg("boot")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "server", entry["role"], "role field should carry the constructor argument")
	assert.Contains(t, entry, "time", "entries should be timestamped")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	require.NotNil(t, l)
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("parent")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotNil(t, child)
	assert.NotSame(t, parent, child)

	child.Logger = child.Output(&buf)
	child.Info().Msg("inherited")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent", entry["role"], "child should keep the parent's fields")
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "abc123").Logger()
		ctx := zl.WithContext(context.Background())

		l := FromContext(ctx)
		require.NotNil(t, l)
		l.Info().Msg("scoped")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "abc123", entry["trace_id"])
	})

	t.Run("bare context still yields a logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "req-7").Logger()

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	l := FromRequest(req)
	require.NotNil(t, l)
	l.Info().Msg("handler")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "req-7", entry["trace_id"])

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NotNil(t, FromRequest(bare))
}
