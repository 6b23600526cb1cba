package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/eventflow/marketplace/internal/infrastructure/observability"
)

func captureGlobalLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	buf := &bytes.Buffer{}
	log.Logger = zerolog.New(buf)
	return buf
}

func TestInitLogger_LevelFromEnv(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	t.Setenv("LOG_LEVEL", "debug")
	observability.InitLogger("marketplace", "production")
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())

	t.Setenv("LOG_LEVEL", "not-a-level")
	observability.InitLogger("marketplace", "production")
	assert.Equal(t, zerolog.InfoLevel, log.Logger.GetLevel())
}

func TestLoggerFromContext_WithoutSpan(t *testing.T) {
	buf := captureGlobalLogger(t)

	observability.LoggerFromContext(context.Background()).Info().Msg("plain")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "trace_id")
	assert.NotContains(t, line, "span_id")
}

func TestLoggerFromContext_WithSpan(t *testing.T) {
	buf := captureGlobalLogger(t)

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x02},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	observability.LoggerFromContext(ctx).Info().Msg("traced")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, spanCtx.TraceID().String(), line["trace_id"])
	assert.Equal(t, spanCtx.SpanID().String(), line["span_id"])
}
