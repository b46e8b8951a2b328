package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	return record
}

func TestHandler_AddsRequestAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, nil))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	log.InfoContext(ctx, "hello", "order_id", 7)

	record := decodeLine(t, &buf)
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, traceID.String(), record["trace_id"])
	assert.Equal(t, spanID.String(), record["span_id"])
	assert.InDelta(t, 7, record["order_id"], 0)
}

func TestHandler_PlainContext(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, nil)).With("component", "test")

	log.Info("plain")

	record := decodeLine(t, &buf)
	assert.Equal(t, "test", record["component"])
	assert.NotContains(t, record, "request_id")
	assert.NotContains(t, record, "trace_id")
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, nil))

	h := NewLoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	record := decodeLine(t, &buf)
	assert.Equal(t, "Request served", record["msg"])
	assert.Equal(t, "/api/v1/orders", record["path"])
	assert.InDelta(t, http.StatusTeapot, record["status"], 0)
	assert.InDelta(t, 5, record["bytes"], 0)
}
