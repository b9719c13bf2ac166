package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/todolist/internal/storage"
)

// TestRequestID verifies ids are generated or propagated
func TestRequestID(t *testing.T) {
	h, _ := newTestServer(t)

	t.Run("generated when absent", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/todos", "")

		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "generated id should be a UUID")
	})

	t.Run("reused when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("available on the request context", func(t *testing.T) {
		var seen string
		inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = RequestIDFromContext(r.Context())
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "ctx-id")

		withRequestID(inner).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "ctx-id", seen)
	})

	t.Run("empty outside a request", func(t *testing.T) {
		assert.Empty(t, RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
	})
}

// TestAccessLog verifies one structured record per request
func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := NewServer(storage.NewMemoryStore(), logger).Handler()

	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"logged"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "log-id")
	h.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "request", record["msg"])
	assert.Equal(t, "POST", record["method"])
	assert.Equal(t, "/todos", record["path"])
	assert.Equal(t, float64(http.StatusCreated), record["status"])
	assert.Equal(t, "log-id", record["request_id"])
}

// TestAccessLogKeepsWriterFeatures verifies handlers can still flush
// through the status recorder
func TestAccessLogKeepsWriterFeatures(t *testing.T) {
	srv := NewServer(storage.NewMemoryStore(), discardLoggerForTest())

	var flushErr error
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("chunk"))
		flushErr = http.NewResponseController(w).Flush()
	})
	w := httptest.NewRecorder()

	srv.withAccessLog(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, flushErr)
	assert.True(t, w.Flushed)
	assert.Equal(t, "chunk", w.Body.String())
}

// TestCORS verifies cross-origin access to the JSON endpoints
func TestCORS(t *testing.T) {
	h, _ := newTestServer(t)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/todos/1", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

// TestNewServerDefaultLogger verifies a nil logger is replaced
func TestNewServerDefaultLogger(t *testing.T) {
	srv := NewServer(storage.NewMemoryStore(), nil)
	assert.NotNil(t, srv.logger)
}
