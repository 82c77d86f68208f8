package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://app.example.org"}
	handler := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.org")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightForUnknownOrigin(t *testing.T) {
	t.Parallel()

	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://app.example.org"}
	handler := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"*"}
	handler := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example.org")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestRequestLogging_SkipsConfiguredPaths(t *testing.T) {
	t.Parallel()

	handler := RequestLogging(logging.NewNopLogger(), DefaultLoggingConfig())(okHandler())

	for _, path := range []string{"/healthz", "/api/v1/requirements"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestWrappedResponseWriter_CapturesStatusAndBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ww := newWrappedResponseWriter(rec)

	ww.WriteHeader(http.StatusTeapot)
	ww.WriteHeader(http.StatusOK) // second call must not overwrite
	n, err := ww.Write([]byte("body"))

	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, http.StatusTeapot, ww.statusCode)
	assert.Equal(t, int64(4), ww.bytesWritten)
}
