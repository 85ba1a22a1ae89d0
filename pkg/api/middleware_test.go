package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpRecorder serves one request; headers are given as name, value pairs.
func httpRecorder(h http.Handler, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
})

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		method         string
		expectedOrigin string
	}{
		{name: "wildcard allows any origin", allowedOrigins: []string{"*"}, origin: "https://example.com",
			method: http.MethodGet, expectedOrigin: "https://example.com"},
		{name: "wildcard without origin header", allowedOrigins: []string{"*"},
			method: http.MethodGet, expectedOrigin: "*"},
		{name: "listed origin", allowedOrigins: []string{"https://a.com", "https://b.com"}, origin: "https://b.com",
			method: http.MethodGet, expectedOrigin: "https://b.com"},
		{name: "unlisted origin", allowedOrigins: []string{"https://a.com"}, origin: "https://evil.com",
			method: http.MethodGet},
		{name: "no origins allowed", allowedOrigins: nil, origin: "https://a.com", method: http.MethodGet},
		{name: "preflight", allowedOrigins: []string{"https://a.com"}, origin: "https://a.com",
			method: http.MethodOptions, expectedOrigin: "https://a.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := []string{}
			if tt.origin != "" {
				headers = append(headers, "Origin", tt.origin)
			}
			w := httpRecorder(CORSMiddleware(tt.allowedOrigins)(okHandler), tt.method, "/test", headers...)

			require.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectedOrigin != "" {
				require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), RequestIDHeader)
				require.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
			}

			require.Equal(t, http.StatusOK, w.Code)
			if tt.method == http.MethodOptions {
				require.Empty(t, w.Body.String())
			} else {
				require.Equal(t, "OK", w.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestIDMiddleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httpRecorder(h, http.MethodGet, "/")
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	require.Equal(t, seen, w.Header().Get(RequestIDHeader))

	given := uuid.NewString()
	w = httpRecorder(h, http.MethodGet, "/", RequestIDHeader, given)
	require.Equal(t, given, seen)
	require.Equal(t, given, w.Header().Get(RequestIDHeader))

	w = httpRecorder(h, http.MethodGet, "/", RequestIDHeader, "not-a-uuid")
	require.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusNotFound, http.StatusInternalServerError} {
		h := LoggingMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		require.Equal(t, status, httpRecorder(h, http.MethodGet, "/").Code)
	}
}

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusAccepted)

	require.Equal(t, http.StatusAccepted, rw.statusCode)
	require.Equal(t, http.StatusAccepted, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	for _, v := range []any{"boom", assert.AnError, 42} {
		h := RecoveryMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(v)
		}))

		var w *httptest.ResponseRecorder
		require.NotPanics(t, func() { w = httpRecorder(h, http.MethodGet, "/") })
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "Internal Server Error\n", w.Body.String())
	}

	require.Equal(t, "OK", httpRecorder(RecoveryMiddleware(logger.NewNopLogger())(okHandler), http.MethodGet, "/").Body.String())
}
