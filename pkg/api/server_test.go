package api

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/goran-ethernal/NomadIndexer/internal/common"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	storemocks "github.com/goran-ethernal/NomadIndexer/internal/store/mocks"
	apimocks "github.com/goran-ethernal/NomadIndexer/pkg/api/mocks"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(addr string) *config.APIConfig {
	return &config.APIConfig{
		Enabled:       true,
		ListenAddress: addr,
		ReadTimeout:   common.Duration{Duration: 5 * time.Second},
		WriteTimeout:  common.Duration{Duration: 10 * time.Second},
		IdleTimeout:   common.Duration{Duration: 60 * time.Second},
	}
}

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig("localhost:8080")
	server := NewServer(cfg, storemocks.NewStore(t), apimocks.NewStatusProvider(t), logger.NewNopLogger())

	require.NotNil(t, server.handler)
	require.Equal(t, "localhost:8080", server.server.Addr)
	require.Equal(t, 5*time.Second, server.server.ReadTimeout)
	require.Equal(t, 10*time.Second, server.server.WriteTimeout)
	require.Equal(t, 60*time.Second, server.server.IdleTimeout)
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	h, _, _ := testServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", wantCode: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPost, path: "/api/v1/messages", wantCode: http.StatusMethodNotAllowed},
		{name: "swagger ui", method: http.MethodGet, path: "/swagger/index.html", wantCode: http.StatusOK},
		{name: "swagger doc", method: http.MethodGet, path: "/swagger/doc.json", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httpRecorder(h, tt.method, tt.path)
			require.Equal(t, tt.wantCode, w.Code)
			require.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig(":0")
	cfg.CORS = config.CORSConfig{Enabled: true, AllowedOrigins: []string{"http://localhost:3000"}}
	h := NewServer(cfg, storemocks.NewStore(t), apimocks.NewStatusProvider(t), logger.NewNopLogger()).Handler()

	w := httpRecorder(h, http.MethodOptions, "/api/v1/status", "Origin", "http://localhost:3000")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_StartDisabled(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig(":0")
	cfg.Enabled = false
	server := NewServer(cfg, storemocks.NewStore(t), apimocks.NewStatusProvider(t), logger.NewNopLogger())

	require.NoError(t, server.Start(context.Background()))
}

func TestServer_StartAndShutdown(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)
	server := NewServer(testAPIConfig(addr), storemocks.NewStore(t), apimocks.NewStatusProvider(t), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/nope") //nolint:noctx
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownCtxTimeout + 5*time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_StartFailsOnBusyAddress(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	server := NewServer(testAPIConfig(l.Addr().String()), storemocks.NewStore(t),
		apimocks.NewStatusProvider(t), logger.NewNopLogger())

	require.ErrorContains(t, server.Start(context.Background()), "API server error")
}
