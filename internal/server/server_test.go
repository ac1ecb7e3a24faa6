package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/config"
	"github.com/nfrund/ytu/internal/handlers"
)

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	e := echo.New()

	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{AddSource: true}))
	originalLogger := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)
	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})
	e.GET("/test-not-found", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)")
	assert.Contains(t, logOutput, `error="a deliberate unhandled error occurred"`)
	assert.Contains(t, logOutput, "stack_trace=")
	assert.Contains(t, logOutput, "runtime/debug/stack.go")
	assert.Contains(t, logOutput, "internal/server/server_test.go")

	logBuffer.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test-not-found", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, logBuffer.String(), "client errors are not logged")
}

func newBootedServer(t *testing.T, cfg *config.Config, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(context.Background(), cfg, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Boot(ctx))

	srv := httptest.NewServer(s.E)
	t.Cleanup(func() {
		srv.Close()
		cancel()
		_ = s.shutdownModules(context.Background())
		_ = s.Bridge.Close()
	})
	return s, srv
}

func fetch(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestServer_ServesPagesAndAssets(t *testing.T) {
	_, srv := newBootedServer(t, config.Default())

	for _, path := range []string{"/", "/courses", "/dashboard", "/learning-paths", "/learning-paths/anime"} {
		code, body, hdr := fetch(t, srv.URL+path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Contains(t, body, "YT University", path)
		assert.NotEmpty(t, hdr.Get(echo.HeaderXRequestID), path)
	}

	code, body, _ := fetch(t, srv.URL+"/static/js/live.js")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "/ws/live")
	assert.Contains(t, body, "el.offsetWidth")

	code, body, _ = fetch(t, srv.URL+"/static/css/app.css")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "@keyframes nav-pulse")

	code, _, _ = fetch(t, srv.URL+"/learning-paths/unknown")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_HealthCountsLiveSessions(t *testing.T) {
	_, srv := newBootedServer(t, config.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/live", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	health := func() handlers.HealthResponse {
		_, body, _ := fetch(t, srv.URL+"/health")
		var h handlers.HealthResponse
		require.NoError(t, json.Unmarshal([]byte(body), &h))
		return h
	}
	require.Eventually(t, func() bool { return health().LiveSessions == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"frontend", "gamedev", "anime"}, health().Paths)
}

const minimalCatalog = `
paths:
  - id: solo
    title: Solo Path
    nodes:
      - { id: a, title: A }
      - { id: b, title: B }
    connections:
      - { from: a, to: b }
`

func TestNew_LoadsCatalogFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/ytu/catalog.yaml", []byte(minimalCatalog), 0o644))

	cfg := config.Default()
	cfg.CatalogPath = "/etc/ytu/catalog.yaml"
	s, srv := newBootedServer(t, cfg, WithFs(fs))

	assert.Equal(t, []string{"solo"}, s.Store.Get().PathIDs())
	code, body, _ := fetch(t, srv.URL+"/learning-paths")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Solo Path")
}

func TestNew_MissingCatalogFile(t *testing.T) {
	cfg := config.Default()
	cfg.CatalogPath = "/nowhere.yaml"
	_, err := New(context.Background(), cfg, WithFs(afero.NewMemMapFs()))
	assert.ErrorContains(t, err, "loading catalog")
}

func TestRun_StopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := config.Default()
	cfg.Addr = addr
	s, err := New(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_HotReloadPublishesToSessions(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/catalog.yaml"
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), path, catalog.Embedded(), 0o644))

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := config.Default()
	cfg.Addr = addr
	cfg.CatalogPath = path
	cfg.HotReload = true
	s, err := New(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer dialCancel()
	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		conn, _, err = websocket.Dial(dialCtx, "ws://"+addr+"/ws/live", nil)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	defer conn.CloseNow()

	// Give the watcher a moment to register before the write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), path, []byte(minimalCatalog), 0o644))

	_, data, err := conn.Read(dialCtx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"command","name":"reload"}`, string(data))
	assert.Equal(t, []string{"solo"}, s.Store.Get().PathIDs())
}
