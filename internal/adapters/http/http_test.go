package http

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/adapters/kv"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/mocks"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
	"github.com/jsamuelsen/quotevault/internal/render"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer(maxBody int64) *Server {
	return New(&config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 2 * time.Second,
		MaxRequestSize:  maxBody,
	}, slog.New(slog.DiscardHandler))
}

func TestServer_Addr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", testServer(1<<20).Addr())

	srv := New(&config.ServerConfig{Host: "::1", Port: 9000}, slog.New(slog.DiscardHandler))
	assert.Equal(t, "[::1]:9000", srv.Addr())
}

func TestServer_ServeUntilCancelled(t *testing.T) {
	srv := testServer(1 << 20)
	srv.Engine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ln.Addr().String()+"/ping", http.NoBody)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	srv := New(&config.ServerConfig{Host: "127.0.0.1", Port: port}, slog.New(slog.DiscardHandler))

	err = srv.Run(context.Background())
	assert.ErrorContains(t, err, "listening on")
}

func TestServer_MaxBodySize(t *testing.T) {
	srv := testServer(16)
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, "%d", len(body))
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"under limit", "short", http.StatusOK},
		{"over limit", strings.Repeat("x", 64), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (*ports.TokenClaims, error) {
	if token != "good" {
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	return &ports.TokenClaims{UserID: "u1", Email: "reader@example.com"}, nil
}

func newTestRouter(t *testing.T, cfg RouterConfig) *gin.Engine {
	t.Helper()

	engine := gin.New()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.AppConfig = &config.AppConfig{Name: "quotevault", Environment: "test", Version: "1.0.0"}

	SetupRouter(engine, cfg)

	return engine
}

func TestSetupRouter_Routes(t *testing.T) {
	quotes := mocks.NewMockQuoteRepository(t)
	favorites := mocks.NewMockFavoriteRepository(t)
	collections := mocks.NewMockCollectionRepository(t)
	store := kv.NewMemoryStore(nil)

	quoteSvc := app.NewQuoteService(app.QuoteServiceConfig{Quotes: quotes, Favorites: favorites, Store: store})
	renderer, err := render.NewRenderer(render.Config{})
	require.NoError(t, err)

	engine := newTestRouter(t, RouterConfig{
		Authenticator:     stubAuthenticator{},
		HealthHandler:     handlers.NewHealthHandler(nil, handlers.BuildInfo{}),
		QuoteHandler:      handlers.NewQuoteHandler(quoteSvc, app.NewShareService(quotes, renderer, nil)),
		FavoriteHandler:   handlers.NewFavoriteHandler(app.NewFavoriteService(app.FavoriteServiceConfig{Quotes: quotes, Favorites: favorites})),
		CollectionHandler: handlers.NewCollectionHandler(app.NewCollectionService(app.CollectionServiceConfig{Quotes: quotes, Collections: collections})),
		Timeout:           5 * time.Second,
	})

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /api/v1/quotes/:id",
		"GET /api/v1/templates",
		"GET /api/v1/quotes/feed",
		"GET /api/v1/quotes/search/history",
		"POST /api/v1/favorites/:quoteId/toggle",
		"POST /api/v1/collections/with-quote",
		"DELETE /api/v1/collections/:id/quotes/:quoteId",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestSetupRouter_ProtectedRoutesNeedToken(t *testing.T) {
	favorites := mocks.NewMockFavoriteRepository(t)
	favorites.EXPECT().QuoteIDs(mock.Anything, "u1").Return([]string{"q1"}, nil)

	engine := newTestRouter(t, RouterConfig{
		Authenticator: stubAuthenticator{},
		FavoriteHandler: handlers.NewFavoriteHandler(app.NewFavoriteService(app.FavoriteServiceConfig{
			Quotes:    mocks.NewMockQuoteRepository(t),
			Favorites: favorites,
		})),
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/favorites/ids", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites/ids", nil)
	req.Header.Set("Authorization", "Bearer good")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ids":["q1"]}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestSetupRouter_WithoutAuthenticatorSkipsProtectedRoutes(t *testing.T) {
	engine := newTestRouter(t, RouterConfig{
		FavoriteHandler: handlers.NewFavoriteHandler(app.NewFavoriteService(app.FavoriteServiceConfig{
			Quotes:    mocks.NewMockQuoteRepository(t),
			Favorites: mocks.NewMockFavoriteRepository(t),
		})),
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRouter_CORS(t *testing.T) {
	engine := newTestRouter(t, RouterConfig{
		CORS:          &config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}, MaxAge: time.Hour},
		HealthHandler: handlers.NewHealthHandler(nil, handlers.BuildInfo{}),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/daily", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	engine.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/-/live", nil)
	req.Header.Set("Origin", "https://evil.example")
	engine.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
