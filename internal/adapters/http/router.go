package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router. Nil
// handlers are skipped, so tests can mount only what they exercise.
type RouterConfig struct {
	// Logger is the base of every request-scoped logger.
	Logger *slog.Logger

	// AppConfig names the service for tracing.
	AppConfig *config.AppConfig

	// CORS lists browser origins allowed to call the API. Nil disables CORS.
	CORS *config.CORSConfig

	// Authenticator verifies bearer tokens on protected routes.
	Authenticator middleware.Authenticator

	// Timeout is the deadline put on every /api/v1 request.
	Timeout time.Duration

	HealthHandler     *handlers.HealthHandler
	AuthHandler       *handlers.AuthHandler
	QuoteHandler      *handlers.QuoteHandler
	DailyHandler      *handlers.DailyHandler
	FavoriteHandler   *handlers.FavoriteHandler
	CollectionHandler *handlers.CollectionHandler
	ProfileHandler    *handlers.ProfileHandler
	PrefsHandler      *handlers.PreferencesHandler
	ObjectHandler     *handlers.ObjectHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID, then correlation ID
//  3. OpenTelemetry tracing and metrics
//  4. Logging (skips /-/ probes)
//  5. CORS
//
// Route groups:
//   - /-/: health, build info and metrics, no auth
//   - /api/v1: public reads, then everything else behind RequireAuth
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	if cfg.AppConfig != nil {
		engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	}

	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.CORS != nil && len(cfg.CORS.AllowedOrigins) > 0 {
		engine.Use(corsMiddleware(cfg.CORS))
	}

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine.Group("/-"))
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers the public routes, then the protected ones.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthHandler != nil {
		cfg.AuthHandler.RegisterPublicRoutes(rg)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterPublicRoutes(rg)
	}

	if cfg.DailyHandler != nil {
		cfg.DailyHandler.RegisterPublicRoutes(rg)
	}

	if cfg.ObjectHandler != nil {
		cfg.ObjectHandler.RegisterRoutes(rg)
	}

	if cfg.Authenticator == nil {
		return
	}

	protected := rg.Group("")
	protected.Use(middleware.RequireAuth(cfg.Authenticator))

	if cfg.AuthHandler != nil {
		cfg.AuthHandler.RegisterRoutes(protected)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterRoutes(protected)
	}

	if cfg.DailyHandler != nil {
		cfg.DailyHandler.RegisterRoutes(protected)
	}

	if cfg.FavoriteHandler != nil {
		cfg.FavoriteHandler.RegisterRoutes(protected)
	}

	if cfg.CollectionHandler != nil {
		cfg.CollectionHandler.RegisterRoutes(protected)
	}

	if cfg.ProfileHandler != nil {
		cfg.ProfileHandler.RegisterRoutes(protected)
	}

	if cfg.PrefsHandler != nil {
		cfg.PrefsHandler.RegisterRoutes(protected)
	}
}

func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			middleware.HeaderRequestID, middleware.HeaderCorrelationID,
		},
		ExposeHeaders: []string{
			middleware.HeaderRequestID, middleware.HeaderCorrelationID, telemetry.TraceIDHeader,
		},
		MaxAge: cfg.MaxAge,
	})
}
