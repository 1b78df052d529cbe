// Package main is the entry point for the QuoteVault API service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quotevault/internal/adapters/auth"
	"github.com/jsamuelsen/quotevault/internal/adapters/events"
	"github.com/jsamuelsen/quotevault/internal/adapters/flags"
	"github.com/jsamuelsen/quotevault/internal/adapters/http"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/kv"
	"github.com/jsamuelsen/quotevault/internal/adapters/repository"
	"github.com/jsamuelsen/quotevault/internal/adapters/storage"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/dailyquote"
	"github.com/jsamuelsen/quotevault/internal/notify"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/platform/telemetry"
	"github.com/jsamuelsen/quotevault/internal/ports"
	"github.com/jsamuelsen/quotevault/internal/render"
	"github.com/jsamuelsen/quotevault/internal/widget"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// checkedStore is a key-value store that reports its own health.
type checkedStore interface {
	ports.KeyValueStore
	ports.HealthChecker
}

// checkedPublisher is an event publisher that reports its own health.
type checkedPublisher interface {
	ports.EventPublisher
	ports.HealthChecker
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()

	// 5. Open the database and seed the catalogue
	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}

	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close() //nolint:errcheck // closing on exit
	}

	quoteRepo := repository.NewQuoteRepository(db)
	if cfg.Database.Seed {
		n, seedErr := repository.Seed(ctx, quoteRepo)
		if seedErr != nil {
			return seedErr
		}

		logger.Info("quote catalogue seeded", slog.Int("quotes", n))
	}

	favoriteRepo := repository.NewFavoriteRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// 6. Key-value store and event bus
	store, publisher, closeRedis := newStoreAndPublisher(cfg, logger)
	defer closeRedis()

	objects, err := storage.NewLocalStorage(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("creating object storage: %w", err)
	}

	for _, checker := range []ports.HealthChecker{repository.NewHealthChecker(db), store, publisher, objects} {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	logger.Info("readiness checks registered", slog.Any("checks", healthRegistry.Names()))

	renderer, err := render.NewRenderer(render.Config{})
	if err != nil {
		return fmt.Errorf("creating share renderer: %w", err)
	}

	featureFlags := flags.New(cfg.Features, logger)

	// 7. Application services
	authService := app.NewAuthService(app.AuthServiceConfig{
		Users:  userRepo,
		Hasher: auth.NewBcryptHasher(0),
		Tokens: auth.NewJWTIssuer(cfg.Auth, nil),
		Store:  store,
		Logger: logger,
	})

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:      quoteRepo,
		Favorites:   favoriteRepo,
		Store:       store,
		Flags:       featureFlags,
		FeedSize:    cfg.Quotes.FeedSize,
		SearchLimit: cfg.Quotes.SearchResultLimit,
		HistorySize: cfg.Quotes.SearchHistorySize,
		Logger:      logger,
	})

	favoriteService := app.NewFavoriteService(app.FavoriteServiceConfig{
		Quotes:    quoteRepo,
		Favorites: favoriteRepo,
		Logger:    logger,
	})

	collectionService := app.NewCollectionService(app.CollectionServiceConfig{
		Quotes:      quoteRepo,
		Collections: collectionRepo,
		Logger:      logger,
	})

	profileService := app.NewProfileService(app.ProfileServiceConfig{
		Profiles:    profileRepo,
		Users:       userRepo,
		Collections: collectionRepo,
		Favorites:   favoriteRepo,
		Storage:     objects,
		MaxAvatar:   cfg.Storage.MaxAvatarBytes,
		Logger:      logger,
	})

	prefsService := app.NewPreferencesService(store, logger)
	shareService := app.NewShareService(quoteRepo, renderer, logger)

	daily := dailyquote.New(dailyquote.Config{
		Quotes:     quoteRepo,
		Store:      store,
		Flags:      featureFlags,
		SampleSize: cfg.Quotes.DailySampleSize,
		Logger:     logger,
	})

	widgets := widget.New(widget.Config{
		Daily:       daily,
		Preferences: prefsService,
		Logger:      logger,
	})

	scheduler := notify.NewScheduler(store, nil, logger)

	// 8. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 9. Create HTTP server and routes
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:            logger,
		AppConfig:         &cfg.App,
		CORS:              &cfg.CORS,
		Authenticator:     authService,
		Timeout:           cfg.Server.RequestTimeout,
		HealthHandler:     handlers.NewHealthHandler(healthRegistry, buildInfo),
		AuthHandler:       handlers.NewAuthHandler(authService),
		QuoteHandler:      handlers.NewQuoteHandler(quoteService, shareService),
		DailyHandler:      handlers.NewDailyHandler(daily, widgets),
		FavoriteHandler:   handlers.NewFavoriteHandler(favoriteService),
		CollectionHandler: handlers.NewCollectionHandler(collectionService),
		ProfileHandler:    handlers.NewProfileHandler(profileService),
		PrefsHandler:      handlers.NewPreferencesHandler(prefsService, scheduler),
		ObjectHandler:     handlers.NewObjectHandler(objects),
	})

	// 10. Run the server and the reminder dispatcher until a signal arrives
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx)
	})

	if cfg.Notifications.DispatchEnabled {
		dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
			Scheduler: scheduler,
			Publisher: publisher,
			Quotes:    daily,
			Interval:  cfg.Notifications.Interval,
			Workers:   cfg.Notifications.Workers,
			Channel:   cfg.Notifications.Channel,
			Logger:    logger,
		})

		g.Go(func() error {
			return dispatcher.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// newStoreAndPublisher returns redis-backed adapters when redis is enabled,
// else the in-memory store and a publisher that only logs.
func newStoreAndPublisher(cfg *config.Config, logger *slog.Logger) (checkedStore, checkedPublisher, func()) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, using in-memory store")
		return kv.NewMemoryStore(nil), events.NewLogPublisher(slog.LevelInfo), func() {}
	}

	client := kv.NewRedisClient(cfg.Redis)
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("closing redis client", slog.Any("error", err))
		}
	}

	return kv.NewRedisStore(client, cfg.Redis.Namespace, logger),
		events.NewRedisPublisher(client, cfg.Notifications.Topic, logger),
		closeFn
}
