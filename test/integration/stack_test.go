//go:build integration

package integration

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/auth"
	"github.com/jsamuelsen/quotevault/internal/adapters/flags"
	apihttp "github.com/jsamuelsen/quotevault/internal/adapters/http"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/kv"
	"github.com/jsamuelsen/quotevault/internal/adapters/repository"
	"github.com/jsamuelsen/quotevault/internal/adapters/storage"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/dailyquote"
	"github.com/jsamuelsen/quotevault/internal/notify"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/ports"
	"github.com/jsamuelsen/quotevault/internal/render"
	"github.com/jsamuelsen/quotevault/internal/widget"
)

// startStack runs the whole API in-process: a private in-memory sqlite
// database, redis via miniredis, and object storage in a temp dir. It
// returns the server's base URL.
func startStack(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	cfg, err := config.LoadFrom("../../configs", "test")
	require.NoError(t, err)

	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.Storage.Root = t.TempDir()

	db, err := repository.Open(ctx, cfg.Database, logger)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	quoteRepo := repository.NewQuoteRepository(db)
	_, err = repository.Seed(ctx, quoteRepo)
	require.NoError(t, err)

	favoriteRepo := repository.NewFavoriteRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	mr := miniredis.RunT(t)
	redisClient := kv.NewRedisClient(config.RedisConfig{Enabled: true, Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })
	store := kv.NewRedisStore(redisClient, "it:", logger)

	objects, err := storage.NewLocalStorage(cfg.Storage, logger)
	require.NoError(t, err)

	registry := ports.NewHealthRegistry()
	for _, checker := range []ports.HealthChecker{repository.NewHealthChecker(db), store, objects} {
		require.NoError(t, registry.Register(checker))
	}

	renderer, err := render.NewRenderer(render.Config{})
	require.NoError(t, err)

	featureFlags := flags.New(cfg.Features, logger)

	authService := app.NewAuthService(app.AuthServiceConfig{
		Users:  userRepo,
		Hasher: auth.NewBcryptHasher(4),
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

	daily := dailyquote.New(dailyquote.Config{
		Quotes:     quoteRepo,
		Store:      store,
		Flags:      featureFlags,
		SampleSize: cfg.Quotes.DailySampleSize,
		Logger:     logger,
	})

	server := apihttp.New(&cfg.Server, logger)
	apihttp.SetupRouter(server.Engine(), apihttp.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		Authenticator: authService,
		Timeout:       cfg.Server.RequestTimeout,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", "test")),
		AuthHandler:   handlers.NewAuthHandler(authService),
		QuoteHandler:  handlers.NewQuoteHandler(quoteService, app.NewShareService(quoteRepo, renderer, logger)),
		DailyHandler: handlers.NewDailyHandler(daily, widget.New(widget.Config{
			Daily:       daily,
			Preferences: prefsService,
			Logger:      logger,
		})),
		FavoriteHandler: handlers.NewFavoriteHandler(app.NewFavoriteService(app.FavoriteServiceConfig{
			Quotes:    quoteRepo,
			Favorites: favoriteRepo,
			Logger:    logger,
		})),
		CollectionHandler: handlers.NewCollectionHandler(app.NewCollectionService(app.CollectionServiceConfig{
			Quotes:      quoteRepo,
			Collections: collectionRepo,
			Logger:      logger,
		})),
		ProfileHandler: handlers.NewProfileHandler(profileService),
		PrefsHandler:   handlers.NewPreferencesHandler(prefsService, notify.NewScheduler(store, nil, logger)),
		ObjectHandler:  handlers.NewObjectHandler(objects),
	})

	ts := httptest.NewServer(server.Engine())
	t.Cleanup(ts.Close)

	return ts.URL
}
