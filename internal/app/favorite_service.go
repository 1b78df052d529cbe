package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// FavoriteService likes and unlikes quotes.
type FavoriteService struct {
	quotes    ports.QuoteRepository
	favorites ports.FavoriteRepository
	logger    *slog.Logger
}

// FavoriteServiceConfig contains the dependencies of the favorite service.
type FavoriteServiceConfig struct {
	Quotes    ports.QuoteRepository    // required
	Favorites ports.FavoriteRepository // required
	Logger    *slog.Logger
}

// NewFavoriteService creates the service. It panics when a required
// dependency is missing.
func NewFavoriteService(cfg FavoriteServiceConfig) *FavoriteService {
	if cfg.Quotes == nil {
		panic("app: FavoriteServiceConfig.Quotes is required")
	}

	if cfg.Favorites == nil {
		panic("app: FavoriteServiceConfig.Favorites is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FavoriteService{
		quotes:    cfg.Quotes,
		favorites: cfg.Favorites,
		logger:    logger.With(slog.String("component", "app.FavoriteService")),
	}
}

// Toggle flips the favorite state of a quote and returns the new state.
func (s *FavoriteService) Toggle(ctx context.Context, userID, quoteID string) (bool, error) {
	if err := s.checkQuote(ctx, quoteID); err != nil {
		return false, err
	}

	on, err := s.favorites.Exists(ctx, userID, quoteID)
	if err != nil {
		return false, err
	}

	if err := s.apply(ctx, userID, quoteID, !on); err != nil {
		return on, err
	}

	logging.FromContext(ctx).DebugContext(ctx, "favorite toggled",
		slog.String("quote_id", quoteID),
		slog.Bool("favorite", !on),
	)

	return !on, nil
}

// Set makes the favorite state equal to on. Repeating a call is a no-op.
func (s *FavoriteService) Set(ctx context.Context, userID, quoteID string, on bool) error {
	if on {
		if err := s.checkQuote(ctx, quoteID); err != nil {
			return err
		}
	}

	return s.apply(ctx, userID, quoteID, on)
}

// List returns liked quotes, most recently liked first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Quote, error) {
	return s.favorites.Quotes(ctx, userID)
}

// IDs returns the ids of every liked quote.
func (s *FavoriteService) IDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.favorites.QuoteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

func (s *FavoriteService) apply(ctx context.Context, userID, quoteID string, on bool) error {
	if on {
		return s.favorites.Add(ctx, userID, quoteID)
	}

	return s.favorites.Remove(ctx, userID, quoteID)
}

func (s *FavoriteService) checkQuote(ctx context.Context, quoteID string) error {
	if strings.TrimSpace(quoteID) == "" {
		return domain.NewValidationError("quoteId", "quote id is required")
	}

	_, err := s.quotes.Get(ctx, quoteID)

	return err
}
