// Package app contains the application services behind the QuoteVault API.
// Services depend on port interfaces and report failures as domain errors.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const (
	// DefaultFeedSize bounds the quotes returned by Feed.
	DefaultFeedSize = 100

	// DefaultSearchLimit bounds search results and the empty-query listing.
	DefaultSearchLimit = 30

	// DefaultHistorySize is how many recent searches are remembered.
	DefaultHistorySize = 6

	// SearchLimitFlag overrides DefaultSearchLimit.
	SearchLimitFlag = "search-result-limit"

	// SuggestionsFlag switches category suggestions for empty results.
	SuggestionsFlag = "search-suggestions"

	// MaxSuggestionDistance is the largest edit distance still suggested.
	MaxSuggestionDistance = 3

	historyKeySuffix = "@search_history"
)

// HistoryKey returns the key-value store key holding a user's searches.
func HistoryKey(userID string) string {
	return "search:" + userID + ":" + historyKeySuffix
}

// Feed is the home screen: a shuffled page of quotes and the ids the user
// has favorited.
type Feed struct {
	Quotes      []domain.Quote
	FavoriteIDs []string
}

// SearchResult holds matching quotes and, when nothing matched, the closest
// known category.
type SearchResult struct {
	Query      string
	Quotes     []domain.Quote
	Suggestion string
}

// QuoteService serves browsing and search.
type QuoteService struct {
	quotes      ports.QuoteRepository
	favorites   ports.FavoriteRepository
	store       ports.KeyValueStore
	flags       ports.FeatureFlags
	feedSize    int
	searchLimit int
	historySize int
	logger      *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// QuoteServiceConfig contains the dependencies of the quote service.
type QuoteServiceConfig struct {
	Quotes      ports.QuoteRepository    // required
	Favorites   ports.FavoriteRepository // required
	Store       ports.KeyValueStore      // required
	Flags       ports.FeatureFlags
	FeedSize    int
	SearchLimit int
	HistorySize int
	Rand        *rand.Rand
	Logger      *slog.Logger
}

// NewQuoteService creates the service. It panics when a required dependency
// is missing.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Quotes == nil {
		panic("app: QuoteServiceConfig.Quotes is required")
	}

	if cfg.Favorites == nil {
		panic("app: QuoteServiceConfig.Favorites is required")
	}

	if cfg.Store == nil {
		panic("app: QuoteServiceConfig.Store is required")
	}

	s := &QuoteService{
		quotes:      cfg.Quotes,
		favorites:   cfg.Favorites,
		store:       cfg.Store,
		flags:       cfg.Flags,
		feedSize:    cmpOr(cfg.FeedSize, DefaultFeedSize),
		searchLimit: cmpOr(cfg.SearchLimit, DefaultSearchLimit),
		historySize: cmpOr(cfg.HistorySize, DefaultHistorySize),
		rng:         cfg.Rand,
		logger:      cfg.Logger,
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.logger = s.logger.With(slog.String("component", "app.QuoteService"))

	return s
}

// Feed loads a page of quotes and the user's favorite ids concurrently and
// shuffles the page.
func (s *QuoteService) Feed(ctx context.Context, userID string) (*Feed, error) {
	quotes, ids, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Quote, error) {
			return s.quotes.Sample(ctx, s.feedSize)
		},
		func(ctx context.Context) ([]string, error) {
			return s.favorites.QuoteIDs(ctx, userID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}

	s.mu.Lock()
	s.rng.Shuffle(len(quotes), func(i, j int) {
		quotes[i], quotes[j] = quotes[j], quotes[i]
	})
	s.mu.Unlock()

	if ids == nil {
		ids = []string{}
	}

	return &Feed{Quotes: quotes, FavoriteIDs: ids}, nil
}

// Quote returns one quote by id.
func (s *QuoteService) Quote(ctx context.Context, id string) (*domain.Quote, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "quote id is required")
	}

	return s.quotes.Get(ctx, id)
}

// ByCategory lists quotes of one category. Category names are matched
// case-insensitively against the known categories.
func (s *QuoteService) ByCategory(ctx context.Context, category string) ([]domain.Quote, error) {
	normalized := domain.NormalizeCategory(category)
	if normalized == "" {
		return nil, domain.NewValidationError("category", "category is required")
	}

	return s.quotes.ByCategory(ctx, normalized, s.feedSize)
}

// Search matches quotes against query. An empty query lists the most recent
// quotes and is not recorded in the history.
func (s *QuoteService) Search(ctx context.Context, userID, query string) (*SearchResult, error) {
	logger := logging.FromContext(ctx)
	limit := s.limit(ctx)
	query = strings.TrimSpace(query)

	if query == "" {
		quotes, err := s.quotes.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}

		return &SearchResult{Quotes: quotes}, nil
	}

	quotes, err := s.quotes.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if err := s.remember(ctx, userID, query); err != nil {
		logger.WarnContext(ctx, "failed to record search history",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	result := &SearchResult{Query: query, Quotes: quotes}
	if len(quotes) == 0 && s.suggestionsEnabled(ctx) {
		result.Suggestion = Suggest(query)
	}

	return result, nil
}

// History returns the user's recent searches, newest first.
func (s *QuoteService) History(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.store.Get(ctx, HistoryKey(userID))
	if domain.IsNotFound(err) {
		return []string{}, nil
	}

	if err != nil {
		return nil, err
	}

	var history []string
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "discarding corrupt search history",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)

		return []string{}, nil
	}

	return history, nil
}

// ClearHistory forgets every recorded search.
func (s *QuoteService) ClearHistory(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, HistoryKey(userID))
}

func (s *QuoteService) remember(ctx context.Context, userID, query string) error {
	history, err := s.History(ctx, userID)
	if err != nil {
		return err
	}

	history = slices.DeleteFunc(history, func(h string) bool { return h == query })
	history = append([]string{query}, history...)

	if len(history) > s.historySize {
		history = history[:s.historySize]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding search history: %w", err)
	}

	return s.store.Set(ctx, HistoryKey(userID), string(data), 0)
}

func (s *QuoteService) limit(ctx context.Context) int {
	if s.flags == nil {
		return s.searchLimit
	}

	if n := s.flags.GetInt(ctx, SearchLimitFlag, s.searchLimit); n > 0 {
		return n
	}

	return s.searchLimit
}

func (s *QuoteService) suggestionsEnabled(ctx context.Context) bool {
	if s.flags == nil {
		return true
	}

	return s.flags.IsEnabled(ctx, SuggestionsFlag, true)
}

// Suggest returns the known category closest to query, or "" when none is
// within MaxSuggestionDistance edits.
func Suggest(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}

	best, bestDistance := "", MaxSuggestionDistance+1
	for _, c := range domain.Categories {
		d := levenshtein.ComputeDistance(q, strings.ToLower(c))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}

	return best
}

func cmpOr(v, fallback int) int {
	if v > 0 {
		return v
	}

	return fallback
}
