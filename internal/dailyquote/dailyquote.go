// Package dailyquote picks one quote per UTC day and caches it in the
// key-value store so every caller sees the same quote until midnight.
package dailyquote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

const (
	// KeyPrefix starts every daily cache key.
	KeyPrefix = "daily_quote_"

	// DefaultSampleSize bounds how many quotes are considered per pick.
	DefaultSampleSize = 50

	// SampleSizeFlag overrides the sample size at runtime.
	SampleSizeFlag = "daily-quote-sample-size"
)

// Key returns the cache key for the UTC date of t.
func Key(t time.Time) string {
	return KeyPrefix + t.UTC().Format(time.DateOnly)
}

// Service serves the quote of the day.
type Service struct {
	quotes     ports.QuoteRepository
	store      ports.KeyValueStore
	flags      ports.FeatureFlags
	sampleSize int
	now        func() time.Time
	logger     *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Config holds the dependencies of the daily quote service.
type Config struct {
	Quotes     ports.QuoteRepository // required
	Store      ports.KeyValueStore   // required
	Flags      ports.FeatureFlags
	SampleSize int
	Clock      func() time.Time
	Rand       *rand.Rand
	Logger     *slog.Logger
}

// New creates the service. It panics when a required dependency is missing.
func New(cfg Config) *Service {
	if cfg.Quotes == nil {
		panic("dailyquote: Quotes is required")
	}

	if cfg.Store == nil {
		panic("dailyquote: Store is required")
	}

	s := &Service{
		quotes:     cfg.Quotes,
		store:      cfg.Store,
		flags:      cfg.Flags,
		sampleSize: cfg.SampleSize,
		now:        cfg.Clock,
		rng:        cfg.Rand,
		logger:     cfg.Logger,
	}

	if s.sampleSize <= 0 {
		s.sampleSize = DefaultSampleSize
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.logger = s.logger.With(slog.String("component", "dailyquote"))

	return s
}

type cachedQuote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Today returns today's quote, choosing and caching one on the first call
// of the day. Choosing also purges the caches of previous days.
func (s *Service) Today(ctx context.Context) (*domain.Quote, error) {
	now := s.now()
	key := Key(now)

	if q, ok, err := s.lookup(ctx, key); err != nil {
		return nil, err
	} else if ok {
		return q, nil
	}

	sample, err := s.quotes.Sample(ctx, s.sampleSizeFor(ctx))
	if err != nil {
		return nil, fmt.Errorf("sampling quotes: %w", err)
	}

	if len(sample) == 0 {
		return nil, domain.NewNotFoundError("Quote", "daily")
	}

	picked := sample[s.intN(len(sample))]

	raw, err := json.Marshal(cachedQuote(picked))
	if err != nil {
		return nil, fmt.Errorf("encoding daily quote: %w", err)
	}

	if err := s.store.Set(ctx, key, string(raw), 0); err != nil {
		return nil, fmt.Errorf("caching daily quote: %w", err)
	}

	s.purgeStale(ctx, key)

	logging.FromContext(ctx).InfoContext(ctx, "picked daily quote",
		slog.String("key", key),
		slog.String("quote_id", picked.ID),
		slog.Int("sample", len(sample)),
	)

	return &picked, nil
}

// Peek returns today's cached quote without choosing one.
func (s *Service) Peek(ctx context.Context) (*domain.Quote, bool, error) {
	return s.lookup(ctx, Key(s.now()))
}

func (s *Service) lookup(ctx context.Context, key string) (*domain.Quote, bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("reading daily quote: %w", err)
	}

	var cq cachedQuote
	if err := json.Unmarshal([]byte(raw), &cq); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable daily quote",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return nil, false, nil
	}

	q := domain.Quote(cq)

	return &q, true, nil
}

func (s *Service) purgeStale(ctx context.Context, keep string) {
	keys, err := s.store.Keys(ctx, KeyPrefix)
	if err != nil {
		s.logger.WarnContext(ctx, "listing stale daily quotes", slog.Any("error", err))
		return
	}

	stale := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != keep && strings.HasPrefix(k, KeyPrefix) {
			stale = append(stale, k)
		}
	}

	if len(stale) == 0 {
		return
	}

	if err := s.store.Delete(ctx, stale...); err != nil {
		s.logger.WarnContext(ctx, "purging stale daily quotes", slog.Any("error", err))
	}
}

func (s *Service) sampleSizeFor(ctx context.Context) int {
	if s.flags == nil {
		return s.sampleSize
	}

	if n := s.flags.GetInt(ctx, SampleSizeFlag, s.sampleSize); n > 0 {
		return n
	}

	return s.sampleSize
}

func (s *Service) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(n)
}
