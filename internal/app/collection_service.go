package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	reqctx "github.com/jsamuelsen/quotevault/internal/app/context"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// AlreadyInCollection is the conflict reason shown when a quote is added twice.
const AlreadyInCollection = "already in that collection"

// CollectionService manages user collections.
type CollectionService struct {
	quotes      ports.QuoteRepository
	collections ports.CollectionRepository
	now         func() time.Time
	newID       func() string
	logger      *slog.Logger
}

// CollectionServiceConfig contains the dependencies of the collection service.
type CollectionServiceConfig struct {
	Quotes      ports.QuoteRepository      // required
	Collections ports.CollectionRepository // required
	Clock       func() time.Time
	NewID       func() string
	Logger      *slog.Logger
}

// NewCollectionService creates the service. It panics when a required
// dependency is missing.
func NewCollectionService(cfg CollectionServiceConfig) *CollectionService {
	if cfg.Quotes == nil {
		panic("app: CollectionServiceConfig.Quotes is required")
	}

	if cfg.Collections == nil {
		panic("app: CollectionServiceConfig.Collections is required")
	}

	s := &CollectionService{
		quotes:      cfg.Quotes,
		collections: cfg.Collections,
		now:         cfg.Clock,
		newID:       cfg.NewID,
		logger:      cfg.Logger,
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.newID == nil {
		s.newID = uuid.NewString
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.logger = s.logger.With(slog.String("component", "app.CollectionService"))

	return s
}

// List returns the user's collections in the requested order.
func (s *CollectionService) List(ctx context.Context, userID string, order domain.CollectionOrder) ([]domain.Collection, error) {
	return s.collections.List(ctx, userID, order)
}

// Create stores a new, empty collection.
func (s *CollectionService) Create(ctx context.Context, userID, name string) (*domain.Collection, error) {
	c, err := s.build(userID, name)
	if err != nil {
		return nil, err
	}

	if err := s.collections.Create(ctx, c); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).InfoContext(ctx, "collection created",
		slog.String("collection_id", c.ID),
	)

	return c, nil
}

// Delete removes a collection the user owns.
func (s *CollectionService) Delete(ctx context.Context, userID, id string) error {
	return s.collections.Delete(ctx, userID, id)
}

// AddQuote adds a quote to one of the user's collections.
func (s *CollectionService) AddQuote(ctx context.Context, userID, collectionID, quoteID string) error {
	rc := reqctx.New(ctx)

	if _, err := s.owned(rc, userID, collectionID); err != nil {
		return err
	}

	if err := s.checkQuote(rc, quoteID); err != nil {
		return err
	}

	return s.add(ctx, collectionID, quoteID)
}

// RemoveQuote takes a quote out of one of the user's collections.
func (s *CollectionService) RemoveQuote(ctx context.Context, userID, collectionID, quoteID string) error {
	if _, err := s.owned(reqctx.New(ctx), userID, collectionID); err != nil {
		return err
	}

	return s.collections.RemoveQuote(ctx, collectionID, quoteID)
}

// Quotes lists the quotes in one of the user's collections, most recently
// added first.
func (s *CollectionService) Quotes(ctx context.Context, userID, collectionID string) ([]domain.Quote, error) {
	if _, err := s.owned(reqctx.New(ctx), userID, collectionID); err != nil {
		return nil, err
	}

	return s.collections.Quotes(ctx, collectionID)
}

// CreateAndAdd creates a collection holding one quote. The two writes are
// staged; when the add fails the new collection is deleted again.
func (s *CollectionService) CreateAndAdd(ctx context.Context, userID, name, quoteID string) (*domain.Collection, error) {
	c, err := s.build(userID, name)
	if err != nil {
		return nil, err
	}

	rc := reqctx.New(ctx)
	if err := s.checkQuote(rc, quoteID); err != nil {
		return nil, err
	}

	create := reqctx.Action{
		Name: "create collection",
		Do: func(ctx context.Context) error {
			return s.collections.Create(ctx, c)
		},
		Undo: func(ctx context.Context) error {
			return s.collections.Delete(ctx, userID, c.ID)
		},
	}

	add := reqctx.Action{
		Name: "add quote",
		Do: func(ctx context.Context) error {
			return s.add(ctx, c.ID, quoteID)
		},
		Undo: func(ctx context.Context) error {
			return s.collections.RemoveQuote(ctx, c.ID, quoteID)
		},
	}

	if err := rc.Stage(create, add); err != nil {
		return nil, err
	}

	if err := rc.Commit(ctx); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).InfoContext(ctx, "collection created with quote",
		slog.String("collection_id", c.ID),
		slog.String("quote_id", quoteID),
	)

	return c, nil
}

func (s *CollectionService) build(userID, name string) (*domain.Collection, error) {
	trimmed, err := domain.ValidateCollectionName(name)
	if err != nil {
		return nil, err
	}

	return &domain.Collection{
		ID:        s.newID(),
		UserID:    userID,
		Name:      trimmed,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *CollectionService) add(ctx context.Context, collectionID, quoteID string) error {
	err := s.collections.AddQuote(ctx, collectionID, quoteID)
	if domain.IsConflict(err) {
		return domain.NewConflictError("Quote", AlreadyInCollection)
	}

	return err
}

func (s *CollectionService) owned(rc *reqctx.Request, userID, collectionID string) (*domain.Collection, error) {
	if strings.TrimSpace(collectionID) == "" {
		return nil, domain.NewValidationError("collectionId", "collection id is required")
	}

	return reqctx.Fetch(rc, "collection:"+collectionID, func(ctx context.Context) (*domain.Collection, error) {
		return s.collections.Get(ctx, userID, collectionID)
	})
}

func (s *CollectionService) checkQuote(rc *reqctx.Request, quoteID string) error {
	if strings.TrimSpace(quoteID) == "" {
		return domain.NewValidationError("quoteId", "quote id is required")
	}

	_, err := reqctx.Fetch(rc, "quote:"+quoteID, func(ctx context.Context) (*domain.Quote, error) {
		return s.quotes.Get(ctx, quoteID)
	})

	return err
}
