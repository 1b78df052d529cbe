// Package ports declares the interfaces the application layer depends on.
// Adapters implement them; services never see gorm, redis or HTTP types.
// Every method takes a context first and reports failures as domain errors.
package ports

import (
	"context"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// QuoteRepository reads the seeded quote catalogue.
type QuoteRepository interface {
	// Get returns domain.ErrNotFound when no quote has the id.
	Get(ctx context.Context, id string) (*domain.Quote, error)

	// Recent returns up to limit quotes, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Quote, error)

	// Sample returns up to limit quotes in storage order.
	Sample(ctx context.Context, limit int) ([]domain.Quote, error)

	// Search matches query case-insensitively against content, author and category.
	Search(ctx context.Context, query string, limit int) ([]domain.Quote, error)

	ByCategory(ctx context.Context, category string, limit int) ([]domain.Quote, error)
}

// FavoriteRepository stores which quotes a user has liked.
type FavoriteRepository interface {
	// Add is idempotent: liking a liked quote is not an error.
	Add(ctx context.Context, userID, quoteID string) error

	// Remove is idempotent.
	Remove(ctx context.Context, userID, quoteID string) error

	Exists(ctx context.Context, userID, quoteID string) (bool, error)

	// QuoteIDs returns the ids of every liked quote.
	QuoteIDs(ctx context.Context, userID string) ([]string, error)

	// Quotes returns liked quotes, most recently liked first.
	Quotes(ctx context.Context, userID string) ([]domain.Quote, error)
}

// CollectionRepository stores user collections and their membership.
type CollectionRepository interface {
	List(ctx context.Context, userID string, order domain.CollectionOrder) ([]domain.Collection, error)

	// Get returns domain.ErrNotFound for a missing collection or one owned by someone else.
	Get(ctx context.Context, userID, id string) (*domain.Collection, error)

	Create(ctx context.Context, c *domain.Collection) error

	// Delete removes the collection and its membership rows.
	Delete(ctx context.Context, userID, id string) error

	// AddQuote returns domain.ErrConflict when the quote is already a member.
	AddQuote(ctx context.Context, collectionID, quoteID string) error

	RemoveQuote(ctx context.Context, collectionID, quoteID string) error

	// Quotes returns member quotes, most recently added first.
	Quotes(ctx context.Context, collectionID string) ([]domain.Quote, error)
}

// ProfileRepository stores public profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

// UserRepository stores authentication identities.
type UserRepository interface {
	// Create returns domain.ErrConflict when the email is taken.
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdateFullName(ctx context.Context, id, fullName string) error
}
