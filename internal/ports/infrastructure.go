package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// KeyValueStore is a flat string store with optional expiry.
// Implementations exist for redis and for process memory.
type KeyValueStore interface {
	// Get returns domain.ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Keys lists every key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ObjectStorage holds uploaded binary objects such as avatars.
type ObjectStorage interface {
	// Upload writes data to bucket/path, replacing any existing object.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error

	// PublicURL returns the address clients use to fetch the object.
	PublicURL(bucket, path string) string
}

// EventPublisher defines the contract for publishing domain events.
type EventPublisher interface {
	// Publish returns domain.ErrUnavailable if the bus is unreachable.
	Publish(ctx context.Context, event Event) error
}

// Event represents a domain event that can be published.
type Event interface {
	// EventType returns the routing key, e.g. "reminder.due".
	EventType() string

	// Payload returns the data to serialize.
	Payload() any
}

// TokenClaims is what a verified access token asserts.
type TokenClaims struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies access tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, user *domain.User) (*domain.Session, error)

	// Parse returns domain.ErrUnauthorized for malformed, forged or expired tokens.
	Parse(ctx context.Context, token string) (*TokenClaims, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns domain.ErrUnauthorized on mismatch.
	Compare(hash, password string) error
}
