package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCollectionNameLength bounds collection names.
const MaxCollectionNameLength = 60

// Favorite marks a quote as liked by a user. Its existence is the state.
type Favorite struct {
	UserID    string
	QuoteID   string
	CreatedAt time.Time
}

// Collection is a user-owned, named grouping of quotes.
type Collection struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}

// CollectionQuote joins a quote to a collection. The pair is unique.
type CollectionQuote struct {
	CollectionID string
	QuoteID      string
	CreatedAt    time.Time
}

// CollectionOrder selects how collections are listed.
type CollectionOrder string

const (
	// CollectionOrderName sorts alphabetically, as the add-to-collection picker does.
	CollectionOrderName CollectionOrder = "name"

	// CollectionOrderRecent sorts newest first, as the profile grid does.
	CollectionOrderRecent CollectionOrder = "recent"
)

// ParseCollectionOrder maps a query value to an order, defaulting to recent.
func ParseCollectionOrder(s string) CollectionOrder {
	if CollectionOrder(strings.ToLower(strings.TrimSpace(s))) == CollectionOrderName {
		return CollectionOrderName
	}

	return CollectionOrderRecent
}

// ValidateCollectionName trims the name and checks its length.
func ValidateCollectionName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", NewValidationError("name", "collection name is required")
	}

	if utf8.RuneCountInString(trimmed) > MaxCollectionNameLength {
		return "", NewValidationErrorWithValue("name", "collection name is too long", trimmed)
	}

	return trimmed, nil
}
