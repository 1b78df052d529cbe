package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

//go:embed seed_quotes.json
var seedQuotes []byte

// seedEpoch is the creation time of the first seeded quote; each following
// quote is one minute newer so "recent" ordering is deterministic.
var seedEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// SeedQuotes returns the bundled catalogue.
func SeedQuotes() ([]domain.Quote, error) {
	var raw []struct {
		ID       string `json:"id"`
		Content  string `json:"content"`
		Author   string `json:"author"`
		Category string `json:"category"`
	}

	if err := json.Unmarshal(seedQuotes, &raw); err != nil {
		return nil, fmt.Errorf("decoding seed quotes: %w", err)
	}

	quotes := make([]domain.Quote, len(raw))
	for i, r := range raw {
		quotes[i] = domain.Quote{
			ID:        r.ID,
			Content:   r.Content,
			Author:    r.Author,
			Category:  r.Category,
			CreatedAt: seedEpoch.Add(time.Duration(i) * time.Minute),
		}
	}

	return quotes, nil
}

// Seed inserts the bundled catalogue. Quotes already present are left alone.
func Seed(ctx context.Context, repo *QuoteRepository) (int, error) {
	quotes, err := SeedQuotes()
	if err != nil {
		return 0, err
	}

	if err := repo.Insert(ctx, quotes); err != nil {
		return 0, fmt.Errorf("seeding quotes: %w", err)
	}

	return len(quotes), nil
}
