package domain

import (
	"fmt"
	"strings"
	"time"
)

// Quote is an immutable piece of reference content.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID string

	// Content is the text of the quote.
	Content string

	// Author is who said or wrote the quote.
	Author string

	// Category groups quotes by theme (Motivation, Love, ...).
	Category string

	// CreatedAt orders the quote among the most recent additions.
	CreatedAt time.Time
}

// Categories lists the themes quotes are seeded under.
var Categories = []string{
	"Motivation",
	"Love",
	"Success",
	"Wisdom",
	"Humor",
	"Life",
	"Friendship",
	"Leadership",
	"Happiness",
	"Creativity",
}

// shareFooter is appended to every shared quote.
const shareFooter = "Shared via QuoteVault"

// ShareText formats the quote the way it is pasted into other apps.
func (q *Quote) ShareText() string {
	return fmt.Sprintf("\"%s\" — %s\n\n%s", q.Content, q.Author, shareFooter)
}

// NormalizeCategory returns the canonical spelling of a known category, or
// the trimmed input unchanged when it is not one.
func NormalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(c, trimmed) {
			return c
		}
	}

	return trimmed
}
