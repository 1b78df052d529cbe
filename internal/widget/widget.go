// Package widget builds the home-screen card showing today's quote.
package widget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/navigation"
)

// Placeholder text shown before the app has picked today's quote.
const (
	PlaceholderContent = "Open App to see today's insight."
	PlaceholderAuthor  = "QuoteVault"
)

// Theme is a widget palette.
type Theme struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

var themes = map[domain.WidgetTheme]Theme{
	domain.WidgetDark:  {Background: "#121212", Text: "#FFFFFF", Accent: "#FFD700"},
	domain.WidgetLight: {Background: "#FFFFFF", Text: "#121212", Accent: "#C5A059"},
	domain.WidgetGold:  {Background: "#FFD700", Text: "#000000", Accent: "#000000"},
}

// ThemeFor returns the palette for name, falling back to Dark.
func ThemeFor(name domain.WidgetTheme) Theme {
	if t, ok := themes[name]; ok {
		return t
	}

	return themes[domain.WidgetDark]
}

// Card is everything a widget needs to draw itself.
type Card struct {
	Content   string             `json:"content"`
	Author    string             `json:"author"`
	ThemeName domain.WidgetTheme `json:"themeName"`
	Theme     Theme              `json:"theme"`
	Link      string             `json:"link"`

	// Cached reports whether the content came from today's pick.
	Cached bool `json:"cached"`
}

// DailySource reads today's cached quote without choosing one.
type DailySource interface {
	Peek(ctx context.Context) (*domain.Quote, bool, error)
}

// PreferenceSource reads a user's settings.
type PreferenceSource interface {
	Get(ctx context.Context, userID string) (domain.Preferences, error)
}

// Service assembles widget cards.
type Service struct {
	daily  DailySource
	prefs  PreferenceSource
	logger *slog.Logger
}

// Config holds the dependencies of Service.
type Config struct {
	Daily       DailySource      // required
	Preferences PreferenceSource // required
	Logger      *slog.Logger
}

// New creates the service. It panics when a required dependency is missing.
func New(cfg Config) *Service {
	if cfg.Daily == nil {
		panic("widget: Daily is required")
	}

	if cfg.Preferences == nil {
		panic("widget: Preferences is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{daily: cfg.Daily, prefs: cfg.Preferences, logger: cfg.Logger}
}

// Card returns the widget card for userID. It never picks a quote; until
// one is cached the placeholder is shown.
func (s *Service) Card(ctx context.Context, userID string) (*Card, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading widget theme: %w", err)
	}

	card := &Card{
		Content:   PlaceholderContent,
		Author:    PlaceholderAuthor,
		ThemeName: prefs.WidgetTheme,
		Theme:     ThemeFor(prefs.WidgetTheme),
		Link:      navigation.DailyLink,
	}

	if _, ok := themes[prefs.WidgetTheme]; !ok {
		card.ThemeName = domain.WidgetDark
	}

	q, ok, err := s.daily.Peek(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "widget falling back to placeholder", slog.Any("error", err))
		return card, nil
	}

	if ok {
		card.Content = q.Content
		card.Author = q.Author
		card.Cached = true
	}

	return card, nil
}
