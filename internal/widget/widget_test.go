package widget

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

type stubDaily struct {
	quote *domain.Quote
	err   error
}

func (s stubDaily) Peek(context.Context) (*domain.Quote, bool, error) {
	return s.quote, s.quote != nil, s.err
}

type stubPrefs struct {
	prefs domain.Preferences
	err   error
}

func (s stubPrefs) Get(context.Context, string) (domain.Preferences, error) {
	return s.prefs, s.err
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, Theme{Background: "#FFD700", Text: "#000000", Accent: "#000000"}, ThemeFor(domain.WidgetGold))
	assert.Equal(t, Theme{Background: "#FFFFFF", Text: "#121212", Accent: "#C5A059"}, ThemeFor(domain.WidgetLight))
	assert.Equal(t, ThemeFor(domain.WidgetDark), ThemeFor("Neon"))
}

func TestCard(t *testing.T) {
	gold := domain.DefaultPreferences()
	gold.WidgetTheme = domain.WidgetGold

	unknown := domain.DefaultPreferences()
	unknown.WidgetTheme = "Neon"

	tests := []struct {
		name      string
		daily     stubDaily
		prefs     domain.Preferences
		want      string
		author    string
		cached    bool
		themeName domain.WidgetTheme
	}{
		{
			name:      "placeholder before first pick",
			prefs:     domain.DefaultPreferences(),
			want:      PlaceholderContent,
			author:    PlaceholderAuthor,
			themeName: domain.WidgetDark,
		},
		{
			name:      "cached quote with gold theme",
			daily:     stubDaily{quote: &domain.Quote{Content: "Be here now.", Author: "Ram Dass"}},
			prefs:     gold,
			want:      "Be here now.",
			author:    "Ram Dass",
			cached:    true,
			themeName: domain.WidgetGold,
		},
		{
			name:      "cache error shows placeholder",
			daily:     stubDaily{err: errors.New("redis down")},
			prefs:     domain.DefaultPreferences(),
			want:      PlaceholderContent,
			author:    PlaceholderAuthor,
			themeName: domain.WidgetDark,
		},
		{
			name:      "unknown theme falls back to dark",
			prefs:     unknown,
			want:      PlaceholderContent,
			author:    PlaceholderAuthor,
			themeName: domain.WidgetDark,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(Config{Daily: tt.daily, Preferences: stubPrefs{prefs: tt.prefs}})

			card, err := svc.Card(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, card.Content)
			assert.Equal(t, tt.author, card.Author)
			assert.Equal(t, tt.cached, card.Cached)
			assert.Equal(t, tt.themeName, card.ThemeName)
			assert.Equal(t, ThemeFor(tt.themeName), card.Theme)
			assert.Equal(t, "quotevault://daily", card.Link)
		})
	}
}

func TestCard_PreferencesError(t *testing.T) {
	svc := New(Config{Daily: stubDaily{}, Preferences: stubPrefs{err: domain.NewUnavailableError("redis", "down")}})

	_, err := svc.Card(context.Background(), "u1")
	assert.True(t, domain.IsUnavailable(err))
}

func TestNew_Panics(t *testing.T) {
	assert.Panics(t, func() { New(Config{Preferences: stubPrefs{}}) })
	assert.Panics(t, func() { New(Config{Daily: stubDaily{}}) })
}
