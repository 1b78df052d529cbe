package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/kv"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/theme"
)

func ptr[T any](v T) *T { return &v }

func TestPreferencesService_GetDefaults(t *testing.T) {
	svc := NewPreferencesService(kv.NewMemoryStore(nil), discardLogger())

	p, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), p)
}

func TestPreferencesService_UpdateWritesOnlyProvidedFields(t *testing.T) {
	store := kv.NewMemoryStore(nil)
	svc := NewPreferencesService(store, discardLogger())
	ctx := context.Background()

	p, err := svc.Update(ctx, "u1", PreferencesUpdate{
		Theme:     ptr(domain.ThemeOcean),
		FontScale: ptr(domain.FontLarge),
		DarkMode:  ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeOcean, p.Theme)
	assert.Equal(t, domain.FontLarge, p.FontScale)
	assert.False(t, p.DarkMode)
	assert.Equal(t, domain.DefaultReminder, p.Reminder)

	keys, err := store.Keys(ctx, "prefs:u1:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		PreferenceKey("u1", PrefTheme),
		PreferenceKey("u1", PrefFontScale),
		PreferenceKey("u1", PrefDarkMode),
	}, keys)

	raw, err := store.Get(ctx, PreferenceKey("u1", PrefFontScale))
	require.NoError(t, err)
	assert.Equal(t, "1.2", raw)

	reloaded, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p, reloaded)

	other, err := svc.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), other)
}

func TestPreferencesService_UpdateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		update PreferencesUpdate
		field  string
	}{
		{name: "theme", update: PreferencesUpdate{Theme: ptr(domain.ThemeName("Sunset"))}, field: "theme"},
		{name: "font", update: PreferencesUpdate{FontScale: ptr(domain.FontScale(2))}, field: "fontScale"},
		{name: "widget", update: PreferencesUpdate{WidgetTheme: ptr(domain.WidgetTheme("Neon"))}, field: "widgetTheme"},
		{name: "hour", update: PreferencesUpdate{ReminderHour: ptr(24)}, field: "hour"},
		{name: "minute", update: PreferencesUpdate{ReminderMinute: ptr(-1)}, field: "minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore(nil)
			svc := NewPreferencesService(store, discardLogger())

			_, err := svc.Update(context.Background(), "u1", tt.update)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			keys, err := store.Keys(context.Background(), "prefs:")
			require.NoError(t, err)
			assert.Empty(t, keys, "nothing is written on validation failure")
		})
	}
}

func TestPreferencesService_MalformedStoredValues(t *testing.T) {
	store := kv.NewMemoryStore(nil)
	svc := NewPreferencesService(store, discardLogger())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, PreferenceKey("u1", PrefPushEnabled), "maybe", 0))
	require.NoError(t, store.Set(ctx, PreferenceKey("u1", PrefReminderHour), "21", 0))

	p, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, p.PushEnabled)
	assert.Equal(t, 21, p.Reminder.Hour)

	require.NoError(t, store.Set(ctx, PreferenceKey("u1", PrefReminderHour), "99", 0))

	p, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), p)
}

func TestPreferencesService_Theme(t *testing.T) {
	svc := NewPreferencesService(kv.NewMemoryStore(nil), discardLogger())
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", PreferencesUpdate{Theme: ptr(domain.ThemeNature), FontScale: ptr(domain.FontSmall)})
	require.NoError(t, err)

	cfg, err := svc.Theme(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, theme.Config{Name: domain.ThemeNature, Dark: true, Scale: domain.FontSmall}, cfg)
}
