package app

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
	"github.com/jsamuelsen/quotevault/internal/theme"
)

// Preference keys, stored under PreferenceKey(user, key).
const (
	PrefTheme          = "@app_theme"
	PrefDarkMode       = "@app_mode"
	PrefFontScale      = "@app_font"
	PrefWidgetTheme    = "widget_theme"
	PrefReminderHour   = "reminder_hour"
	PrefReminderMinute = "reminder_minute"
	PrefPushEnabled    = "push_enabled"
)

// PreferenceKey scopes a preference key to a user.
func PreferenceKey(userID, key string) string {
	return "prefs:" + userID + ":" + key
}

// PreferencesUpdate is a partial edit. Nil fields are left unchanged.
type PreferencesUpdate struct {
	Theme          *domain.ThemeName
	DarkMode       *bool
	FontScale      *domain.FontScale
	WidgetTheme    *domain.WidgetTheme
	ReminderHour   *int
	ReminderMinute *int
	PushEnabled    *bool
}

// PreferencesService persists per-user settings in the key-value store.
type PreferencesService struct {
	store  ports.KeyValueStore
	logger *slog.Logger
}

// NewPreferencesService creates the service. It panics without a store.
func NewPreferencesService(store ports.KeyValueStore, logger *slog.Logger) *PreferencesService {
	if store == nil {
		panic("app: preferences store is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PreferencesService{
		store:  store,
		logger: logger.With(slog.String("component", "app.PreferencesService")),
	}
}

// Get returns the user's preferences. Missing or unreadable keys take their
// default value.
func (s *PreferencesService) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	p := domain.DefaultPreferences()

	read := func(key string, apply func(string) bool) error {
		raw, err := s.store.Get(ctx, PreferenceKey(userID, key))
		if domain.IsNotFound(err) {
			return nil
		}

		if err != nil {
			return err
		}

		if !apply(raw) {
			logging.FromContext(ctx).WarnContext(ctx, "ignoring malformed preference",
				slog.String("key", key),
				slog.String("value", raw),
			)
		}

		return nil
	}

	fields := []struct {
		key   string
		apply func(string) bool
	}{
		{PrefTheme, func(v string) bool {
			p.Theme = domain.ThemeName(v)
			return true
		}},
		{PrefDarkMode, parseBoolInto(&p.DarkMode)},
		{PrefFontScale, func(v string) bool {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return false
			}

			p.FontScale = domain.FontScale(f)

			return true
		}},
		{PrefWidgetTheme, func(v string) bool {
			p.WidgetTheme = domain.WidgetTheme(v)
			return true
		}},
		{PrefReminderHour, parseIntInto(&p.Reminder.Hour)},
		{PrefReminderMinute, parseIntInto(&p.Reminder.Minute)},
		{PrefPushEnabled, parseBoolInto(&p.PushEnabled)},
	}

	for _, f := range fields {
		if err := read(f.key, f.apply); err != nil {
			return domain.Preferences{}, err
		}
	}

	if err := p.Validate(); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "stored preferences invalid, using defaults",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)

		return domain.DefaultPreferences(), nil
	}

	return p, nil
}

// Update validates the merged preferences and writes only the provided
// fields.
func (s *PreferencesService) Update(ctx context.Context, userID string, u PreferencesUpdate) (domain.Preferences, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}

	writes := map[string]string{}

	if u.Theme != nil {
		p.Theme = *u.Theme
		writes[PrefTheme] = string(*u.Theme)
	}

	if u.DarkMode != nil {
		p.DarkMode = *u.DarkMode
		writes[PrefDarkMode] = strconv.FormatBool(*u.DarkMode)
	}

	if u.FontScale != nil {
		p.FontScale = *u.FontScale
		writes[PrefFontScale] = strconv.FormatFloat(float64(*u.FontScale), 'g', -1, 64)
	}

	if u.WidgetTheme != nil {
		p.WidgetTheme = *u.WidgetTheme
		writes[PrefWidgetTheme] = string(*u.WidgetTheme)
	}

	if u.ReminderHour != nil {
		p.Reminder.Hour = *u.ReminderHour
		writes[PrefReminderHour] = strconv.Itoa(*u.ReminderHour)
	}

	if u.ReminderMinute != nil {
		p.Reminder.Minute = *u.ReminderMinute
		writes[PrefReminderMinute] = strconv.Itoa(*u.ReminderMinute)
	}

	if u.PushEnabled != nil {
		p.PushEnabled = *u.PushEnabled
		writes[PrefPushEnabled] = strconv.FormatBool(*u.PushEnabled)
	}

	if err := p.Validate(); err != nil {
		return domain.Preferences{}, err
	}

	for key, value := range writes {
		if err := s.store.Set(ctx, PreferenceKey(userID, key), value, 0); err != nil {
			return domain.Preferences{}, err
		}
	}

	return p, nil
}

// Theme returns the display configuration derived from the preferences.
func (s *PreferencesService) Theme(ctx context.Context, userID string) (theme.Config, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return theme.Config{}, err
	}

	return theme.FromPreferences(p), nil
}

func parseBoolInto(dst *bool) func(string) bool {
	return func(v string) bool {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false
		}

		*dst = b

		return true
	}
}

func parseIntInto(dst *int) func(string) bool {
	return func(v string) bool {
		n, err := strconv.Atoi(v)
		if err != nil {
			return false
		}

		*dst = n

		return true
	}
}
