package domain

import (
	"fmt"
	"slices"
)

// ThemeName selects a color family.
type ThemeName string

// Supported themes.
const (
	ThemeClassic ThemeName = "Classic"
	ThemeOcean   ThemeName = "Ocean"
	ThemeNature  ThemeName = "Nature"
)

// ThemeNames lists every supported theme in display order.
var ThemeNames = []ThemeName{ThemeClassic, ThemeOcean, ThemeNature}

// FontScale multiplies every base font size.
type FontScale float64

// Supported font scales.
const (
	FontSmall  FontScale = 0.8
	FontMedium FontScale = 1.0
	FontLarge  FontScale = 1.2
)

// FontScales lists the accepted scales.
var FontScales = []FontScale{FontSmall, FontMedium, FontLarge}

// WidgetTheme selects the home-screen widget palette.
type WidgetTheme string

// Supported widget themes.
const (
	WidgetDark  WidgetTheme = "Dark"
	WidgetLight WidgetTheme = "Light"
	WidgetGold  WidgetTheme = "Gold"
)

// WidgetThemes lists the accepted widget themes.
var WidgetThemes = []WidgetTheme{WidgetDark, WidgetLight, WidgetGold}

// Reminder is a local time of day for the daily notification.
type Reminder struct {
	Hour   int
	Minute int
}

// DefaultReminder fires at 09:00.
var DefaultReminder = Reminder{Hour: 9, Minute: 0}

// Validate checks the hour and minute ranges.
func (r Reminder) Validate() error {
	if r.Hour < 0 || r.Hour > 23 {
		return NewValidationErrorWithValue("hour", "must be between 0 and 23", r.Hour)
	}

	if r.Minute < 0 || r.Minute > 59 {
		return NewValidationErrorWithValue("minute", "must be between 0 and 59", r.Minute)
	}

	return nil
}

// String renders the reminder as HH:MM.
func (r Reminder) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Preferences are the per-user settings persisted in the key-value store.
type Preferences struct {
	Theme       ThemeName
	DarkMode    bool
	FontScale   FontScale
	WidgetTheme WidgetTheme
	Reminder    Reminder
	PushEnabled bool
}

// DefaultPreferences returns the settings of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:       ThemeClassic,
		DarkMode:    true,
		FontScale:   FontMedium,
		WidgetTheme: WidgetDark,
		Reminder:    DefaultReminder,
		PushEnabled: true,
	}
}

// Validate checks every enumerated field.
func (p Preferences) Validate() error {
	if !slices.Contains(ThemeNames, p.Theme) {
		return NewValidationErrorWithValue("theme", "must be one of Classic, Ocean, Nature", p.Theme)
	}

	if !slices.Contains(FontScales, p.FontScale) {
		return NewValidationErrorWithValue("fontScale", "must be one of 0.8, 1.0, 1.2", p.FontScale)
	}

	if !slices.Contains(WidgetThemes, p.WidgetTheme) {
		return NewValidationErrorWithValue("widgetTheme", "must be one of Dark, Light, Gold", p.WidgetTheme)
	}

	return p.Reminder.Validate()
}
