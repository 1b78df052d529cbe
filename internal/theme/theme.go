// Package theme resolves color palettes and font sizes from an explicit
// Config. Nothing in this package reads global state; callers pass the
// Config they were given.
package theme

import (
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// Palette is the set of colors a screen is drawn with. Values are #RRGGBB.
type Palette struct {
	Background      string `json:"background"`
	Card            string `json:"card"`
	Text            string `json:"text"`
	TextSecondary   string `json:"textSecondary"`
	Primary         string `json:"primary"`
	Border          string `json:"border"`
	TabBar          string `json:"tabBar"`
	TabIconActive   string `json:"tabIconActive"`
	TabIconInactive string `json:"tabIconInactive"`
}

type variants struct {
	dark  Palette
	light Palette
}

var palettes = map[domain.ThemeName]variants{
	domain.ThemeClassic: {
		dark: Palette{
			Background: "#121212", Card: "#1E1E1E", Text: "#FFFFFF", TextSecondary: "#AAAAAA",
			Primary: "#FFD700", Border: "#333333", TabBar: "#000000",
			TabIconActive: "#FFFFFF", TabIconInactive: "#666666",
		},
		light: Palette{
			Background: "#FFFFFF", Card: "#F5F5F5", Text: "#121212", TextSecondary: "#666666",
			Primary: "#FFD700", Border: "#E0E0E0", TabBar: "#FFFFFF",
			TabIconActive: "#000000", TabIconInactive: "#999999",
		},
	},
	domain.ThemeOcean: {
		dark: Palette{
			Background: "#0D1B2A", Card: "#1B263B", Text: "#E0E1DD", TextSecondary: "#778DA9",
			Primary: "#00E5FF", Border: "#415A77", TabBar: "#0A1622",
			TabIconActive: "#00E5FF", TabIconInactive: "#415A77",
		},
		light: Palette{
			Background: "#F0F8FF", Card: "#FFFFFF", Text: "#0D1B2A", TextSecondary: "#555555",
			Primary: "#0099CC", Border: "#B0C4DE", TabBar: "#FFFFFF",
			TabIconActive: "#0099CC", TabIconInactive: "#A0A0A0",
		},
	},
	domain.ThemeNature: {
		dark: Palette{
			Background: "#1A2F1A", Card: "#2C402C", Text: "#F0FFF0", TextSecondary: "#A0CFA0",
			Primary: "#90EE90", Border: "#3E553E", TabBar: "#142514",
			TabIconActive: "#90EE90", TabIconInactive: "#507050",
		},
		light: Palette{
			Background: "#F5F5DC", Card: "#FFFFFF", Text: "#2F4F4F", TextSecondary: "#6B8E23",
			Primary: "#556B2F", Border: "#D2B48C", TabBar: "#EFEFDE",
			TabIconActive: "#556B2F", TabIconInactive: "#A9A9A9",
		},
	},
}

// Base font sizes before scaling.
const (
	baseBody   = 16
	baseTitle  = 20
	baseQuote  = 22
	baseAuthor = 14
)

// FontSizes are point sizes after applying the scale.
type FontSizes struct {
	Body   float64 `json:"body"`
	Title  float64 `json:"title"`
	Quote  float64 `json:"quote"`
	Author float64 `json:"author"`
}

// Config is the user's display choice.
type Config struct {
	Name  domain.ThemeName `json:"name"`
	Dark  bool             `json:"dark"`
	Scale domain.FontScale `json:"fontScale"`
}

// Default is Classic, dark, medium text.
func Default() Config {
	return Config{Name: domain.ThemeClassic, Dark: true, Scale: domain.FontMedium}
}

// FromPreferences extracts the display settings from stored preferences.
func FromPreferences(p domain.Preferences) Config {
	return Config{Name: p.Theme, Dark: p.DarkMode, Scale: p.FontScale}
}

// Palette returns the colors for the config. Unknown names use Classic.
func (c Config) Palette() Palette {
	v, ok := palettes[c.Name]
	if !ok {
		v = palettes[domain.ThemeClassic]
	}

	if c.Dark {
		return v.dark
	}

	return v.light
}

// FontSizes scales the base sizes. A zero or unknown scale counts as medium.
func (c Config) FontSizes() FontSizes {
	scale := float64(c.Scale)
	if scale <= 0 {
		scale = float64(domain.FontMedium)
	}

	return FontSizes{
		Body:   baseBody * scale,
		Title:  baseTitle * scale,
		Quote:  baseQuote * scale,
		Author: baseAuthor * scale,
	}
}

// Resolved bundles everything a renderer needs.
type Resolved struct {
	Config
	Colors Palette   `json:"colors"`
	Fonts  FontSizes `json:"fontSizes"`
}

// Resolve computes the palette and font sizes for c.
func (c Config) Resolve() Resolved {
	return Resolved{Config: c, Colors: c.Palette(), Fonts: c.FontSizes()}
}
