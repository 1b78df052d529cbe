// Package render draws quotes as shareable PNG cards in one of eight
// visual templates.
package render

import (
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// Template names.
const (
	Standard   = "standard"
	Minimalist = "minimalist"
	Neon       = "neon"
	Retro      = "retro"
	Luxury     = "luxury"
	Vibrant    = "vibrant"
	Cyber      = "cyber"
	Stark      = "stark"
)

// Align positions a line of text horizontally.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Family selects a typeface family.
type Family int

const (
	FamilySans Family = iota
	FamilyMono
)

// TextStyle describes one text run. Sizes are in points at a 360pt wide card
// and scale with the output width.
type TextStyle struct {
	Color         string
	Size          float64
	LineHeight    float64 // zero means 1.3 × Size
	Family        Family
	Bold          bool
	Italic        bool
	Uppercase     bool
	Align         Align
	LetterSpacing float64
	Opacity       float64 // zero means opaque
	Glow          string  // shadow color, empty for none
	MarginTop     float64
}

// Style is a complete template preset.
type Style struct {
	Name         string
	Background   string
	Padding      float64
	Text         TextStyle
	Author       TextStyle
	AuthorPrefix string

	// InnerBorder is the width of a frame drawn inside the padding.
	InnerBorder      float64
	InnerBorderColor string

	// CategoryBackdrop paints the quote category's tint under a dark
	// gradient instead of a flat background.
	CategoryBackdrop bool
}

var styles = map[string]Style{
	Standard: {
		Name:             Standard,
		Background:       "#000000",
		Padding:          30,
		Text:             TextStyle{Color: "#FFFFFF", Size: 24, LineHeight: 34, Bold: true, Glow: "#00000080"},
		Author:           TextStyle{Color: "#FFD700", Size: 12, Bold: true, LetterSpacing: 2, MarginTop: 20},
		AuthorPrefix:     "— ",
		CategoryBackdrop: true,
	},
	Minimalist: {
		Name:         Minimalist,
		Background:   "#F5F5DC",
		Padding:      40,
		Text:         TextStyle{Color: "#333333", Size: 24, LineHeight: 34},
		Author:       TextStyle{Color: "#666666", Size: 14, LetterSpacing: 1, MarginTop: 20},
		AuthorPrefix: "— ",
	},
	Neon: {
		Name:         Neon,
		Background:   "#000000",
		Padding:      30,
		Text:         TextStyle{Color: "#39FF14", Size: 28, LineHeight: 38, Bold: true, Glow: "#39FF14"},
		Author:       TextStyle{Color: "#FFFFFF", Size: 12, LetterSpacing: 4, MarginTop: 25},
		AuthorPrefix: "— ",
	},
	Retro: {
		Name:         Retro,
		Background:   "#FDF6E3",
		Padding:      35,
		Text:         TextStyle{Color: "#586E75", Size: 22, LineHeight: 30, Family: FamilyMono, Align: AlignLeft},
		Author:       TextStyle{Color: "#93A1A1", Size: 14, Family: FamilyMono, Align: AlignRight, MarginTop: 30},
		AuthorPrefix: "— ",
	},
	Luxury: {
		Name:         Luxury,
		Background:   "#0F172A",
		Padding:      40,
		Text:         TextStyle{Color: "#FFD700", Size: 26, LineHeight: 38, Italic: true},
		Author:       TextStyle{Color: "#FFD700", Size: 13, LetterSpacing: 3, Opacity: 0.8, MarginTop: 30},
		AuthorPrefix: "— ",
	},
	Vibrant: {
		Name:         Vibrant,
		Background:   "#FF4500",
		Padding:      30,
		Text:         TextStyle{Color: "#FFFFFF", Size: 30, LineHeight: 40, Bold: true},
		Author:       TextStyle{Color: "#FFFFFF", Size: 15, Bold: true, Opacity: 0.9, MarginTop: 20},
		AuthorPrefix: "— ",
	},
	Cyber: {
		Name:         Cyber,
		Background:   "#240046",
		Padding:      30,
		Text:         TextStyle{Color: "#00FFFF", Size: 24, Family: FamilyMono, Bold: true, Glow: "#00FFFF"},
		Author:       TextStyle{Color: "#FF00FF", Size: 12, Family: FamilyMono, LetterSpacing: 2, MarginTop: 30},
		AuthorPrefix: "— ",
	},
	Stark: {
		Name:             Stark,
		Background:       "#FFFFFF",
		Padding:          40,
		Text:             TextStyle{Color: "#000000", Size: 26, Bold: true, Uppercase: true},
		Author:           TextStyle{Color: "#000000", Size: 14, MarginTop: 20},
		InnerBorder:      4,
		InnerBorderColor: "#000000",
	},
}

// Names lists the templates in picker order.
func Names() []string {
	return []string{Standard, Minimalist, Neon, Retro, Luxury, Vibrant, Cyber, Stark}
}

// Lookup returns the preset for name, ignoring case.
func Lookup(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Standard
	}

	s, ok := styles[key]
	if !ok {
		return Style{}, domain.NewValidationErrorWithValue("template", "unknown template", name)
	}

	return s, nil
}

const defaultCategory = "Default"

var categoryImages = map[string]string{
	"Motivation":    "https://images.unsplash.com/photo-1497561813398-8fcc7a37b567?q=80&w=1000&auto=format&fit=crop",
	"Love":          "https://images.unsplash.com/photo-1518568814500-bf0f8d125f46?q=80&w=1000&auto=format&fit=crop",
	"Success":       "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?q=80&w=1000&auto=format&fit=crop",
	"Wisdom":        "https://images.unsplash.com/photo-1506744038136-46273834b3fb?q=80&w=1000&auto=format&fit=crop",
	"Humor":         "https://images.unsplash.com/photo-1520607162513-77705c0f0d4a?q=80&w=1000&auto=format&fit=crop",
	"Life":          "https://images.unsplash.com/photo-1504198458649-3128b932f49e?q=80&w=1000&auto=format&fit=crop",
	"Friendship":    "https://images.unsplash.com/photo-1529156069898-49953e39b3ac?q=80&w=1000&auto=format&fit=crop",
	"Leadership":    "https://images.unsplash.com/photo-1519389950473-47ba0277781c?q=80&w=1000&auto=format&fit=crop",
	"Happiness":     "https://images.unsplash.com/photo-1472289065668-ce650ac443b2?q=80&w=1000&auto=format&fit=crop",
	"Creativity":    "https://images.unsplash.com/photo-1491245338813-c6832976196e?q=80&w=1000&auto=format&fit=crop",
	defaultCategory: "https://images.unsplash.com/photo-1470252649378-9c29740c9fa8?q=80&w=1000&auto=format&fit=crop",
}

// Tints approximate the dominant color of each category image.
var categoryTints = map[string]string{
	"Motivation":    "#C2703D",
	"Love":          "#B0506A",
	"Success":       "#4A6A8A",
	"Wisdom":        "#4F7A5A",
	"Humor":         "#D9A441",
	"Life":          "#6B8F71",
	"Friendship":    "#C98B5B",
	"Leadership":    "#3D5A80",
	"Happiness":     "#E0B040",
	"Creativity":    "#7A4E9C",
	defaultCategory: "#5C6B73",
}

// CategoryImageURL returns the background photo used by the standard
// template for category.
func CategoryImageURL(category string) string {
	if u, ok := categoryImages[domain.NormalizeCategory(category)]; ok {
		return u
	}

	return categoryImages[defaultCategory]
}

func categoryTint(category string) string {
	if t, ok := categoryTints[domain.NormalizeCategory(category)]; ok {
		return t
	}

	return categoryTints[defaultCategory]
}
