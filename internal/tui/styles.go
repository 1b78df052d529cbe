package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quotevault/internal/theme"
)

// Styles are the lipgloss styles for one theme.Config.
type Styles struct {
	App         lipgloss.Style
	Header      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Title       lipgloss.Style
	Card        lipgloss.Style
	Selected    lipgloss.Style
	Quote       lipgloss.Style
	Author      lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles builds styles from cfg. Larger font scales add padding, since a
// terminal cannot change its glyph size.
func NewStyles(cfg theme.Config) Styles {
	p := cfg.Palette()
	pad := 0
	if cfg.Scale > 1 {
		pad = 1
	}

	text := lipgloss.Color(p.Text)
	secondary := lipgloss.Color(p.TextSecondary)
	primary := lipgloss.Color(p.Primary)
	border := lipgloss.Color(p.Border)

	return Styles{
		App:         lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		Header:      lipgloss.NewStyle().Background(lipgloss.Color(p.TabBar)).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.TabIconActive)).Bold(true).Underline(true).Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color(p.TabIconInactive)).Padding(0, 1),
		Title:       lipgloss.NewStyle().Foreground(primary).Bold(true).MarginBottom(1),
		Card: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Card)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(pad, 1+pad),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(pad, 1+pad),
		Quote:  lipgloss.NewStyle().Foreground(text).Italic(true),
		Author: lipgloss.NewStyle().Foreground(secondary),
		Muted:  lipgloss.NewStyle().Foreground(secondary),
		Accent: lipgloss.NewStyle().Foreground(primary).Bold(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(border),
	}
}
