package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/navigation"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	if !m.api.SignedIn() {
		b.WriteString(m.authView())
	} else {
		if !m.router.Fullscreen() {
			b.WriteString(m.tabBar() + "\n\n")
		}

		if m.picker != nil {
			b.WriteString(m.pickerView())
		} else {
			b.WriteString(m.screenView())
		}
	}

	if m.status != "" {
		st := m.styles.Muted
		if m.statusErr {
			st = m.styles.Error
		}
		b.WriteString("\n" + st.Render(m.status))
	}

	b.WriteString("\n" + m.helpView())

	return m.styles.App.Render(b.String())
}

func (m Model) tabBar() string {
	tabs := make([]string, 0, len(navigation.Tabs()))
	for i, t := range navigation.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.router.Active() {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}

	return m.styles.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) authView() string {
	title := "Sign in to QuoteVault"
	if m.signUp {
		title = "Create your QuoteVault account"
	}

	return m.styles.Title.Render(title) + "\n" + m.auth.view(m.styles)
}

func (m Model) screenView() string {
	switch s := m.router.Current().(type) {
	case navigation.FeedScreen:
		return m.styles.Title.Render("Home") + "\n" + m.quoteList(m.feed, "Nothing here yet. Press r to refresh.")
	case navigation.SearchScreen:
		return m.searchView()
	case navigation.DailyScreen:
		if m.daily == nil {
			return m.styles.Title.Render("Quote of the Day") + "\n" + m.styles.Muted.Render("Loading…")
		}
		return m.styles.Title.Render("Quote of the Day") + "\n" + m.quoteCard(*m.daily, true)
	case navigation.SettingsScreen:
		return m.settingsView()
	case navigation.ProfileEditScreen:
		return m.styles.Title.Render("Edit profile") + "\n" + m.edit.view(m.styles)
	case navigation.PasswordScreen:
		return m.styles.Title.Render("Change password") + "\n" + m.edit.view(m.styles)
	case navigation.ProfileGridScreen:
		return m.profileView()
	case navigation.CollectionScreen:
		return m.styles.Title.Render(s.Name) + "\n" + m.quoteList(m.collection, "This collection is empty.")
	case navigation.QuoteDetailScreen:
		template := m.templateName()
		if template == "" {
			template = "default"
		}

		return m.quoteCard(s.Quote, true) + "\n" + m.styles.Muted.Render(s.Quote.Category) +
			"\n" + m.styles.Muted.Render("Image template: "+template)
	default:
		return ""
	}
}

func (m Model) quoteCard(q domain.Quote, selected bool) string {
	heart := "♡"
	if m.favs.Has(q.ID) {
		heart = m.styles.Accent.Render("♥")
	}

	body := m.styles.Quote.Render("“"+q.Content+"”") + "\n" +
		m.styles.Author.Render("— "+q.Author) + "  " + heart

	if selected {
		return m.styles.Selected.Render(body)
	}

	return m.styles.Card.Render(body)
}

func (m Model) quoteList(quotes []domain.Quote, empty string) string {
	if len(quotes) == 0 {
		return m.styles.Muted.Render(empty)
	}

	cards := make([]string, len(quotes))
	for i, q := range quotes {
		cards[i] = m.quoteCard(q, i == m.cursor())
	}

	return strings.Join(cards, "\n")
}

func (m Model) searchView() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Search") + "\n")
	b.WriteString(m.search.View() + "\n\n")

	switch {
	case m.results != nil && len(m.results.Quotes) > 0:
		b.WriteString(m.quoteList(m.results.Quotes, ""))
	case m.results != nil:
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("No quotes match %q.", m.results.Query)))
		if m.results.Suggestion != "" {
			b.WriteString("\n" + m.styles.Accent.Render("Did you mean "+m.results.Suggestion+"?"))
		}
	case len(m.history) > 0:
		b.WriteString(m.styles.Muted.Render("Recent searches") + "\n")
		for _, q := range m.history {
			b.WriteString("  " + q + "\n")
		}
	}

	return b.String()
}

func (m Model) settingsView() string {
	p := m.prefs
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	rows := []struct{ label, value string }{
		{"Theme", string(p.Theme)},
		{"Dark mode", onOff(p.DarkMode)},
		{"Font size", fmt.Sprintf("%.1fx", float64(p.FontScale))},
		{"Widget theme", string(p.WidgetTheme)},
		{"Notifications", onOff(p.PushEnabled)},
		{"Daily reminder", p.Reminder.String()},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Settings") + "\n")

	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-16s %s\n", r.label, m.styles.Accent.Render(r.value)))
	}

	return b.String()
}

func (m Model) profileView() string {
	if m.overview == nil {
		return m.styles.Title.Render("Profile") + "\n" + m.styles.Muted.Render("Loading…")
	}

	var b strings.Builder

	name := "Profile"
	if m.overview.Profile != nil && m.overview.Profile.FullName != "" {
		name = m.overview.Profile.FullName
	}
	b.WriteString(m.styles.Title.Render(name) + "\n")

	b.WriteString(m.styles.Muted.Render("Collections") + "\n")
	if len(m.overview.Collections) == 0 {
		b.WriteString(m.styles.Muted.Render("  none yet") + "\n")
	}
	for i, c := range m.overview.Collections {
		b.WriteString(m.row(c.Name, i == m.cursor()) + "\n")
	}

	b.WriteString("\n" + m.styles.Muted.Render("Favorites") + "\n")
	if len(m.overview.Favorites) == 0 {
		b.WriteString(m.styles.Muted.Render("  none yet") + "\n")
	}
	offset := len(m.overview.Collections)
	for i, q := range m.overview.Favorites {
		b.WriteString(m.row(truncate(q.Content, 60)+" — "+q.Author, offset+i == m.cursor()) + "\n")
	}

	return b.String()
}

func (m Model) pickerView() string {
	p := m.picker

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Add to collection") + "\n")
	b.WriteString(m.styles.Quote.Render(truncate(p.quote.Content, 60)) + "\n\n")

	if p.naming {
		b.WriteString(p.name.view(m.styles))
		return b.String()
	}

	if len(p.collections) == 0 {
		b.WriteString(m.styles.Muted.Render("No collections yet. Press n to create one.") + "\n")
	}
	for i, c := range p.collections {
		b.WriteString(m.row(c.Name, i == p.cursor) + "\n")
	}

	return b.String()
}

func (m Model) row(text string, selected bool) string {
	if selected {
		return m.styles.Accent.Render("› " + text)
	}

	return "  " + text
}

func (m Model) helpView() string {
	var bindings []key.Binding

	switch {
	case !m.api.SignedIn():
		bindings = []key.Binding{m.keys.Open, m.keys.NextField, m.keys.ToggleMode, m.keys.Quit}
	case m.picker != nil:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.New, m.keys.Back}
	default:
		switch m.router.Current().(type) {
		case navigation.FeedScreen, navigation.DailyScreen:
			bindings = []key.Binding{m.keys.Tab, m.keys.Open, m.keys.Favorite, m.keys.Share, m.keys.Collect, m.keys.Refresh}
		case navigation.SearchScreen:
			bindings = []key.Binding{m.keys.Focus, m.keys.Open, m.keys.Favorite, m.keys.Clear, m.keys.Tab}
		case navigation.SettingsScreen:
			bindings = []key.Binding{
				m.keys.Theme, m.keys.Dark, m.keys.FontUp, m.keys.FontDown, m.keys.Widget,
				m.keys.Push, m.keys.Reminder, m.keys.EditName, m.keys.Password, m.keys.SignOut,
			}
		case navigation.ProfileEditScreen, navigation.PasswordScreen:
			bindings = []key.Binding{m.keys.Open, m.keys.NextField, m.keys.Back}
		case navigation.ProfileGridScreen:
			bindings = []key.Binding{m.keys.Tab, m.keys.Open, m.keys.Favorite, m.keys.Refresh}
		case navigation.CollectionScreen:
			bindings = []key.Binding{m.keys.Open, m.keys.Remove, m.keys.DeleteCollection, m.keys.Back}
		case navigation.QuoteDetailScreen:
			bindings = []key.Binding{
				m.keys.Favorite, m.keys.Share, m.keys.Template, m.keys.SaveImage,
				m.keys.Collect, m.keys.Remove, m.keys.Back,
			}
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}

	return m.styles.Help.Render(strings.Join(parts, " • "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
