package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/navigation"
	"github.com/jsamuelsen/quotevault/internal/theme"
)

// Config configures the terminal client.
type Config struct {
	// Context bounds every remote call. Defaults to context.Background.
	Context context.Context

	// API is required.
	API API

	// Theme is the display configuration used until preferences load.
	Theme theme.Config

	// Link is an optional deep link opened at start.
	Link string

	// Notification is the data of a tapped reminder, opened at start.
	Notification map[string]string

	// ShareDir is where saved share images go. See NewShareFolder.
	ShareDir string

	// Location is the IANA zone reminders are scheduled in; UTC when empty.
	Location string

	// OnToken is called with the new token after sign-in and with "" after
	// sign-out, so the caller can persist the session.
	OnToken func(token string)

	Logger *slog.Logger
}

// picker is the add-to-collection overlay for one quote.
type picker struct {
	quote       domain.Quote
	collections []domain.Collection
	cursor      int
	naming      bool
	name        form
}

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	api     API
	router  *navigation.Router
	favs    *FavoriteSet
	theme   theme.Config
	styles  Styles
	keys    keyMap
	logger  *slog.Logger
	onToken func(string)

	shareDir string
	location string

	width, height int
	status        string
	statusErr     bool

	signUp bool
	auth   form

	feed       []domain.Quote
	search     textinput.Model
	results    *app.SearchResult
	history    []string
	daily      *domain.Quote
	overview   *app.Overview
	prefs      domain.Preferences
	collection []domain.Quote
	picker     *picker
	edit       form
	templates  []string
	template   int

	cursors map[navigation.ScreenKind]int
}

// New returns the model. It panics without an API.
func New(cfg Config) Model {
	if cfg.API == nil {
		panic("tui: API is required")
	}

	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	th := cfg.Theme
	if th.Name == "" {
		th = theme.Default()
	}

	onToken := cfg.OnToken
	if onToken == nil {
		onToken = func(string) {}
	}

	search := textinput.New()
	search.Placeholder = "Search quotes, authors, categories"
	search.CharLimit = 100
	search.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		ctx:      ctx,
		api:      cfg.API,
		router:   navigation.New(),
		favs:     NewFavoriteSet(),
		theme:    th,
		styles:   NewStyles(th),
		keys:     defaultKeys(),
		logger:   logger.With(slog.String("component", "tui.Model")),
		onToken:  onToken,
		shareDir: cfg.ShareDir,
		location: cfg.Location,
		auth:     signInForm(),
		search:   search,
		prefs:    domain.DefaultPreferences(),
		cursors:  make(map[navigation.ScreenKind]int),
	}

	if cfg.Link != "" {
		if target, err := navigation.ParseURL(cfg.Link); err == nil {
			_ = m.router.Open(target)
		} else {
			m.logger.Warn("ignoring deep link", slog.String("link", cfg.Link), slog.Any("error", err))
		}
	}

	if len(cfg.Notification) > 0 {
		if target, err := navigation.FromNotification(cfg.Notification); err == nil {
			_ = m.router.Open(target)
		} else {
			m.logger.Warn("ignoring notification", slog.Any("data", cfg.Notification), slog.Any("error", err))
		}
	}

	return m
}

func signInForm() form {
	return newForm(field{label: "Email"}, field{label: "Password", secret: true})
}

func signUpForm() form {
	return newForm(field{label: "Email"}, field{label: "Password", secret: true}, field{label: "Full name"})
}

// Router exposes the navigation state.
func (m Model) Router() *navigation.Router {
	return m.router
}

// Favorites exposes the local favorite set.
func (m Model) Favorites() *FavoriteSet {
	return m.favs
}

// Theme returns the display configuration in use.
func (m Model) Theme() theme.Config {
	return m.theme
}

// Init loads the session's data when already signed in.
func (m Model) Init() tea.Cmd {
	if !m.api.SignedIn() {
		return nil
	}

	return m.start()
}

// start loads what every signed-in session needs.
func (m Model) start() tea.Cmd {
	return tea.Batch(m.syncReminderCmd(), m.templatesCmd(), m.enter())
}

// enter loads what the current screen shows.
func (m Model) enter() tea.Cmd {
	switch s := m.router.Current().(type) {
	case navigation.FeedScreen:
		return m.loadFeedCmd()
	case navigation.SearchScreen:
		return m.historyCmd()
	case navigation.DailyScreen:
		return m.dailyCmd()
	case navigation.SettingsScreen:
		return m.prefsCmd()
	case navigation.ProfileGridScreen:
		return m.overviewCmd()
	case navigation.CollectionScreen:
		return m.collectionQuotesCmd(s.CollectionID)
	default:
		return nil
	}
}

func (m Model) setStatus(text string) Model {
	m.status, m.statusErr = text, false
	return m
}

func (m Model) setError(op string, err error) Model {
	m.status, m.statusErr = fmt.Sprintf("%s failed: %v", op, err), true
	return m
}

func (m Model) cursor() int {
	return m.cursors[m.router.Current().Kind()]
}

func (m Model) moveCursor(delta, n int) {
	kind := m.router.Current().Kind()
	c := m.cursors[kind] + delta

	if c >= n {
		c = n - 1
	}

	if c < 0 {
		c = 0
	}

	m.cursors[kind] = c
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case errMsg:
		return m.handleErr(msg)
	case statusMsg:
		return m.setStatus(string(msg)), nil
	case savedMsg:
		m.router.Back()
		return m.setStatus(string(msg)), m.enter()
	case signedInMsg:
		m.onToken(msg.session.AccessToken)
		m.auth = signInForm()
		m = m.setStatus("Signed in as " + msg.session.User.Email)
		return m, m.start()
	case signedOutMsg:
		m.onToken("")
		return m.reset().setStatus("Signed out"), nil
	case feedMsg:
		m.feed = msg.feed.Quotes
		m.favs.Reconcile(msg.feed.FavoriteIDs)
		return m, nil
	case searchMsg:
		m.results = msg.result
		m.cursors[navigation.KindSearch] = 0
		return m, m.historyCmd()
	case historyMsg:
		m.history = msg.queries
		return m, nil
	case dailyMsg:
		m.daily = msg.quote
		return m, nil
	case overviewMsg:
		m.overview = msg.overview
		m.favs.Reconcile(favoriteIDs(msg.overview.Favorites))
		return m, nil
	case collectionQuotesMsg:
		if s, ok := m.router.Current().(navigation.CollectionScreen); ok && s.CollectionID == msg.collectionID {
			m.collection = msg.quotes
		}
		return m, nil
	case pickerMsg:
		if m.picker != nil {
			m.picker.collections = msg.collections
		}
		return m, nil
	case favoriteSettledMsg:
		return m.handleFavoriteSettled(msg)
	case favoritesMsg:
		m.favs.Reconcile(msg.ids)
		return m, nil
	case prefsMsg:
		m.prefs = msg.prefs
		m.theme = theme.FromPreferences(msg.prefs)
		m.styles = NewStyles(m.theme)
		return m, nil
	case templatesMsg:
		m.templates = msg.names
		m.template = 0
		return m, nil
	case refreshMsg:
		return m, m.enter()
	}

	return m, nil
}

func (m Model) handleErr(msg errMsg) (tea.Model, tea.Cmd) {
	m.logger.Warn("remote call failed", slog.String("op", msg.op), slog.Any("error", msg.err))

	if domain.IsUnauthorized(msg.err) && m.api.SignedIn() {
		m.api.SetToken("")
		m.onToken("")
		return m.reset().setStatus("Session expired, please sign in again"), nil
	}

	return m.setError(msg.op, msg.err), nil
}

func (m Model) handleFavoriteSettled(msg favoriteSettledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.favs.Rollback(msg.quoteID, msg.on)
		return m.setError("update favorite", msg.err), m.reconcileFavoritesCmd()
	}

	if _, ok := m.router.Current().(navigation.ProfileGridScreen); ok {
		return m, m.overviewCmd()
	}

	return m, nil
}

// reset clears everything tied to the signed-out session.
func (m Model) reset() Model {
	m.router = navigation.New()
	m.favs.Reconcile(nil)
	m.auth = signInForm()
	m.signUp = false
	m.feed, m.results, m.history, m.daily, m.overview, m.collection, m.picker = nil, nil, nil, nil, nil, nil, nil
	m.templates, m.template = nil, 0
	m.cursors = make(map[navigation.ScreenKind]int)

	return m
}

func favoriteIDs(quotes []domain.Quote) []string {
	ids := make([]string, 0, len(quotes))
	for _, q := range quotes {
		ids = append(ids, q.ID)
	}

	return ids
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if !m.api.SignedIn() {
		return m.updateAuth(msg)
	}

	if m.picker != nil {
		return m.updatePicker(msg)
	}

	switch s := m.router.Current().(type) {
	case navigation.ProfileEditScreen, navigation.PasswordScreen:
		return m.updateEdit(msg, s)
	case navigation.SearchScreen:
		if m.search.Focused() {
			return m.updateSearchInput(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if !m.router.Back() {
			return m, tea.Quit
		}
		return m, m.enter()
	case key.Matches(msg, m.keys.Tab):
		tab := navigation.Tab(msg.String()[0] - '1')
		if err := m.router.SwitchTab(tab); err != nil {
			return m, nil
		}
		return m, m.enter()
	}

	switch s := m.router.Current().(type) {
	case navigation.FeedScreen:
		return m.updateQuoteList(msg, m.feed, "")
	case navigation.SearchScreen:
		return m.updateSearch(msg)
	case navigation.DailyScreen:
		return m.updateDaily(msg)
	case navigation.SettingsScreen:
		return m.updateSettings(msg)
	case navigation.ProfileGridScreen:
		return m.updateProfileGrid(msg)
	case navigation.CollectionScreen:
		return m.updateCollection(msg, s)
	case navigation.QuoteDetailScreen:
		return m.updateDetail(msg, s)
	}

	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleMode):
		m.signUp = !m.signUp
		if m.signUp {
			m.auth = signUpForm()
		} else {
			m.auth = signInForm()
		}
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.auth = m.auth.next()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		v := m.auth.values()
		if v[0] == "" || v[1] == "" {
			m.status, m.statusErr = "Email and password are required", true
			return m, nil
		}

		m = m.setStatus("Signing in…")
		if m.signUp {
			return m, m.signUpCmd(v[0], v[1], v[2])
		}
		return m, m.signInCmd(v[0], v[1])
	}

	var cmd tea.Cmd
	m.auth, cmd = m.auth.update(msg)

	return m, cmd
}

// selectedQuote returns the quote under the cursor, if any.
func (m Model) selectedQuote(quotes []domain.Quote) (domain.Quote, bool) {
	c := m.cursor()
	if c < 0 || c >= len(quotes) {
		return domain.Quote{}, false
	}

	return quotes[c], true
}

// updateQuoteList handles the keys shared by every quote list.
func (m Model) updateQuoteList(msg tea.KeyMsg, quotes []domain.Quote, sourceCollectionID string) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(quotes))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(quotes))
	case key.Matches(msg, m.keys.Refresh):
		return m, m.enter()
	case key.Matches(msg, m.keys.Open):
		if q, ok := m.selectedQuote(quotes); ok {
			m.router.ShowQuote(q, sourceCollectionID)
		}
	case key.Matches(msg, m.keys.Favorite):
		if q, ok := m.selectedQuote(quotes); ok {
			return m, m.toggleFavorite(q.ID)
		}
	case key.Matches(msg, m.keys.Share):
		if q, ok := m.selectedQuote(quotes); ok {
			return m, m.shareCmd(q.ID)
		}
	case key.Matches(msg, m.keys.Collect):
		if q, ok := m.selectedQuote(quotes); ok {
			return m.openPicker(q)
		}
	}

	return m, nil
}

// toggleFavorite shows the new state at once and writes it in the
// background; a failed write is rolled back when it settles.
func (m Model) toggleFavorite(quoteID string) tea.Cmd {
	on := m.favs.Flip(quoteID)
	return m.writeFavoriteCmd(quoteID, on)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		return m, m.clearHistoryCmd()
	}

	var quotes []domain.Quote
	if m.results != nil {
		quotes = m.results.Quotes
	}

	return m.updateQuoteList(msg, quotes, "")
}

func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		return m, m.searchCmd(m.search.Value())
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m Model) updateDaily(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.daily == nil {
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.dailyCmd()
		}
		return m, nil
	}

	return m.updateQuoteList(msg, []domain.Quote{*m.daily}, "")
}

func (m Model) updateDetail(msg tea.KeyMsg, s navigation.QuoteDetailScreen) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavorite(s.Quote.ID)
	case key.Matches(msg, m.keys.Share):
		return m, m.shareCmd(s.Quote.ID)
	case key.Matches(msg, m.keys.Template):
		if len(m.templates) == 0 {
			return m, m.templatesCmd()
		}
		m.template = (m.template + 1) % len(m.templates)
		return m.setStatus("Template: " + m.templateName()), nil
	case key.Matches(msg, m.keys.SaveImage):
		return m, m.saveImageCmd(s.Quote.ID, m.templateName())
	case key.Matches(msg, m.keys.Collect):
		return m.openPicker(s.Quote)
	case key.Matches(msg, m.keys.Remove):
		if s.SourceCollectionID == "" {
			return m, nil
		}
		m.router.Back()
		return m, m.removeFromCollectionCmd(s.SourceCollectionID, s.Quote.ID)
	}

	return m, nil
}

func (m Model) updateCollection(msg tea.KeyMsg, s navigation.CollectionScreen) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Remove):
		if q, ok := m.selectedQuote(m.collection); ok {
			return m, m.removeFromCollectionCmd(s.CollectionID, q.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.DeleteCollection):
		m.router.Back()
		return m, m.deleteCollectionCmd(s.CollectionID)
	}

	return m.updateQuoteList(msg, m.collection, s.CollectionID)
}

func (m Model) updateProfileGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overview == nil {
		return m, nil
	}

	cols, favs := m.overview.Collections, m.overview.Favorites
	n := len(cols) + len(favs)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, n)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, n)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.overviewCmd()
	case key.Matches(msg, m.keys.Open):
		c := m.cursor()
		if c < len(cols) {
			m.collection = nil
			m.router.ShowCollection(cols[c].ID, cols[c].Name)
			return m, m.enter()
		}

		if c-len(cols) < len(favs) {
			m.router.ShowQuote(favs[c-len(cols)], "")
		}
	case key.Matches(msg, m.keys.Favorite):
		if c := m.cursor() - len(cols); c >= 0 && c < len(favs) {
			return m, m.toggleFavorite(favs[c].ID)
		}
	}

	return m, nil
}

func (m Model) openPicker(q domain.Quote) (tea.Model, tea.Cmd) {
	m.picker = &picker{quote: q}
	return m, m.pickerCmd()
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker

	if p.naming {
		switch msg.Type {
		case tea.KeyEsc:
			p.naming = false
			return m, nil
		case tea.KeyEnter:
			name := p.name.values()[0]
			if name == "" {
				return m, nil
			}
			m.picker = nil
			return m, m.createWithQuoteCmd(name, p.quote.ID)
		}

		var cmd tea.Cmd
		p.name, cmd = p.name.update(msg)

		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.picker = nil
	case key.Matches(msg, m.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if p.cursor < len(p.collections)-1 {
			p.cursor++
		}
	case key.Matches(msg, m.keys.New):
		p.naming = true
		p.name = newForm(field{label: "Collection name"})
	case key.Matches(msg, m.keys.Open):
		if p.cursor < len(p.collections) {
			m.picker = nil
			return m, m.addToCollectionCmd(p.collections[p.cursor], p.quote.ID)
		}
	}

	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prefs
	var u app.PreferencesUpdate

	switch {
	case key.Matches(msg, m.keys.Theme):
		next := nextTheme(p.Theme)
		u.Theme = &next
	case key.Matches(msg, m.keys.Dark):
		dark := !p.DarkMode
		u.DarkMode = &dark
	case key.Matches(msg, m.keys.FontUp), key.Matches(msg, m.keys.FontDown):
		scale := stepFont(p.FontScale, key.Matches(msg, m.keys.FontUp))
		u.FontScale = &scale
	case key.Matches(msg, m.keys.Widget):
		next := nextWidgetTheme(p.WidgetTheme)
		u.WidgetTheme = &next
	case key.Matches(msg, m.keys.Push):
		if p.PushEnabled {
			return m, m.cancelReminderCmd()
		}
		return m, m.scheduleReminderCmd(p.Reminder)
	case key.Matches(msg, m.keys.Reminder):
		r := domain.Reminder{Hour: (p.Reminder.Hour + 1) % 24, Minute: p.Reminder.Minute}
		if p.PushEnabled {
			return m, m.scheduleReminderCmd(r)
		}
		u.ReminderHour = &r.Hour
	case key.Matches(msg, m.keys.EditName):
		name := ""
		if m.overview != nil && m.overview.Profile != nil {
			name = m.overview.Profile.FullName
		}
		m.edit = newForm(field{label: "Full name", value: name})
		_ = m.router.ShowSettings(navigation.ProfileEditScreen{})
		return m, nil
	case key.Matches(msg, m.keys.Password):
		m.edit = newForm(field{label: "New password", secret: true}, field{label: "Confirm password", secret: true})
		_ = m.router.ShowSettings(navigation.PasswordScreen{})
		return m, nil
	case key.Matches(msg, m.keys.SignOut):
		return m, m.signOutCmd()
	default:
		return m, nil
	}

	return m, m.updatePrefsCmd(u)
}

func (m Model) updateEdit(msg tea.KeyMsg, s navigation.Screen) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.router.Back()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.edit = m.edit.next()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		v := m.edit.values()
		if _, ok := s.(navigation.PasswordScreen); ok {
			return m, m.changePasswordCmd(v[0], v[1])
		}
		return m, m.updateProfileCmd(v[0])
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.update(msg)

	return m, cmd
}

// templateName is the selected share template, "" for the server default.
func (m Model) templateName() string {
	if len(m.templates) == 0 {
		return ""
	}

	return m.templates[m.template]
}

func nextTheme(t domain.ThemeName) domain.ThemeName {
	return cycle(domain.ThemeNames, t)
}

func nextWidgetTheme(t domain.WidgetTheme) domain.WidgetTheme {
	return cycle(domain.WidgetThemes, t)
}

// cycle returns the value after cur, wrapping; an unknown cur yields the first.
func cycle[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

// stepFont moves one size up or down, clamped at both ends.
func stepFont(s domain.FontScale, up bool) domain.FontScale {
	i := slices.Index(domain.FontScales, s)
	if i < 0 {
		i = slices.Index(domain.FontScales, domain.FontMedium)
	}

	if up && i < len(domain.FontScales)-1 {
		i++
	} else if !up && i > 0 {
		i--
	}

	return domain.FontScales[i]
}
