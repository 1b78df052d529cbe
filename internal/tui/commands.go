package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// callTimeout bounds one remote call; the HTTP client retries inside it.
const callTimeout = 15 * time.Second

type (
	errMsg struct {
		op  string
		err error
	}

	statusMsg string

	// savedMsg reports a completed form; the form screen closes.
	savedMsg string

	signedInMsg struct{ session *domain.Session }

	signedOutMsg struct{}

	feedMsg struct{ feed *app.Feed }

	searchMsg struct{ result *app.SearchResult }

	historyMsg struct{ queries []string }

	dailyMsg struct{ quote *domain.Quote }

	overviewMsg struct{ overview *app.Overview }

	collectionQuotesMsg struct {
		collectionID string
		quotes       []domain.Quote
	}

	pickerMsg struct{ collections []domain.Collection }

	favoriteSettledMsg struct {
		quoteID string
		on      bool
		err     error
	}

	favoritesMsg struct{ ids []string }

	prefsMsg struct{ prefs domain.Preferences }

	templatesMsg struct{ names []string }

	// refreshMsg asks for the active collection and overview to reload
	// after a change to either.
	refreshMsg struct{}
)

// call runs fn with a bounded context and turns a failure into errMsg.
func (m Model) call(op string, fn func(ctx context.Context) (tea.Msg, error)) tea.Cmd {
	base := m.ctx

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, callTimeout)
		defer cancel()

		msg, err := fn(ctx)
		if err != nil {
			return errMsg{op: op, err: err}
		}

		return msg
	}
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	return m.call("sign in", func(ctx context.Context) (tea.Msg, error) {
		s, err := m.api.SignIn(ctx, email, password)
		return signedInMsg{session: s}, err
	})
}

func (m Model) signUpCmd(email, password, fullName string) tea.Cmd {
	return m.call("sign up", func(ctx context.Context) (tea.Msg, error) {
		s, err := m.api.SignUp(ctx, email, password, fullName)
		return signedInMsg{session: s}, err
	})
}

func (m Model) signOutCmd() tea.Cmd {
	base, api := m.ctx, m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, callTimeout)
		defer cancel()

		// The token is dropped locally either way.
		_ = api.SignOut(ctx)

		return signedOutMsg{}
	}
}

func (m Model) loadFeedCmd() tea.Cmd {
	return m.call("load feed", func(ctx context.Context) (tea.Msg, error) {
		f, err := m.api.Feed(ctx)
		return feedMsg{feed: f}, err
	})
}

func (m Model) searchCmd(query string) tea.Cmd {
	return m.call("search", func(ctx context.Context) (tea.Msg, error) {
		res, err := m.api.Search(ctx, query)
		return searchMsg{result: res}, err
	})
}

func (m Model) historyCmd() tea.Cmd {
	return m.call("load history", func(ctx context.Context) (tea.Msg, error) {
		q, err := m.api.History(ctx)
		return historyMsg{queries: q}, err
	})
}

func (m Model) clearHistoryCmd() tea.Cmd {
	return m.call("clear history", func(ctx context.Context) (tea.Msg, error) {
		return historyMsg{queries: nil}, m.api.ClearHistory(ctx)
	})
}

func (m Model) dailyCmd() tea.Cmd {
	return m.call("load daily quote", func(ctx context.Context) (tea.Msg, error) {
		q, err := m.api.Daily(ctx)
		return dailyMsg{quote: q}, err
	})
}

func (m Model) overviewCmd() tea.Cmd {
	return m.call("load profile", func(ctx context.Context) (tea.Msg, error) {
		o, err := m.api.Overview(ctx)
		return overviewMsg{overview: o}, err
	})
}

func (m Model) collectionQuotesCmd(id string) tea.Cmd {
	return m.call("load collection", func(ctx context.Context) (tea.Msg, error) {
		q, err := m.api.CollectionQuotes(ctx, id)
		return collectionQuotesMsg{collectionID: id, quotes: q}, err
	})
}

func (m Model) pickerCmd() tea.Cmd {
	return m.call("load collections", func(ctx context.Context) (tea.Msg, error) {
		cols, err := m.api.Collections(ctx, domain.CollectionOrderName)
		return pickerMsg{collections: cols}, err
	})
}

func (m Model) addToCollectionCmd(col domain.Collection, quoteID string) tea.Cmd {
	return m.call("add to collection", func(ctx context.Context) (tea.Msg, error) {
		if err := m.api.AddToCollection(ctx, col.ID, quoteID); err != nil {
			return nil, err
		}

		return statusMsg("Added to " + col.Name), nil
	})
}

func (m Model) createWithQuoteCmd(name, quoteID string) tea.Cmd {
	return m.call("create collection", func(ctx context.Context) (tea.Msg, error) {
		col, err := m.api.CreateCollectionWithQuote(ctx, name, quoteID)
		if err != nil {
			return nil, err
		}

		return statusMsg("Created " + col.Name), nil
	})
}

func (m Model) removeFromCollectionCmd(collectionID, quoteID string) tea.Cmd {
	return m.call("remove from collection", func(ctx context.Context) (tea.Msg, error) {
		return refreshMsg{}, m.api.RemoveFromCollection(ctx, collectionID, quoteID)
	})
}

func (m Model) deleteCollectionCmd(collectionID string) tea.Cmd {
	return m.call("delete collection", func(ctx context.Context) (tea.Msg, error) {
		return refreshMsg{}, m.api.DeleteCollection(ctx, collectionID)
	})
}

func (m Model) shareCmd(quoteID string) tea.Cmd {
	return m.call("share", func(ctx context.Context) (tea.Msg, error) {
		text, err := m.api.ShareText(ctx, quoteID)
		return statusMsg(text), err
	})
}

func (m Model) templatesCmd() tea.Cmd {
	return m.call("load templates", func(ctx context.Context) (tea.Msg, error) {
		list, err := m.api.Templates(ctx)
		if err != nil {
			return nil, err
		}

		names := make([]string, len(list))
		for i, t := range list {
			names[i] = t.Name
		}

		return templatesMsg{names: names}, nil
	})
}

// saveImageCmd renders the quote on the server and writes the PNG to the
// share folder. Rendering and writing fail with different messages.
func (m Model) saveImageCmd(quoteID, template string) tea.Cmd {
	base, api, dir := m.ctx, m.api, m.shareDir

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, callTimeout)
		defer cancel()

		png, err := api.SharePNG(ctx, quoteID, template)
		if err != nil {
			return errMsg{op: "capture image", err: err}
		}

		folder, err := NewShareFolder(dir)
		if err != nil {
			return errMsg{op: "save image", err: err}
		}

		if template == "" {
			template = "default"
		}

		path, err := folder.Save(quoteID, template, png)
		if err != nil {
			return errMsg{op: "save image", err: err}
		}

		return statusMsg("Image saved to " + path)
	}
}

// writeFavoriteCmd persists a state already applied to the local set.
func (m Model) writeFavoriteCmd(quoteID string, on bool) tea.Cmd {
	base, api := m.ctx, m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, callTimeout)
		defer cancel()

		return favoriteSettledMsg{quoteID: quoteID, on: on, err: api.SetFavorite(ctx, quoteID, on)}
	}
}

func (m Model) reconcileFavoritesCmd() tea.Cmd {
	return m.call("load favorites", func(ctx context.Context) (tea.Msg, error) {
		ids, err := m.api.FavoriteIDs(ctx)
		return favoritesMsg{ids: ids}, err
	})
}

func (m Model) prefsCmd() tea.Cmd {
	return m.call("load preferences", func(ctx context.Context) (tea.Msg, error) {
		p, err := m.api.Preferences(ctx)
		return prefsMsg{prefs: p}, err
	})
}

// syncReminderCmd loads the preferences and, when notifications are on but
// no reminder is scheduled yet, schedules one at the preferred time. A
// failed schedule is logged; the preferences still load.
func (m Model) syncReminderCmd() tea.Cmd {
	location, logger := m.location, m.logger

	return m.call("load preferences", func(ctx context.Context) (tea.Msg, error) {
		p, err := m.api.Preferences(ctx)
		if err != nil {
			return nil, err
		}

		if !p.PushEnabled {
			return prefsMsg{prefs: p}, nil
		}

		_, err = m.api.Reminder(ctx)
		if domain.IsNotFound(err) {
			_, err = m.api.ScheduleReminder(ctx, p.Reminder, location)
		}

		if err != nil {
			logger.Warn("reminder not scheduled", slog.Any("error", err))
		}

		return prefsMsg{prefs: p}, nil
	})
}

// scheduleReminderCmd sets the reminder, which also turns notifications on,
// then reloads the preferences.
func (m Model) scheduleReminderCmd(r domain.Reminder) tea.Cmd {
	location := m.location

	return m.call("schedule reminder", func(ctx context.Context) (tea.Msg, error) {
		if _, err := m.api.ScheduleReminder(ctx, r, location); err != nil {
			return nil, err
		}

		p, err := m.api.Preferences(ctx)
		return prefsMsg{prefs: p}, err
	})
}

// cancelReminderCmd removes the reminder, which also turns notifications
// off, then reloads the preferences.
func (m Model) cancelReminderCmd() tea.Cmd {
	return m.call("cancel reminder", func(ctx context.Context) (tea.Msg, error) {
		if err := m.api.CancelReminder(ctx); err != nil {
			return nil, err
		}

		p, err := m.api.Preferences(ctx)
		return prefsMsg{prefs: p}, err
	})
}

func (m Model) updatePrefsCmd(u app.PreferencesUpdate) tea.Cmd {
	return m.call("save preferences", func(ctx context.Context) (tea.Msg, error) {
		p, err := m.api.UpdatePreferences(ctx, u)
		return prefsMsg{prefs: p}, err
	})
}

func (m Model) updateProfileCmd(fullName string) tea.Cmd {
	return m.call("save profile", func(ctx context.Context) (tea.Msg, error) {
		if _, err := m.api.UpdateProfile(ctx, fullName, nil); err != nil {
			return nil, err
		}

		return savedMsg("Profile saved"), nil
	})
}

func (m Model) changePasswordCmd(password, confirm string) tea.Cmd {
	return m.call("change password", func(ctx context.Context) (tea.Msg, error) {
		if err := m.api.ChangePassword(ctx, password, confirm); err != nil {
			return nil, err
		}

		return savedMsg("Password updated"), nil
	})
}
