// Package tui is the QuoteVault terminal client. A bubbletea model drives
// the navigation router; remote calls run as commands and their results are
// applied on the update loop.
package tui

import (
	"context"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/notify"
)

// API is the part of the QuoteVault API the client uses.
// *acl.VaultClient implements it.
type API interface {
	FavoriteWriter

	SignedIn() bool
	SetToken(token string)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (*domain.Session, error)
	SignOut(ctx context.Context) error
	ChangePassword(ctx context.Context, password, confirm string) error

	Feed(ctx context.Context) (*app.Feed, error)
	Search(ctx context.Context, query string) (*app.SearchResult, error)
	History(ctx context.Context) ([]string, error)
	ClearHistory(ctx context.Context) error
	Daily(ctx context.Context) (*domain.Quote, error)
	ShareText(ctx context.Context, quoteID string) (string, error)
	Templates(ctx context.Context) ([]app.TemplateInfo, error)
	SharePNG(ctx context.Context, quoteID, template string) ([]byte, error)
	FavoriteIDs(ctx context.Context) ([]string, error)

	Collections(ctx context.Context, order domain.CollectionOrder) ([]domain.Collection, error)
	CreateCollectionWithQuote(ctx context.Context, name, quoteID string) (*domain.Collection, error)
	CollectionQuotes(ctx context.Context, collectionID string) ([]domain.Quote, error)
	AddToCollection(ctx context.Context, collectionID, quoteID string) error
	RemoveFromCollection(ctx context.Context, collectionID, quoteID string) error
	DeleteCollection(ctx context.Context, collectionID string) error

	Overview(ctx context.Context) (*app.Overview, error)
	UpdateProfile(ctx context.Context, fullName string, avatar []byte) (*domain.Profile, error)

	Preferences(ctx context.Context) (domain.Preferences, error)
	UpdatePreferences(ctx context.Context, u app.PreferencesUpdate) (domain.Preferences, error)

	Reminder(ctx context.Context) (*notify.Schedule, error)
	ScheduleReminder(ctx context.Context, r domain.Reminder, location string) (*notify.Schedule, error)
	CancelReminder(ctx context.Context) error
}
