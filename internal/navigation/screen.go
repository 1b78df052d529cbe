package navigation

import "github.com/jsamuelsen/quotevault/internal/domain"

// ScreenKind identifies which Screen case a value holds.
type ScreenKind string

const (
	KindFeed        ScreenKind = "feed"
	KindSearch      ScreenKind = "search"
	KindDaily       ScreenKind = "daily"
	KindSettings    ScreenKind = "settings"
	KindProfileEdit ScreenKind = "profile-edit"
	KindPassword    ScreenKind = "password"
	KindProfileGrid ScreenKind = "profile-grid"
	KindCollection  ScreenKind = "collection"
	KindQuoteDetail ScreenKind = "quote-detail"
)

// Screen is a closed set of views. Each case carries only the parameters
// that view needs; switch on the concrete type to read them.
type Screen interface {
	Kind() ScreenKind
	screen()
}

type (
	// FeedScreen is the Home root.
	FeedScreen struct{}

	// SearchScreen is the Search root.
	SearchScreen struct{}

	// DailyScreen is the Daily root.
	DailyScreen struct{}

	// SettingsScreen is the Settings root.
	SettingsScreen struct{}

	// ProfileEditScreen edits name and avatar.
	ProfileEditScreen struct{}

	// PasswordScreen changes the password.
	PasswordScreen struct{}

	// ProfileGridScreen is the Profile root listing favorites and collections.
	ProfileGridScreen struct{}

	// CollectionScreen lists the quotes of one collection.
	CollectionScreen struct {
		CollectionID string
		Name         string
	}

	// QuoteDetailScreen shows one quote. SourceCollectionID is set when the
	// quote was opened from a collection, enabling "remove from collection".
	QuoteDetailScreen struct {
		Quote              domain.Quote
		SourceCollectionID string
	}
)

func (FeedScreen) Kind() ScreenKind        { return KindFeed }
func (SearchScreen) Kind() ScreenKind      { return KindSearch }
func (DailyScreen) Kind() ScreenKind       { return KindDaily }
func (SettingsScreen) Kind() ScreenKind    { return KindSettings }
func (ProfileEditScreen) Kind() ScreenKind { return KindProfileEdit }
func (PasswordScreen) Kind() ScreenKind    { return KindPassword }
func (ProfileGridScreen) Kind() ScreenKind { return KindProfileGrid }
func (CollectionScreen) Kind() ScreenKind  { return KindCollection }
func (QuoteDetailScreen) Kind() ScreenKind { return KindQuoteDetail }

func (FeedScreen) screen()        {}
func (SearchScreen) screen()      {}
func (DailyScreen) screen()       {}
func (SettingsScreen) screen()    {}
func (ProfileEditScreen) screen() {}
func (PasswordScreen) screen()    {}
func (ProfileGridScreen) screen() {}
func (CollectionScreen) screen()  {}
func (QuoteDetailScreen) screen() {}
