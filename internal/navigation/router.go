// Package navigation implements the client's view routing: a bottom tab bar
// where every tab owns its own stack of screens.
package navigation

import (
	"errors"
	"fmt"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// Tab is a bottom-bar destination.
type Tab int

const (
	TabHome Tab = iota
	TabSearch
	TabDaily
	TabSettings
	TabProfile

	tabCount
)

var tabNames = [tabCount]string{"Home", "Search", "Daily", "Settings", "Profile"}

// Tabs lists every tab in bar order.
func Tabs() []Tab {
	return []Tab{TabHome, TabSearch, TabDaily, TabSettings, TabProfile}
}

func (t Tab) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tab(%d)", int(t))
	}

	return tabNames[t]
}

// Valid reports whether t names a real tab.
func (t Tab) Valid() bool {
	return t >= 0 && t < tabCount
}

// Root returns the screen at the bottom of the tab's stack.
func (t Tab) Root() Screen {
	switch t {
	case TabSearch:
		return SearchScreen{}
	case TabDaily:
		return DailyScreen{}
	case TabSettings:
		return SettingsScreen{}
	case TabProfile:
		return ProfileGridScreen{}
	default:
		return FeedScreen{}
	}
}

var (
	// ErrInvalidTab is returned for a tab index outside the bar.
	ErrInvalidTab = errors.New("invalid tab")

	// ErrInvalidScreen is returned when a screen is pushed where it cannot live.
	ErrInvalidScreen = errors.New("invalid screen for destination")
)

// Router owns the active tab and one screen stack per tab.
// It is not safe for concurrent use; the terminal client drives it from its
// update loop.
type Router struct {
	active Tab
	stacks [tabCount]*Stack[Screen]
}

// New returns a router on Home with every stack at its root.
func New() *Router {
	r := &Router{active: TabHome}
	for _, t := range Tabs() {
		r.stacks[t] = NewStack(t.Root())
	}

	return r
}

// Active returns the selected tab.
func (r *Router) Active() Tab {
	return r.active
}

// Current returns the screen on top of the active stack.
func (r *Router) Current() Screen {
	return r.stacks[r.active].Top()
}

// Depth returns how many screens sit above the tab's root.
func (r *Router) Depth(t Tab) int {
	if !t.Valid() {
		return 0
	}

	return r.stacks[t].Depth()
}

// Fullscreen reports whether the tab bar should be hidden, which is the case
// whenever any stack is above its root.
func (r *Router) Fullscreen() bool {
	for _, s := range r.stacks {
		if s.Depth() > 0 {
			return true
		}
	}

	return false
}

// SwitchTab selects t and resets every other tab's stack.
func (r *Router) SwitchTab(t Tab) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTab, int(t))
	}

	r.active = t
	for _, other := range Tabs() {
		if other != t {
			r.stacks[other].Reset()
		}
	}

	return nil
}

// ShowQuote opens a quote on the active tab. sourceCollectionID is empty
// unless the quote was opened from a collection.
func (r *Router) ShowQuote(q domain.Quote, sourceCollectionID string) {
	r.stacks[r.active].Push(QuoteDetailScreen{Quote: q, SourceCollectionID: sourceCollectionID})
}

// ShowCollection opens a collection. Collections live on the Profile tab,
// so the router switches there first when needed.
func (r *Router) ShowCollection(id, name string) {
	if r.active != TabProfile {
		_ = r.SwitchTab(TabProfile)
	}

	r.stacks[TabProfile].Push(CollectionScreen{CollectionID: id, Name: name})
}

// ShowSettings opens a settings sub-screen (profile edit or password).
func (r *Router) ShowSettings(s Screen) error {
	switch s.(type) {
	case ProfileEditScreen, PasswordScreen:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidScreen, s.Kind())
	}

	if r.active != TabSettings {
		_ = r.SwitchTab(TabSettings)
	}

	r.stacks[TabSettings].Push(s)

	return nil
}

// Back handles the system back action. It pops one level from the active
// stack, or returns to Home from another tab's root. At Home's root it does
// nothing and returns false so the host can exit.
func (r *Router) Back() bool {
	if r.stacks[r.active].Pop() {
		return true
	}

	if r.active != TabHome {
		_ = r.SwitchTab(TabHome)
		return true
	}

	return false
}

// Open applies a resolved deep link.
func (r *Router) Open(target Target) error {
	return r.SwitchTab(target.Tab)
}
