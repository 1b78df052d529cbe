package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit             key.Binding
	Back             key.Binding
	Tab              key.Binding
	Up               key.Binding
	Down             key.Binding
	Open             key.Binding
	Favorite         key.Binding
	Share            key.Binding
	Collect          key.Binding
	New              key.Binding
	Remove           key.Binding
	DeleteCollection key.Binding
	Refresh          key.Binding
	Clear            key.Binding
	Focus            key.Binding
	Theme            key.Binding
	Dark             key.Binding
	FontUp           key.Binding
	FontDown         key.Binding
	Widget           key.Binding
	Push             key.Binding
	Reminder         key.Binding
	EditName         key.Binding
	Password         key.Binding
	SignOut          key.Binding
	ToggleMode       key.Binding
	NextField        key.Binding
	Template         key.Binding
	SaveImage        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:             key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:             key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Tab:              key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "tabs")),
		Up:               key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:             key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:             key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Favorite:         key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Share:            key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		Collect:          key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add to collection")),
		New:              key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new collection")),
		Remove:           key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		DeleteCollection: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete collection")),
		Refresh:          key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Clear:            key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear history")),
		Focus:            key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Theme:            key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Dark:             key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
		FontUp:           key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "larger text")),
		FontDown:         key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller text")),
		Widget:           key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "widget theme")),
		Push:             key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "notifications")),
		Reminder:         key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "reminder +1h")),
		EditName:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit profile")),
		Password:         key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "password")),
		SignOut:          key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
		ToggleMode:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "sign up / sign in")),
		NextField:        key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Template:         key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next template")),
		SaveImage:        key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save image")),
	}
}
