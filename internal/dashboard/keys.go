package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the dashboard key bindings.
type KeyMap struct {
	Quit     key.Binding
	Next     key.Binding
	Previous key.Binding
}

// DefaultKeyMap returns the standard bindings. ctrl+c quits as well as q
// because the terminal runs in raw mode and never raises SIGINT.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next board"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous board"),
		),
	}
}
