// Package tui предоставляет reusable KeyMap для TUI компонентов.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap определяет клавиатурные сокращения для TUI.
type KeyMap struct {
	Quit        key.Binding
	Submit      key.Binding
	NewAnalysis key.Binding // Только в фазе result и только когда не busy
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ToggleHelp  key.Binding
}

// ShortHelp реализует help.KeyMap интерфейс.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.Submit,
		km.NewAnalysis,
		km.ToggleHelp,
		km.Quit,
	}
}

// FullHelp реализует help.KeyMap интерфейс.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.Submit,
			km.NewAnalysis,
		},
		{
			km.ScrollUp,
			km.ScrollDown,
			km.ToggleHelp,
		},
		{
			km.Quit,
		},
	}
}

// DefaultKeyMap возвращает дефолтный KeyMap.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("Ctrl+C", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "analyze"),
		),
		NewAnalysis: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "new analysis"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("Ctrl+U", "page up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("Ctrl+D", "page down"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("Ctrl+H", "toggle help"),
		),
	}
}
