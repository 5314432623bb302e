// Package keymap defines keybindings for the annotation form.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings of the form.
type KeyMap struct {
	// Next moves to the next field, submitting on the last one.
	Next key.Binding

	// Down moves to the next field without submitting.
	Down key.Binding

	// Up moves to the previous field.
	Up key.Binding

	// Cancel aborts the annotation session.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next"),
		),
		Down: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "up"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "abort"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Cancel}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
