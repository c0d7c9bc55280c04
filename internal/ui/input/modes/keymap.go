package modes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the key bindings of the query mode
type KeyMap struct {
	Prev      key.Binding
	Next      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	EraseAll  key.Binding
	Backspace key.Binding
	Activate  key.Binding
	Shortcut  key.Binding
	Quit      key.Binding

	modifier string
	slots    int
}

// NewKeyMap builds bindings from the configured keys. modifier prefixes
// erase-all and the shortcut digits.
func NewKeyMap(prev, next []string, modifier string, slots int) KeyMap {
	digits := make([]string, 0, slots)
	for i := 1; i <= slots; i++ {
		digits = append(digits, fmt.Sprintf("%s+%d", modifier, i))
	}
	return KeyMap{
		Prev:     key.NewBinding(key.WithKeys(prev...), key.WithHelp(first(prev), "previous")),
		Next:     key.NewBinding(key.WithKeys(next...), key.WithHelp(first(next), "next")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		EraseAll: key.NewBinding(
			key.WithKeys(modifier+"+backspace", "ctrl+u"),
			key.WithHelp(modifier+"+⌫", "clear"),
		),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Shortcut: key.NewBinding(
			key.WithKeys(digits...),
			key.WithHelp(fmt.Sprintf("%s+1..%d", modifier, slots), "open slot"),
		),
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		modifier: modifier,
		slots:    slots,
	}
}

// Slot returns the shortcut slot a key selects, or 0
func (k KeyMap) Slot(keyName string) int {
	prefix := k.modifier + "+"
	if len(keyName) <= len(prefix) || keyName[:len(prefix)] != prefix {
		return 0
	}
	n, err := strconv.Atoi(keyName[len(prefix):])
	if err != nil || n < 1 || n > k.slots {
		return 0
	}
	return n
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Next, k.Shortcut, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.PageUp, k.PageDown},
		{k.Activate, k.Shortcut},
		{k.EraseAll, k.Quit},
	}
}

func first(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
