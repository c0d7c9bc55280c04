package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/ui/input/types"
)

// QueryMode sees every key before the search field does. Navigation keys
// are consumed; everything else reaches the text input.
type QueryMode struct {
	keys KeyMap
}

func NewQueryMode(keys KeyMap) *QueryMode {
	return &QueryMode{keys: keys}
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Prev):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Next):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, m.keys.EraseAll):
		return []types.Action{types.ClearQueryAction{}, types.FocusFirstAction{}}, true

	case key.Matches(msg, m.keys.Activate):
		return []types.Action{types.ActivateAction{}}, true

	case key.Matches(msg, m.keys.Shortcut):
		if slot := m.keys.Slot(msg.String()); slot > 0 && slot <= ctx.ShortcutSlots() {
			return []types.Action{types.ActivateAction{Slot: slot}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.Backspace):
		// backspace on an empty field leaves the alias mode
		if ctx.Query() == "" && !ctx.InAllMode() {
			return []types.Action{types.ResetNamespaceAction{}}, true
		}
		return []types.Action{types.FocusFirstAction{}}, false
	}

	return nil, false
}
