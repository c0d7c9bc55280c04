package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/ui/input/types"
)

// OverlayMode shows a full-screen message that any key dismisses
type OverlayMode struct{}

func NewOverlayMode() *OverlayMode {
	return &OverlayMode{}
}

func (m *OverlayMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.String() == "ctrl+c" {
		return []types.Action{types.QuitAction{}}, true
	}
	return []types.Action{
		types.DismissAction{},
		types.ChangeModeAction{Mode: types.ModeQuery},
	}, true
}
