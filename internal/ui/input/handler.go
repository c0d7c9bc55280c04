package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/ui/input/modes"
	"lookout/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
	keys        modes.KeyMap
}

func New(keys modes.KeyMap) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search"
	ti.Focus()

	h := &Handler{
		currentMode: types.ModeQuery,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	h.modes[types.ModeQuery] = modes.NewQueryMode(keys)
	h.modes[types.ModeErrors] = modes.NewOverlayMode()
	h.modes[types.ModeDetail] = modes.NewOverlayMode()

	return h
}

// HandleKey runs the key through the current mode first. Keys the query
// mode does not consume are passed to the text input; an UpdateTextAction
// is emitted only when the text actually changed.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			h.ChangeMode(changeMode.Mode)
			continue
		}
		allActions = append(allActions, action)
	}

	if consumed || h.currentMode != types.ModeQuery {
		return allActions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		allActions = append(allActions, types.UpdateTextAction{Text: after})
	}
	return allActions, cmd
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeQuery {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}

// ChangeMode changes the current input mode
func (h *Handler) ChangeMode(mode types.Mode) {
	h.currentMode = mode
	if mode == types.ModeQuery {
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
}

// GetMode returns the current input mode
func (h *Handler) GetMode() types.Mode {
	if h == nil {
		return types.ModeQuery
	}
	return h.currentMode
}

// Value returns the query text
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// SetValue replaces the query text without emitting an update
func (h *Handler) SetValue(text string) {
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

// GetTextInput returns the text input model
func (h *Handler) GetTextInput() *textinput.Model {
	if h == nil {
		return nil
	}
	return h.textInput
}

// Keys returns the key bindings
func (h *Handler) Keys() modes.KeyMap {
	return h.keys
}
