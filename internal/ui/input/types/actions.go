package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// FocusFirstAction moves the selection back to the first row
type FocusFirstAction struct{}

func (a FocusFirstAction) Type() string { return "focus_first" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// ClearQueryAction empties the search field
type ClearQueryAction struct{}

func (a ClearQueryAction) Type() string { return "clear_query" }

// ResetNamespaceAction leaves the current alias mode for "all"
type ResetNamespaceAction struct{}

func (a ResetNamespaceAction) Type() string { return "reset_namespace" }

// ActivateAction runs an item. Slot 0 means the selected row.
type ActivateAction struct {
	Slot int
}

func (a ActivateAction) Type() string { return "activate" }

// DismissAction closes an overlay
type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

// Application actions
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
