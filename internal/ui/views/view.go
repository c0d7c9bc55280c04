package views

import (
	"fmt"
	"strings"

	"lookout/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width     int
	Height    int
	ModeLabel string
	InAllMode bool
	Input     string // rendered text input

	Rows       []*domain.ResultItem // visible rows
	FirstIndex int                  // list index of Rows[0]
	Total      int
	Cursor     int
	Revealed   int // rows shown so far by the entry animation, -1 = all
	Spinner    string

	Status string
	Help   string

	Overlay       string
	OverlayTitle  string
	OverlayFooter string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	rowRender   *RowRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer. modifier labels the shortcut badges.
func NewRenderer(showIcons bool, modifier string) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		rowRender:   NewRowRenderer(styles, showIcons, modifier),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Overlay != "" {
		return r.popupRender.RenderPopup(state.OverlayTitle, state.Overlay, state.OverlayFooter, state.Width, state.Height)
	}

	content := &strings.Builder{}

	modeStyle := r.styles.Mode
	if state.InAllMode {
		modeStyle = r.styles.ModeAll
	}
	content.WriteString(modeStyle.Render(state.ModeLabel))
	content.WriteString(" ")
	content.WriteString(state.Input)
	content.WriteString("\n\n")

	innerWidth := state.Width - 4 // Main padding
	if innerWidth <= 0 {
		innerWidth = 76
	}

	if state.Total == 0 {
		content.WriteString(r.styles.Dim.Render("No results"))
		content.WriteString("\n")
	}
	for i, item := range state.Rows {
		index := state.FirstIndex + i
		if state.Revealed >= 0 && index >= state.Revealed {
			break
		}
		content.WriteString(r.rowRender.RenderRow(item, index == state.Cursor, state.Spinner, innerWidth))
		content.WriteString("\n")
	}

	if hidden := state.Total - state.FirstIndex - len(state.Rows); hidden > 0 {
		content.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", hidden)))
		content.WriteString("\n")
	}

	if state.Status != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.StatusError.Render(state.Status))
		content.WriteString("\n")
	}

	if state.Help != "" {
		used := strings.Count(content.String(), "\n")
		available := state.Height - 2 // Main vertical padding
		if pad := available - used - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString(r.styles.Help.Render(state.Help))
	}

	return r.styles.Main.Render(content.String())
}

// RowsHeight returns how many result rows fit in a terminal of height h
func RowsHeight(h int) int {
	// padding 2, mode line and blank 2, scroll hint 1, status 2, help 1
	rows := h - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

// PlainRow renders an item without styling for non-terminal output
func PlainRow(item *domain.ResultItem) string {
	slot := " "
	if item.Shortcut > 0 {
		slot = fmt.Sprintf("%d", item.Shortcut)
	}
	body, _, _ := strings.Cut(item.Body, "\n")
	if body == "" {
		return fmt.Sprintf("%s %s", slot, item.Title)
	}
	return fmt.Sprintf("%s %s\t%s", slot, item.Title, body)
}

// StyledRow renders an item for a terminal outside the TUI
func (r *Renderer) StyledRow(item *domain.ResultItem, width int) string {
	return r.rowRender.RenderRow(item, false, "", width)
}
