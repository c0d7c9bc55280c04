package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centres a titled box in a width x height area
func (pr *PopupRenderer) RenderPopup(title, body, footer string, width, height int) string {
	var content strings.Builder
	if title != "" {
		content.WriteString(pr.styles.PopupTitle.Render(title))
		content.WriteString("\n\n")
	}
	content.WriteString(body)
	if footer != "" {
		content.WriteString("\n\n")
		content.WriteString(pr.styles.Help.Render(footer))
	}

	style := pr.styles.Popup
	if width > 8 {
		style = style.MaxWidth(width - 4)
	}
	box := style.Render(content.String())
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)
