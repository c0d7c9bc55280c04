package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lookout/internal/domain"
)

// RowRenderer renders one result item
type RowRenderer struct {
	styles    *Styles
	showIcons bool
	modifier  string // shown in front of the slot number, e.g. "alt+1"
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles, showIcons bool, modifier string) *RowRenderer {
	return &RowRenderer{
		styles:    styles,
		showIcons: showIcons,
		modifier:  modifier,
	}
}

// Badge is the shortcut label of slot n
func (r *RowRenderer) Badge(n int) string {
	if r.modifier == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s+%d", r.modifier, n)
}

// RenderRow renders an item on one line: shortcut, icon, title, body
func (r *RowRenderer) RenderRow(item *domain.ResultItem, selected bool, spinner string, width int) string {
	if item == nil {
		return ""
	}

	var parts []string

	if item.Shortcut > 0 {
		parts = append(parts, r.styles.Shortcut.Render(r.Badge(item.Shortcut)))
	} else {
		parts = append(parts, strings.Repeat(" ", lipgloss.Width(r.Badge(1))))
	}

	if r.showIcons {
		parts = append(parts, r.renderIcon(item))
	}

	title := item.Title
	if selected {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}
	parts = append(parts, title)

	switch {
	case item.Pending:
		parts = append(parts, r.styles.Pending.Render(strings.TrimSpace(spinner+" "+item.Body)))
	case item.Body != "":
		body, _, _ := strings.Cut(item.Body, "\n")
		parts = append(parts, r.styles.Body.Render(body))
	}

	line := strings.Join(parts, " ")
	if width > 0 && lipgloss.Width(line) > width {
		line = truncate(line, width)
	}
	if selected {
		pad := width - lipgloss.Width(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		line = r.styles.SelectionBg.Render(line)
	}
	return line
}

func (r *RowRenderer) renderIcon(item *domain.ResultItem) string {
	switch {
	case item.Image != nil && item.FreshImage:
		return r.styles.FreshIcon.Render("◆")
	case item.Image != nil || item.Icon != "":
		return r.styles.Icon.Render("◆")
	default:
		return r.styles.Dim.Render("◇")
	}
}

// truncate cuts a styled line to width cells
func truncate(s string, width int) string {
	plain := ansiRE.ReplaceAllString(s, "")
	runes := []rune(plain)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
