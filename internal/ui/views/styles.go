package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Mode        lipgloss.Style
	ModeAll     lipgloss.Style
	Dim         lipgloss.Style
	Body        lipgloss.Style
	Pending     lipgloss.Style
	Shortcut    lipgloss.Style
	Icon        lipgloss.Style
	FreshIcon   lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	SelectionBg lipgloss.Style
	StatusError lipgloss.Style
	Popup       lipgloss.Style
	PopupTitle  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Mode: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		ModeAll: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Dim:       lipgloss.NewStyle().Faint(true),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Shortcut:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Icon:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		FreshIcon: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		PopupTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
