package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/venda-crm/venda/internal/config"
)

// Layout constants
const (
	minColumnWidth = 26
	cardHeight     = 4
)

// Styles holds the pre-built lipgloss styles derived from the configured
// theme.
type Styles struct {
	Column        lipgloss.Style
	ColumnHover   lipgloss.Style
	ColumnHeader  lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	CardDragged   lipgloss.Style
	Subtle        lipgloss.Style
	ErrorBanner   lipgloss.Style
	StatusBar     lipgloss.Style
	SectionHeader lipgloss.Style
	FormBox       lipgloss.Style
	HelpBox       lipgloss.Style
}

// NewStyles builds the style set from the theme.
func NewStyles(t config.Theme) Styles {
	subtle := lipgloss.Color(t.Subtle)
	accent := lipgloss.Color(t.Accent)
	selected := lipgloss.Color(t.Selected)
	danger := lipgloss.Color(t.Danger)

	return Styles{
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1),
		ColumnHover: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		ColumnHeader: lipgloss.NewStyle().
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(subtle).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(selected).
			Padding(0, 1),
		CardDragged: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Subtle: lipgloss.NewStyle().
			Foreground(subtle),
		ErrorBanner: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(subtle),
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(1, 2),
	}
}
