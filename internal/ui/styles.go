// Package ui implements the interactive terminal interface: the card grid,
// the filter controls, multi-select with bulk collect, and the detail
// editor.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorAccent   = lipgloss.Color("#FAC858")
	colorMuted    = lipgloss.Color("#6c7086")
	colorSelected = lipgloss.Color("#73C0DE")
	colorOwned    = lipgloss.Color("#91CC75")
	colorError    = lipgloss.Color("#EE6666")
	colorBorder   = lipgloss.Color("#45475a")
)

// Styles holds the pre-built lipgloss styles used by the views.
type Styles struct {
	Header       lipgloss.Style
	StatsBar     lipgloss.Style
	FilterBar    lipgloss.Style
	FilterActive lipgloss.Style
	Row          lipgloss.Style
	RowCursor    lipgloss.Style
	RowSelected  lipgloss.Style
	Collected    lipgloss.Style
	Price        lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	CollectBar   lipgloss.Style
	Detail       lipgloss.Style
	DetailTitle  lipgloss.Style
	DetailLabel  lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles builds the default style set.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		StatsBar: lipgloss.NewStyle().
			Foreground(colorMuted),
		FilterBar: lipgloss.NewStyle().
			Foreground(colorMuted),
		FilterActive: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		Row: lipgloss.NewStyle(),
		RowCursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		RowSelected: lipgloss.NewStyle().
			Foreground(colorSelected),
		Collected: lipgloss.NewStyle().
			Foreground(colorOwned),
		Price: lipgloss.NewStyle().
			Foreground(colorOwned),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Error: lipgloss.NewStyle().
			Foreground(colorError),
		CollectBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSelected),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2),
		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		DetailLabel: lipgloss.NewStyle().
			Foreground(colorMuted),
		Help: lipgloss.NewStyle().
			Foreground(colorMuted),
	}
}
