package formatter

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Formatter renders planner results for the terminal. A plain formatter
// emits no escape sequences, for pipes and files.
type Formatter struct {
	header lipgloss.Style
	dim    lipgloss.Style
	green  lipgloss.Style
	yellow lipgloss.Style
	red    lipgloss.Style
	bold   lipgloss.Style
}

func New(color bool) *Formatter {
	if !color {
		plain := lipgloss.NewStyle()
		return &Formatter{header: plain, dim: plain, green: plain, yellow: plain, red: plain, bold: plain}
	}
	return &Formatter{
		header: lipgloss.NewStyle().Foreground(ColorHeader).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(ColorDim),
		green:  lipgloss.NewStyle().Foreground(ColorGreen),
		yellow: lipgloss.NewStyle().Foreground(ColorYellow),
		red:    lipgloss.NewStyle().Foreground(ColorRed),
		bold:   lipgloss.NewStyle().Bold(true),
	}
}
