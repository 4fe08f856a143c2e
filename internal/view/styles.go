package view

import "github.com/charmbracelet/lipgloss"

// ------- Lip Gloss styles shared by the renderers -------
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	linkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dangerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	selectedCardStyle = cardStyle.
				Border(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("12"))

	rowStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("8")).
			PaddingLeft(1).
			MarginBottom(1)
	selectedRowStyle = rowStyle.
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("12"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	imagePlaceholder = "░░░░░░░░░░░░"
)
