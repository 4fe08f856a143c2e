package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	accentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle       = lipgloss.NewStyle().Faint(true)
	focusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 3)
)
