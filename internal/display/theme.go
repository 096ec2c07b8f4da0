package display

import "github.com/charmbracelet/lipgloss"

// Styles used across transcript rendering.
var (
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

const (
	iconRobot     = "🤖"
	iconLightbulb = "💡"
)
