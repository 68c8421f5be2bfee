package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/taskmaster/internal/model"
)

// Color palette based on TUI design
var (
	// Priority colors
	PriorityHighColor   = lipgloss.Color("#FF6B6B") // Red
	PriorityMediumColor = lipgloss.Color("#FFE66D") // Yellow
	PriorityLowColor    = lipgloss.Color("#4ECDC4") // Teal

	// Status colors
	Completed = lipgloss.Color("#95E1A3") // Green
	Overdue   = lipgloss.Color("#FF6B6B") // Red
	SaveError = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Highlight = lipgloss.Color("#4ECDC4")
)

// Styles
var (
	// Sidebar
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	// Task list
	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// Sidebar entry
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SidebarItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	// Task item
	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	// Priority badges
	PriorityHighStyle   = lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(PriorityMediumColor)
	PriorityLowStyle    = lipgloss.NewStyle().Foreground(PriorityLowColor)

	OverdueStyle = lipgloss.NewStyle().Foreground(Overdue).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(SaveError)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	LabelStyle        = lipgloss.NewStyle().Width(12).Foreground(TextMuted)
	LabelFocusedStyle = lipgloss.NewStyle().Width(12).Foreground(Primary).Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// GetPriorityStyle returns the style for a given priority
func GetPriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return PriorityHighStyle
	case model.PriorityMedium:
		return PriorityMediumStyle
	default:
		return PriorityLowStyle
	}
}

// FormatPriority returns a formatted priority badge
func FormatPriority(p model.Priority) string {
	label := "low"
	switch p {
	case model.PriorityHigh:
		label = "high"
	case model.PriorityMedium:
		label = "med"
	}
	return GetPriorityStyle(p).Render(label)
}

// Swatch renders a colored dot for a category color
func Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
