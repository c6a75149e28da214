package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/projects"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	activeHeadingStyle = headingStyle.
				Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	enteringStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	removingStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("241"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	fadedStyle = lipgloss.NewStyle().
			Faint(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(44)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

var statusColors = map[projects.Status]lipgloss.Color{
	projects.StatusOngoing:   lipgloss.Color("39"),
	projects.StatusCompleted: lipgloss.Color("42"),
	projects.StatusDueToday:  lipgloss.Color("214"),
}

func statusStyle(s projects.Status) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(statusColors[s])
}

var noticeColors = map[notify.Level]lipgloss.Color{
	notify.LevelSuccess: lipgloss.Color("42"),
	notify.LevelInfo:    lipgloss.Color("39"),
	notify.LevelError:   lipgloss.Color("196"),
}

func noticeStyle(l notify.Level) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(noticeColors[l])
}
