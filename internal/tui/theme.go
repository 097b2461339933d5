package tui

import "github.com/charmbracelet/lipgloss"

var (
	Cyan      = lipgloss.Color("#00D4AA")
	Green     = lipgloss.Color("#00C832")
	DimGreen  = lipgloss.Color("#008F11")
	Red       = lipgloss.Color("#FF5F56")
	LightGray = lipgloss.Color("#aaaaaa")
	White     = lipgloss.Color("#e0e0e0")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true).
			Padding(0, 1)

	UserLabelStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	BotLabelStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	BotMsgStyle = lipgloss.NewStyle().
			Foreground(White)

	ErrorMsgStyle = lipgloss.NewStyle().
			Foreground(Red)

	PromptLabelStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)

	ViewportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGreen).
			Padding(0, 1)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGreen).
			Padding(0, 1)
)
