package views

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))

	categoryStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("245"))

	categoryActiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62"))

	cardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252"))

	cardMetaStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true)

	cardBodyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	cardContextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("108"))

	cardSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("62")).
		PaddingLeft(1)

	cardStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	tagStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))

	contextPillStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("96"))

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	skeletonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	loadMoreStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62"))

	loadMoreBusyStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("245")).
		Background(lipgloss.Color("237"))

	sidebarStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("238")).
		PaddingLeft(1)

	sidebarTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	historyActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212"))

	historyCursorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62"))

	historyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	statusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	confirmStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("203"))

	detailStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	detailHeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)
)
