package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fastmath/internal/ui"
)

// Dashboard styles, built from the active ui theme by initStyles.
var (
	titleStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	panelStyle     lipgloss.Style
	panelTitle     lipgloss.Style
	barStyle       lipgloss.Style
	valueStyle     lipgloss.Style
	runningStyle   lipgloss.Style
	pausedStyle    lipgloss.Style
	doneStyle      lipgloss.Style
	failedStyle    lipgloss.Style
	sparkStyle     lipgloss.Style
	answerKStyle   lipgloss.Style
	answerValStyle lipgloss.Style
)

func init() {
	initStyles()
}

// color maps a 256-color code to a lipgloss color. The empty code of the
// "none" theme keeps the terminal default.
func color(code string) lipgloss.TerminalColor {
	if code == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(code)
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// after the theme was selected.
func initStyles() {
	p := ui.GetCurrentTheme().Codes

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(color(p.Primary))
	dimStyle = lipgloss.NewStyle().Foreground(color(p.Secondary))
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color(p.Secondary)).
		Padding(0, 1)
	panelTitle = lipgloss.NewStyle().Bold(true).Foreground(color(p.Info))
	barStyle = lipgloss.NewStyle().Foreground(color(p.Primary))
	valueStyle = lipgloss.NewStyle().Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(color(p.Warning))
	pausedStyle = lipgloss.NewStyle().Foreground(color(p.Info))
	doneStyle = lipgloss.NewStyle().Foreground(color(p.Success))
	failedStyle = lipgloss.NewStyle().Foreground(color(p.Error))
	sparkStyle = lipgloss.NewStyle().Foreground(color(p.Info))
	answerKStyle = lipgloss.NewStyle().Foreground(color(p.Secondary))
	answerValStyle = lipgloss.NewStyle().Bold(true).Foreground(color(p.Success))
}
