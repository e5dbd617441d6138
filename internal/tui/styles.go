package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tasks/internal/ui"
)

// Styles mirror the active ui theme. applyTheme refreshes them whenever a
// model is built, so a theme chosen in config reaches the TUI too.
var (
	titleStyle   lipgloss.Style
	successStyle lipgloss.Style
	pendingStyle lipgloss.Style
	accentStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	errorStyle   lipgloss.Style
	highStyle    lipgloss.Style
	lowStyle     lipgloss.Style
	helpStyle    lipgloss.Style
	doneStyle    lipgloss.Style
	frameStyle   lipgloss.Style

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

	boxChecked, boxUnchecked        string
	symDone, symPending, symCurrent string
)

func init() { applyTheme(ui.Current()) }

func applyTheme(t ui.Theme) {
	titleStyle = t.Title
	successStyle = t.Success
	pendingStyle = t.Pending
	accentStyle = t.Accent
	mutedStyle = t.Muted
	errorStyle = t.Error
	highStyle = t.High
	lowStyle = t.Low
	helpStyle = t.Muted
	doneStyle = t.Muted.Strikethrough(true)
	frameStyle = lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)

	boxChecked, boxUnchecked = t.BoxChecked, t.BoxUnchecked
	symDone, symPending, symCurrent = t.SymDone, t.SymPending, t.SymCurrent
}

func panelString(inner string) string {
	return frameStyle.Render(inner)
}
