package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func renderConfirm(width int, title, body string) string {
	btn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	yes := btn.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true).Render("y: delete")
	no := btn.Render("n/esc: cancel")

	controls := lipgloss.JoinHorizontal(lipgloss.Top, yes, " ", no)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Padding(0, 1)
	if width > 8 {
		box = box.Width(width - 4)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		styleError().Render(title),
		body,
		"",
		controls,
	))
}
