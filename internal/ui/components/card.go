package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnbot/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every card on a screen so
// the boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Frame centers content inside a bordered area of the given size.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box at content width cw, with an optional
// heading on the first line.
func Card(heading, content string, cw int) string {
	body := content
	if heading != "" {
		body = theme.Selected.Render(heading) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(max(cw-2, 0)).
		Padding(0, 1).
		Render(body)
}
