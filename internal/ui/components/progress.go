package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnbot/internal/ui/theme"
)

// ScoreBar displays a module score (0 to 100) as a labeled bar.
type ScoreBar struct {
	Label      string
	Score      int
	LabelWidth int
	Width      int
}

func NewScoreBar(label string, score, labelWidth, width int) ScoreBar {
	return ScoreBar{Label: label, Score: score, LabelWidth: labelWidth, Width: width}
}

// View renders the bar followed by the score percentage.
func (p ScoreBar) View() string {
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(p.LabelWidth).
		Render(p.Label)

	const percentWidth = 6 // "  100%"
	barWidth := max(p.Width-lipgloss.Width(label)-percentWidth-2, 4)

	filled := min(max(barWidth*p.Score/100, 0), barWidth)
	bar := theme.ScoreColor(p.Score).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return label + "  " + bar + theme.Hint.Render(fmt.Sprintf("%5d%%", p.Score))
}
