package quiz

import (
	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/learnbot/internal/quiz"
	"github.com/abhisek/learnbot/internal/router"
	"github.com/abhisek/learnbot/internal/screen"
	"github.com/abhisek/learnbot/internal/ui/components"
	"github.com/abhisek/learnbot/internal/ui/layout"
	"github.com/abhisek/learnbot/internal/ui/theme"
)

// ResultScreen shows the final score of a completed quiz.
type ResultScreen struct {
	result qz.Complete
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

func NewResult(c qz.Complete) *ResultScreen {
	return &ResultScreen{result: c}
}

func (r *ResultScreen) Init() tea.Cmd { return nil }

func (r *ResultScreen) Title() string { return "Quiz Result" }

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return r, router.Pop
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	style := theme.Correct
	if r.result.Score*2 < r.result.Total {
		style = theme.Incorrect
	}
	cw := components.ContentWidth(width)
	return components.Frame(components.Card("", style.Render(r.result.Summary()), cw), width, height)
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Close"}}
}
