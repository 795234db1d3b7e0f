// Package home is the landing screen: learner information, module
// progress and the action menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/quiz"
	"github.com/abhisek/learnbot/internal/router"
	"github.com/abhisek/learnbot/internal/screen"
	chatscreen "github.com/abhisek/learnbot/internal/screens/chat"
	"github.com/abhisek/learnbot/internal/screens/message"
	quizscreen "github.com/abhisek/learnbot/internal/screens/quiz"
	"github.com/abhisek/learnbot/internal/tutor"
	"github.com/abhisek/learnbot/internal/ui/components"
	"github.com/abhisek/learnbot/internal/ui/theme"
)

// Menu labels, in display order.
const (
	LabelSuggestion = "Get Content Suggestion"
	LabelQuestion   = "Get Adaptive Question"
	LabelFeedback   = "Get Personalized Feedback"
	LabelQuiz       = "Start Quiz"
	LabelChat       = "Chat with Bot"
	LabelQuit       = "Quit"
)

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	tutor *tutor.Tutor
	menu  components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

func New(t *tutor.Tutor) *HomeScreen {
	items := []components.MenuItem{
		{Label: LabelSuggestion, Action: func() tea.Cmd {
			return router.Push(message.New("Suggestion", "Content Suggestion", t.SuggestContent()))
		}},
		{Label: LabelQuestion, Action: func() tea.Cmd {
			return router.Push(message.New("Question", "Adaptive Question", t.AdaptiveQuestion()))
		}},
		{Label: LabelFeedback, Action: func() tea.Cmd {
			return router.Push(message.New("Feedback", "Personalized Feedback", t.PersonalizedFeedback()))
		}},
		{Label: LabelQuiz, Action: func() tea.Cmd {
			return router.Push(quizscreen.New(t))
		}},
		{Label: LabelChat, Action: func() tea.Cmd {
			return router.Push(chatscreen.New(t))
		}},
		{Label: LabelQuit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{tutor: t, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		components.Card("Learner Information", h.learnerInfo(), cw),
		components.Card("Module Progress", h.progressBars(cw-4), cw),
		components.Card("Actions", h.menu.View(), cw),
	}
	if line := activityLine(h.tutor.Activities()); line != "" {
		sections = append(sections, theme.Hint.Render(line))
	}
	return components.Frame(lipgloss.JoinVertical(lipgloss.Left, sections...), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) learnerInfo() string {
	return fmt.Sprintf("Learner ID: %d\nPreferred Language: %s",
		h.tutor.LearnerID(), h.tutor.Language().Upper())
}

func (h *HomeScreen) progressBars(width int) string {
	snap := h.tutor.Progress()
	labelWidth := 0
	for _, m := range snap.Modules() {
		labelWidth = max(labelWidth, lipgloss.Width(curriculum.DisplayName(m)))
	}
	bars := make([]string, 0, len(snap.Modules()))
	for _, m := range snap.Modules() {
		bars = append(bars, components.NewScoreBar(curriculum.DisplayName(m), snap.Score(m), labelWidth, width).View())
	}
	return strings.Join(bars, "\n")
}

// activityLine summarizes the quizzes finished in this run, or returns ""
// when there are none.
func activityLine(results []quiz.Result) string {
	if len(results) == 0 {
		return ""
	}
	last := results[len(results)-1]
	noun := "quizzes"
	if len(results) == 1 {
		noun = "quiz"
	}
	return fmt.Sprintf("%d %s completed · last score %d/%d", len(results), noun, last.Score, last.Total)
}
