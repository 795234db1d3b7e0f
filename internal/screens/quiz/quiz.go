// Package quiz runs a multiple-choice quiz session in the terminal UI.
package quiz

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnbot/internal/questionbank"
	qz "github.com/abhisek/learnbot/internal/quiz"
	"github.com/abhisek/learnbot/internal/router"
	"github.com/abhisek/learnbot/internal/screen"
	"github.com/abhisek/learnbot/internal/tutor"
	"github.com/abhisek/learnbot/internal/ui/components"
	"github.com/abhisek/learnbot/internal/ui/layout"
	"github.com/abhisek/learnbot/internal/ui/theme"
)

// QuizScreen shows one question at a time and a short verdict after each
// answer. Leaving before the last answer discards the session.
type QuizScreen struct {
	session *qz.Session
	item    questionbank.Item
	header  string
	choice  components.MultiChoice

	showingFeedback bool
	lastCorrect     bool
	errMsg          string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

func New(t *tutor.Tutor) *QuizScreen {
	s := &QuizScreen{}
	session, err := t.StartQuiz()
	if err != nil {
		s.errMsg = tutor.UserMessage(err)
		return s
	}
	s.session = session
	s.nextQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Knowledge Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.showingFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.errMsg != "" {
		return s, nil
	}

	if s.showingFeedback {
		s.showingFeedback = false
		if s.session.Done() {
			return s, router.Replace(NewResult(s.session.State().(qz.Complete)))
		}
		s.nextQuestion()
		return s, nil
	}

	s.choice, _ = s.choice.Update(kmsg)
	if !s.choice.Submitted {
		return s, nil
	}
	correct, err := s.session.Answer(s.choice.Selected)
	if err != nil {
		s.errMsg = tutor.UserMessage(err)
		return s, nil
	}
	s.choice.Reveal(s.item.Answer)
	s.lastCorrect = correct
	s.showingFeedback = true
	return s, nil
}

func (s *QuizScreen) nextQuestion() {
	item, err := s.session.Next()
	if err != nil {
		s.errMsg = tutor.UserMessage(err)
		return
	}
	s.item = item
	s.header = s.session.State().(qz.Active).Header()
	s.choice = components.NewMultiChoice(item.Question, item.Options)
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.errMsg != "" {
		return components.Frame(theme.Incorrect.Render(s.errMsg), width, height)
	}

	body := s.choice.View()
	if s.showingFeedback {
		if s.lastCorrect {
			body += "\n" + theme.Correct.Render("Correct!")
		} else {
			body += "\n" + theme.Incorrect.Render("Not quite. The answer is: "+s.item.AnswerText())
		}
	}
	card := components.Card(s.header, lipgloss.NewStyle().Width(cw-4).Render(body), cw)
	return components.Frame(card, width, height)
}
