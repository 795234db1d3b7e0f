// Package message shows a single block of text, such as a content
// suggestion or feedback, until the learner goes back.
package message

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnbot/internal/router"
	"github.com/abhisek/learnbot/internal/screen"
	"github.com/abhisek/learnbot/internal/ui/components"
	"github.com/abhisek/learnbot/internal/ui/layout"
	"github.com/abhisek/learnbot/internal/ui/theme"
)

// MessageScreen displays a heading and body text.
type MessageScreen struct {
	title   string
	heading string
	body    string
}

var _ screen.Screen = (*MessageScreen)(nil)
var _ screen.KeyHintProvider = (*MessageScreen)(nil)

func New(title, heading, body string) *MessageScreen {
	return &MessageScreen{title: title, heading: heading, body: body}
}

func (m *MessageScreen) Init() tea.Cmd {
	return nil
}

func (m *MessageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return m, router.Pop
	}
	return m, nil
}

func (m *MessageScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(m.body)
	return components.Frame(components.Card(m.heading, body, cw), width, height)
}

func (m *MessageScreen) Title() string {
	return m.title
}

// Body returns the displayed text.
func (m *MessageScreen) Body() string {
	return m.body
}

func (m *MessageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
