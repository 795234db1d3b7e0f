// Package chat is the free-text question screen. Questions are answered
// asynchronously so the UI keeps drawing while the generator works.
package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	chatbot "github.com/abhisek/learnbot/internal/chat"
	"github.com/abhisek/learnbot/internal/screen"
	"github.com/abhisek/learnbot/internal/tutor"
	"github.com/abhisek/learnbot/internal/ui/components"
	"github.com/abhisek/learnbot/internal/ui/layout"
	"github.com/abhisek/learnbot/internal/ui/theme"
)

// Asker answers a chat question. *tutor.Tutor satisfies it.
type Asker interface {
	Exchange(ctx context.Context, question string) chatbot.Exchange
}

// answerMsg carries a finished exchange back to the screen.
type answerMsg chatbot.Exchange

// ChatScreen keeps a "You:"/"Bot:" transcript for the life of the screen.
// A question joins the transcript together with its reply.
type ChatScreen struct {
	asker      Asker
	input      components.TextInput
	transcript []string
	pending    bool
	asking     string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

func New(t *tutor.Tutor) *ChatScreen {
	return newWithAsker(t)
}

func newWithAsker(a Asker) *ChatScreen {
	return &ChatScreen{
		asker: a,
		input: components.NewTextInput("Ask a computer science question...", 200),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	return "Chat with Bot"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		c.pending = false
		c.asking = ""
		c.transcript = append(c.transcript, chatbot.Exchange(msg).Lines()...)
		return c, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return c, c.send()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send submits the current input. Blank input and sends while a reply is
// outstanding are ignored.
func (c *ChatScreen) send() tea.Cmd {
	question := c.input.Value()
	if question == "" || c.pending {
		return nil
	}
	c.pending = true
	c.asking = question
	c.input.Reset()

	asker := c.asker
	return func() tea.Msg {
		return answerMsg(asker.Exchange(context.Background(), question))
	}
}

// Transcript returns the conversation lines shown so far.
func (c *ChatScreen) Transcript() []string {
	return append([]string(nil), c.transcript...)
}

func (c *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	// Card border and input line take six rows; show the newest lines that fit.
	rows := max(height-10, 3)
	lines := c.transcript
	if c.pending {
		lines = append(c.Transcript(), "You: "+c.asking)
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	history := lipgloss.NewStyle().Width(cw - 4).Height(rows).Render(strings.Join(lines, "\n"))

	status := ""
	if c.pending {
		status = theme.Hint.Render("Thinking...")
	}
	body := lipgloss.JoinVertical(lipgloss.Left, history, status, c.input.View())
	return components.Frame(components.Card("Chat with Bot", body, cw), width, height)
}
