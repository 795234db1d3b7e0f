// Package chat answers free-text learner questions through an external text
// generator. Ask never fails: every problem with the generator is logged
// and turned into a fixed message for the learner.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/learnbot/internal/logger"
)

// Fixed learner-facing messages.
const (
	UnavailableMessage = "Chat functionality is currently unavailable. Please try again later."
	ApologyMessage     = "I apologize, but I'm having trouble processing your question. Could you try rephrasing it?"
)

// GroundingContext is prefixed to every question before generation.
const GroundingContext = "This is a computer science learning assistant. "

// minAnswerLength is the shortest cleaned answer returned as-is.
const minAnswerLength = 10

// ErrGenerationUnavailable wraps every generator failure. It is logged and
// never returned from Ask.
var ErrGenerationUnavailable = errors.New("text generation unavailable")

// GenerateOptions are the sampling settings passed to a Generator.
type GenerateOptions struct {
	MaxLength          int
	NumReturnSequences int
	DoSample           bool
	Temperature        float64
	PadTokenID         int
}

// DefaultGenerateOptions returns the settings Ask uses.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		MaxLength:          100,
		NumReturnSequences: 1,
		DoSample:           true,
		Temperature:        0.7,
		PadTokenID:         50256,
	}
}

// Generator produces candidate continuations of a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error)
}

// Exchange is one question and the reply shown for it.
type Exchange struct {
	Question string
	Response string
}

// Lines renders the exchange as transcript lines followed by a blank
// separator.
func (e Exchange) Lines() []string {
	return []string{"You: " + e.Question, "Bot: " + e.Response, ""}
}

// Adapter answers questions with a Generator. A nil Generator means the
// capability failed to initialize.
type Adapter struct {
	gen  Generator
	opts GenerateOptions
	log  *logger.Logger
}

func NewAdapter(gen Generator, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.Nop()
	}
	return &Adapter{gen: gen, opts: DefaultGenerateOptions(), log: log.With("component", "chat")}
}

// Available reports whether a generator is configured.
func (a *Adapter) Available() bool {
	return a.gen != nil
}

// Ask returns a reply for question. It always returns a non-empty string.
func (a *Adapter) Ask(ctx context.Context, question string) string {
	if a.gen == nil {
		return UnavailableMessage
	}

	answer, err := a.generate(ctx, question)
	if err != nil {
		a.log.Warn("chat generation failed", "error", err)
		return ApologyMessage
	}
	if len([]rune(answer)) < minAnswerLength {
		return ClarificationMessage(question)
	}
	return answer
}

// Exchange runs Ask and pairs the question with its reply.
func (a *Adapter) Exchange(ctx context.Context, question string) Exchange {
	return Exchange{Question: question, Response: a.Ask(ctx, question)}
}

// ClarificationMessage asks the learner to be more specific, echoing their
// question verbatim.
func ClarificationMessage(question string) string {
	return "I understand you're asking about " + question + ". Could you please be more specific?"
}

func (a *Adapter) generate(ctx context.Context, question string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: generator panicked: %v", ErrGenerationUnavailable, r)
		}
	}()

	candidates, err := a.gen.Generate(ctx, GroundingContext+question, a.opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", ErrGenerationUnavailable)
	}
	return clean(candidates[0]), nil
}

// clean removes the grounding context wherever the generator echoed it and
// trims surrounding whitespace.
func clean(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, GroundingContext, ""))
}
