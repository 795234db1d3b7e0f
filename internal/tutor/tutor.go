// Package tutor is the engine facade for one learner interaction. It ties
// the roster, evaluator, recommender, question bank, quiz sessions and chat
// adapter together and tags learner-facing text with the learner's language.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/learnbot/internal/chat"
	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/i18n"
	"github.com/abhisek/learnbot/internal/logger"
	"github.com/abhisek/learnbot/internal/progress"
	"github.com/abhisek/learnbot/internal/questionbank"
	"github.com/abhisek/learnbot/internal/quiz"
	"github.com/abhisek/learnbot/internal/recommend"
	"github.com/abhisek/learnbot/internal/roster"
)

// Config wires a Tutor. Roster, Bank and Chat are required.
type Config struct {
	Roster     *roster.Roster
	Bank       *questionbank.Bank
	Chat       *chat.Adapter
	LearnerID  int
	QuizLength int
	Rand       *rand.Rand
	Now        func() time.Time
	Logger     *logger.Logger
}

// Tutor serves one learner. Its methods are synchronous and it is not safe
// for concurrent use, except Ask, which touches no tutor state.
type Tutor struct {
	snapshot progress.Snapshot
	language i18n.Language
	bank     *questionbank.Bank
	chat     *chat.Adapter
	log      *quiz.ActivityLog
	cfg      Config
	logger   *logger.Logger
}

// New resolves the learner and returns a Tutor for them. An unknown learner
// id fails with *roster.UnknownLearnerError.
func New(cfg Config) (*Tutor, error) {
	if cfg.Roster == nil || cfg.Bank == nil || cfg.Chat == nil {
		return nil, errors.New("tutor: roster, bank and chat are required")
	}
	rec, err := cfg.Roster.Lookup(cfg.LearnerID)
	if err != nil {
		return nil, err
	}
	snap, err := progress.NewEvaluator(cfg.Roster).Snapshot(cfg.LearnerID)
	if err != nil {
		return nil, err
	}
	if cfg.QuizLength == 0 {
		cfg.QuizLength = quiz.DefaultLength
	}
	if cfg.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Tutor{
		snapshot: snap,
		language: rec.Language,
		bank:     cfg.Bank,
		chat:     cfg.Chat,
		log:      &quiz.ActivityLog{},
		cfg:      cfg,
		logger:   cfg.Logger.With("learner", cfg.LearnerID),
	}, nil
}

// LearnerID returns the id of the learner being served.
func (t *Tutor) LearnerID() int { return t.snapshot.LearnerID }

// Progress returns the learner's snapshot.
func (t *Tutor) Progress() progress.Snapshot { return t.snapshot }

// Language returns the learner's preferred language code.
func (t *Tutor) Language() i18n.Language { return t.language }

// ProgressLines renders one "<Display>: <score>%" line per module in
// canonical order.
func (t *Tutor) ProgressLines() []string {
	lines := make([]string, 0, len(t.snapshot.Modules()))
	for _, m := range t.snapshot.Modules() {
		lines = append(lines, fmt.Sprintf("%s: %d%%", curriculum.DisplayName(m), t.snapshot.Score(m)))
	}
	return lines
}

// SuggestContent recommends material for the learner's weakest module.
func (t *Tutor) SuggestContent() string {
	return i18n.Localize(recommend.Suggest(t.snapshot), t.language)
}

// AdaptiveQuestion returns a question prompt at the learner's difficulty
// tier. It is not localized.
func (t *Tutor) AdaptiveQuestion() string {
	return progress.AdaptiveQuestion(t.snapshot, t.cfg.Rand)
}

// PersonalizedFeedback returns the per-module feedback sentence.
func (t *Tutor) PersonalizedFeedback() string {
	return i18n.Localize(progress.Feedback(t.snapshot), t.language)
}

// StartQuiz begins a new quiz. Completed quizzes are recorded in the
// tutor's activity log.
func (t *Tutor) StartQuiz() (*quiz.Session, error) {
	s, err := quiz.NewSession(quiz.SessionConfig{
		Total:  t.cfg.QuizLength,
		Bank:   t.bank,
		Rand:   t.cfg.Rand,
		Log:    t.log,
		Now:    t.cfg.Now,
		Logger: t.logger,
	})
	if err != nil {
		return nil, err
	}
	t.logger.Debug("quiz started", "quiz_session", s.ID(), "total", t.cfg.QuizLength)
	return s, nil
}

// Ask forwards a chat question. It always returns a displayable reply.
func (t *Tutor) Ask(ctx context.Context, question string) string {
	return t.chat.Ask(ctx, question)
}

// Exchange is Ask paired with its question.
func (t *Tutor) Exchange(ctx context.Context, question string) chat.Exchange {
	return t.chat.Exchange(ctx, question)
}

// ChatAvailable reports whether a text generator is configured.
func (t *Tutor) ChatAvailable() bool {
	return t.chat.Available()
}

// Activities returns the quiz results recorded during this interaction.
func (t *Tutor) Activities() []quiz.Result {
	return t.log.Results()
}

// GenericMessage is shown for errors with no learner-facing explanation.
const GenericMessage = "Something went wrong. Please try again."

// UserMessage turns an engine error into one line suitable for the learner.
func UserMessage(err error) string {
	var (
		unknown *roster.UnknownLearnerError
		invalid *quiz.InvalidChoiceError
		empty   *questionbank.EmptyCatalogError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unknown):
		return fmt.Sprintf("Learner %d was not found.", unknown.ID)
	case errors.Is(err, quiz.ErrCatalogExhausted), errors.As(err, &empty):
		return "No quiz questions are available right now."
	case errors.As(err, &invalid):
		return fmt.Sprintf("Please choose an option between 1 and %d.", invalid.Options)
	case errors.Is(err, quiz.ErrSessionComplete):
		return "This quiz is already complete."
	case errors.Is(err, quiz.ErrInvalidTransition):
		return "That action is not available right now."
	default:
		return GenericMessage
	}
}
