// Package quiz implements the multi-round quiz as a tagged state with pure
// transition functions, plus a mutable Session that owns one run and
// records its result.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/questionbank"
)

// DefaultLength is the number of questions in a quiz.
const DefaultLength = 5

// State is either Active or Complete.
type State interface {
	isState()
}

// Active is a quiz in progress. Current is non-nil only between
// NextQuestion and SubmitAnswer.
type Active struct {
	Ordinal    int // questions answered so far
	Score      int
	Total      int
	Current    *questionbank.Item
	Module     curriculum.Module     // key Current was drawn from
	Difficulty curriculum.Difficulty // key Current was drawn from
}

// Complete is terminal.
type Complete struct {
	Score int
	Total int
}

func (Active) isState()   {}
func (Complete) isState() {}

// Header renders "Question n/total (Difficulty)" for the pending item.
func (a Active) Header() string {
	return fmt.Sprintf("Question %d/%d (%s)", a.Ordinal+1, a.Total, a.Difficulty.Label())
}

// Summary renders the final score.
func (c Complete) Summary() string {
	return fmt.Sprintf("Quiz Complete!\nYour Score: %d/%d", c.Score, c.Total)
}

var (
	// ErrInvalidTransition marks a transition requested from a state that
	// does not allow it. It signals a programming error in the caller.
	ErrInvalidTransition = errors.New("invalid quiz transition")

	ErrSessionComplete   = fmt.Errorf("%w: session is complete", ErrInvalidTransition)
	ErrQuestionPending   = fmt.Errorf("%w: a question is awaiting an answer", ErrInvalidTransition)
	ErrNoPendingQuestion = fmt.Errorf("%w: no question is pending", ErrInvalidTransition)

	// ErrInvalidLength is returned by Start for a quiz with no questions.
	ErrInvalidLength = errors.New("quiz length must be at least 1")

	// ErrCatalogExhausted means no (module, difficulty) pair in the bank has
	// items for the quiz's modules.
	ErrCatalogExhausted = errors.New("no quiz questions available")
)

// InvalidChoiceError is returned for an answer index outside the options.
type InvalidChoiceError struct {
	Choice  int
	Options int
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("choice %d out of range [0,%d)", e.Choice, e.Options)
}

// Start returns the initial state for a quiz of total questions.
func Start(total int) (Active, error) {
	if total < 1 {
		return Active{}, fmt.Errorf("%w: got %d", ErrInvalidLength, total)
	}
	return Active{Total: total}, nil
}

// NextQuestion draws the next item. Module and difficulty are chosen
// uniformly and independently of the learner's scores. Pairs are tried in a
// random permutation so an empty pair is never retried and the search ends
// after len(modules)*3 attempts.
func NextQuestion(st State, bank *questionbank.Bank, modules []curriculum.Module, r *rand.Rand) (State, error) {
	a, err := activeState(st)
	if err != nil {
		return st, err
	}
	if a.Current != nil {
		return st, ErrQuestionPending
	}

	diffs := curriculum.AllDifficulties()
	for _, i := range r.Perm(len(modules) * len(diffs)) {
		m, d := modules[i/len(diffs)], diffs[i%len(diffs)]
		item, err := bank.Draw(r, m, d)
		if err != nil {
			var empty *questionbank.EmptyCatalogError
			if errors.As(err, &empty) {
				continue
			}
			return st, err
		}
		a.Current = &item
		a.Module = m
		a.Difficulty = d
		return a, nil
	}
	return st, fmt.Errorf("%w: %w", ErrCatalogExhausted, &questionbank.EmptyCatalogError{})
}

// SubmitAnswer scores choice against the pending item. It reports whether
// the answer was correct. An out-of-range choice leaves the state unchanged.
func SubmitAnswer(st State, choice int) (State, bool, error) {
	a, err := activeState(st)
	if err != nil {
		return st, false, err
	}
	if a.Current == nil {
		return st, false, ErrNoPendingQuestion
	}
	if choice < 0 || choice >= len(a.Current.Options) {
		return st, false, &InvalidChoiceError{Choice: choice, Options: len(a.Current.Options)}
	}

	correct := a.Current.Correct(choice)
	if correct {
		a.Score++
	}
	a.Ordinal++
	a.Current = nil

	if a.Ordinal == a.Total {
		return Complete{Score: a.Score, Total: a.Total}, correct, nil
	}
	return a, correct, nil
}

func activeState(st State) (Active, error) {
	switch s := st.(type) {
	case Active:
		if s.Total < 1 || s.Ordinal >= s.Total {
			return Active{}, fmt.Errorf("%w: ordinal %d of %d", ErrInvalidTransition, s.Ordinal, s.Total)
		}
		return s, nil
	case Complete:
		return Active{}, ErrSessionComplete
	default:
		return Active{}, fmt.Errorf("%w: unknown state %T", ErrInvalidTransition, st)
	}
}
