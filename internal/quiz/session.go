package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/logger"
	"github.com/abhisek/learnbot/internal/questionbank"
)

// Result is the activity entry written when a quiz completes.
type Result struct {
	SessionID   string
	Kind        string // always "quiz"
	Score       int
	Total       int
	CompletedAt time.Time
}

// ActivityLog is an append-only list of completed quiz results.
type ActivityLog struct {
	mu      sync.Mutex
	results []Result
}

func (l *ActivityLog) append(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, r)
}

// Results returns a copy of the log, oldest first.
func (l *ActivityLog) Results() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Result(nil), l.results...)
}

func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.results)
}

// SessionConfig wires a Session's collaborators.
type SessionConfig struct {
	Total   int
	Bank    *questionbank.Bank
	Modules []curriculum.Module
	Rand    *rand.Rand
	Log     *ActivityLog
	Now     func() time.Time
	Logger  *logger.Logger
}

// Session owns one quiz run. It is not safe for concurrent use.
type Session struct {
	id       string
	state    State
	cfg      SessionConfig
	recorded bool
}

// NewSession starts a quiz. Zero-valued config fields get defaults: the
// canonical module list, a time-seeded rand, time.Now, a no-op logger and
// DefaultLength questions.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Bank == nil {
		return nil, errors.New("quiz: bank is required")
	}
	if cfg.Log == nil {
		return nil, errors.New("quiz: activity log is required")
	}
	if cfg.Total == 0 {
		cfg.Total = DefaultLength
	}
	start, err := Start(cfg.Total)
	if err != nil {
		return nil, fmt.Errorf("quiz: %w", err)
	}
	if len(cfg.Modules) == 0 {
		cfg.Modules = curriculum.AllModules()
	}
	if cfg.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	id := uuid.NewString()
	cfg.Logger = cfg.Logger.With("quiz_session", id)
	return &Session{id: id, state: start, cfg: cfg}, nil
}

func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Done reports whether the quiz is complete.
func (s *Session) Done() bool {
	_, ok := s.state.(Complete)
	return ok
}

// Next draws the next question.
func (s *Session) Next() (questionbank.Item, error) {
	st, err := NextQuestion(s.state, s.cfg.Bank, s.cfg.Modules, s.cfg.Rand)
	if err != nil {
		return questionbank.Item{}, err
	}
	s.state = st
	a := st.(Active)
	s.cfg.Logger.Debug("question drawn", "module", a.Module, "difficulty", a.Difficulty, "ordinal", a.Ordinal)
	return *a.Current, nil
}

// Answer submits choice for the pending question. When this answer
// completes the quiz, the result is appended to the activity log.
func (s *Session) Answer(choice int) (bool, error) {
	st, correct, err := SubmitAnswer(s.state, choice)
	if err != nil {
		return false, err
	}
	s.state = st
	if c, ok := st.(Complete); ok {
		s.record(c)
	}
	return correct, nil
}

// record appends the result once, no matter how often it is called.
func (s *Session) record(c Complete) {
	if s.recorded {
		return
	}
	s.recorded = true
	s.cfg.Log.append(Result{
		SessionID:   s.id,
		Kind:        "quiz",
		Score:       c.Score,
		Total:       c.Total,
		CompletedAt: s.cfg.Now(),
	})
	s.cfg.Logger.Info("quiz complete", "score", c.Score, "total", c.Total)
}
