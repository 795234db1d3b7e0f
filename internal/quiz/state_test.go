package quiz

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/questionbank"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func mustStart(t *testing.T, total int) Active {
	t.Helper()
	a, err := Start(total)
	if err != nil {
		t.Fatalf("Start(%d): %v", total, err)
	}
	return a
}

func mustNext(t *testing.T, st State, r *rand.Rand) Active {
	t.Helper()
	next, err := NextQuestion(st, questionbank.Default(), curriculum.AllModules(), r)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	a, ok := next.(Active)
	if !ok || a.Current == nil {
		t.Fatalf("expected Active with pending item, got %#v", next)
	}
	return a
}

func TestStart(t *testing.T) {
	a := mustStart(t, 5)
	if a.Ordinal != 0 || a.Score != 0 || a.Total != 5 || a.Current != nil {
		t.Errorf("unexpected initial state: %+v", a)
	}
}

func TestStart_RejectsEmptyQuiz(t *testing.T) {
	for _, total := range []int{0, -1, -10} {
		if _, err := Start(total); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("Start(%d): expected ErrInvalidLength, got %v", total, err)
		}
	}
}

func TestTransitions_RejectOrdinalPastTotal(t *testing.T) {
	bank := questionbank.Default()
	for _, a := range []Active{{Total: 0}, {Ordinal: 3, Score: 3, Total: 3}, {Ordinal: 4, Total: 3}} {
		if _, err := NextQuestion(a, bank, curriculum.AllModules(), testRand(1)); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("NextQuestion(%+v): expected ErrInvalidTransition, got %v", a, err)
		}
		item := bank.Catalog()[curriculum.DataStructures][curriculum.Easy][0]
		a.Current = &item
		if _, _, err := SubmitAnswer(a, item.Answer); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("SubmitAnswer(%+v): expected ErrInvalidTransition, got %v", a, err)
		}
	}
}

func TestNextQuestion_OnlyDrawsNonEmptyPairs(t *testing.T) {
	r := testRand(3)
	for i := 0; i < 200; i++ {
		a := mustNext(t, mustStart(t, 5), r)
		if a.Module != curriculum.DataStructures {
			t.Fatalf("drew from empty module %q", a.Module)
		}
		if a.Ordinal != 0 || a.Score != 0 {
			t.Fatalf("NextQuestion changed counters: %+v", a)
		}
	}
}

func TestNextQuestion_CoversAllPopulatedTiers(t *testing.T) {
	r := testRand(5)
	seen := map[curriculum.Difficulty]bool{}
	for i := 0; i < 300; i++ {
		seen[mustNext(t, mustStart(t, 1), r).Difficulty] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all three tiers over 300 draws, got %v", seen)
	}
}

func TestNextQuestion_RejectsPending(t *testing.T) {
	a := mustNext(t, mustStart(t, 5), testRand(1))
	_, err := NextQuestion(a, questionbank.Default(), curriculum.AllModules(), testRand(1))
	if !errors.Is(err, ErrQuestionPending) || !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrQuestionPending, got %v", err)
	}
}

func TestNextQuestion_NoContentIsFatal(t *testing.T) {
	_, err := NextQuestion(mustStart(t, 5), questionbank.Default(),
		[]curriculum.Module{curriculum.DBMS, curriculum.Algorithms}, testRand(1))
	if !errors.Is(err, ErrCatalogExhausted) {
		t.Fatalf("expected ErrCatalogExhausted, got %v", err)
	}
	var empty *questionbank.EmptyCatalogError
	if !errors.As(err, &empty) {
		t.Fatalf("expected wrapped EmptyCatalogError, got %v", err)
	}
}

func TestSubmitAnswer_CorrectAndIncorrect(t *testing.T) {
	a := mustNext(t, mustStart(t, 3), testRand(9))
	st, correct, err := SubmitAnswer(a, a.Current.Answer)
	if err != nil || !correct {
		t.Fatalf("expected correct answer, got %v, %v", correct, err)
	}
	got := st.(Active)
	if got.Score != 1 || got.Ordinal != 1 || got.Current != nil {
		t.Fatalf("unexpected state after correct answer: %+v", got)
	}

	a = mustNext(t, got, testRand(10))
	wrong := (a.Current.Answer + 1) % len(a.Current.Options)
	st, correct, err = SubmitAnswer(a, wrong)
	if err != nil || correct {
		t.Fatalf("expected incorrect answer, got %v, %v", correct, err)
	}
	got = st.(Active)
	if got.Score != 1 || got.Ordinal != 2 {
		t.Fatalf("unexpected state after wrong answer: %+v", got)
	}
}

func TestSubmitAnswer_OnlyAnswerIndexScores(t *testing.T) {
	a := mustNext(t, mustStart(t, 2), testRand(11))
	for choice := range a.Current.Options {
		st, correct, err := SubmitAnswer(a, choice)
		if err != nil {
			t.Fatalf("choice %d: %v", choice, err)
		}
		want := 0
		if choice == a.Current.Answer {
			want = 1
		}
		if correct != (want == 1) || st.(Active).Score != want || st.(Active).Ordinal != 1 {
			t.Errorf("choice %d: correct=%v state=%+v", choice, correct, st)
		}
	}
}

func TestSubmitAnswer_InvalidChoiceLeavesStateUnchanged(t *testing.T) {
	a := mustNext(t, mustStart(t, 5), testRand(2))
	for _, choice := range []int{-1, len(a.Current.Options)} {
		st, _, err := SubmitAnswer(a, choice)
		var inv *InvalidChoiceError
		if !errors.As(err, &inv) {
			t.Fatalf("choice %d: expected InvalidChoiceError, got %v", choice, err)
		}
		if st.(Active) != a {
			t.Fatalf("choice %d: state changed", choice)
		}
	}
}

func TestSubmitAnswer_WithoutPending(t *testing.T) {
	_, _, err := SubmitAnswer(mustStart(t, 5), 0)
	if !errors.Is(err, ErrNoPendingQuestion) {
		t.Fatalf("expected ErrNoPendingQuestion, got %v", err)
	}
}

func TestFullRun_AllCorrect(t *testing.T) {
	r := testRand(4)
	var st State = mustStart(t, 5)
	for i := 0; i < 5; i++ {
		a := mustNext(t, st, r)
		if a.Ordinal != i {
			t.Fatalf("ordinal = %d, want %d", a.Ordinal, i)
		}
		var err error
		st, _, err = SubmitAnswer(a, a.Current.Answer)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if act, ok := st.(Active); ok && !(0 <= act.Score && act.Score <= act.Ordinal && act.Ordinal <= act.Total) {
			t.Fatalf("counter invariant broken: %+v", act)
		}
	}
	c, ok := st.(Complete)
	if !ok {
		t.Fatalf("expected Complete, got %#v", st)
	}
	if c.Score != 5 || c.Total != 5 {
		t.Errorf("unexpected result: %+v", c)
	}
	if c.Summary() != "Quiz Complete!\nYour Score: 5/5" {
		t.Errorf("Summary = %q", c.Summary())
	}

	if _, err := NextQuestion(c, questionbank.Default(), curriculum.AllModules(), r); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("expected ErrSessionComplete from NextQuestion, got %v", err)
	}
	if _, _, err := SubmitAnswer(c, 0); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("expected ErrSessionComplete from SubmitAnswer, got %v", err)
	}
}

func TestHeader(t *testing.T) {
	a := Active{Ordinal: 1, Total: 5, Difficulty: curriculum.Medium}
	if a.Header() != "Question 2/5 (Medium)" {
		t.Errorf("Header = %q", a.Header())
	}
}
