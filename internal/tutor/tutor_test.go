package tutor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnbot/internal/chat"
	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/i18n"
	"github.com/abhisek/learnbot/internal/questionbank"
	"github.com/abhisek/learnbot/internal/quiz"
	"github.com/abhisek/learnbot/internal/roster"
)

func newTutor(t *testing.T, learner int) *Tutor {
	t.Helper()
	tu, err := New(Config{
		Roster:    roster.Default(),
		Bank:      questionbank.Default(),
		Chat:      chat.NewAdapter(nil, nil),
		LearnerID: learner,
		Rand:      rand.New(rand.NewPCG(7, 11)),
		Now:       func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)
	return tu
}

func TestNew_UnknownLearner(t *testing.T) {
	_, err := New(Config{
		Roster:    roster.Default(),
		Bank:      questionbank.Default(),
		Chat:      chat.NewAdapter(nil, nil),
		LearnerID: 42,
	})
	var unknown *roster.UnknownLearnerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 42, unknown.ID)
	assert.Equal(t, "Learner 42 was not found.", UserMessage(err))
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{Roster: roster.Default(), LearnerID: 1})
	assert.Error(t, err)
}

func TestProgressAndLanguage(t *testing.T) {
	tu := newTutor(t, 1)
	assert.Equal(t, 1, tu.LearnerID())
	assert.Equal(t, i18n.Tamil, tu.Language())
	assert.Equal(t, 75, tu.Progress().Score(curriculum.DBMS))
	assert.Equal(t, []string{
		"Data Structures: 85%",
		"Algorithms: 78%",
		"Operating Systems: 92%",
		"Dbms: 75%",
		"Computer Networks: 82%",
	}, tu.ProgressLines())
}

func TestSuggestContent_Localized(t *testing.T) {
	assert.Equal(t,
		"[Tamil Translation]: Suggested content for Dbms: Learn basic concepts of dbms.",
		newTutor(t, 1).SuggestContent())
	assert.Equal(t,
		"[Hindi Translation]: Suggested content for Computer Networks: Learn basic concepts of computer networks.",
		newTutor(t, 2).SuggestContent())
	assert.Equal(t,
		"[Telugu Translation]: Suggested content for Algorithms: Learn basic concepts of algorithms.",
		newTutor(t, 3).SuggestContent())
}

func TestPersonalizedFeedback_Localized(t *testing.T) {
	assert.Equal(t,
		"[Tamil Translation]: Excellent in Data Structures Good progress in Algorithms "+
			"Excellent in Operating Systems Good progress in Dbms Excellent in Computer Networks",
		newTutor(t, 1).PersonalizedFeedback())
}

func TestAdaptiveQuestion_NotLocalized(t *testing.T) {
	q := newTutor(t, 1).AdaptiveQuestion()
	assert.True(t, strings.HasPrefix(q, "Question difficulty: medium. Question: What is the advanced concept in "), q)
	assert.True(t, strings.HasSuffix(q, "?"))
	assert.NotContains(t, q, "Translation")
}

func TestStartQuiz_RecordsOnceOnCompletion(t *testing.T) {
	tu := newTutor(t, 1)

	s, err := tu.StartQuiz()
	require.NoError(t, err)
	for !s.Done() {
		item, err := s.Next()
		require.NoError(t, err)
		_, err = s.Answer(item.Answer)
		require.NoError(t, err)
	}

	acts := tu.Activities()
	require.Len(t, acts, 1)
	assert.Equal(t, "quiz", acts[0].Kind)
	assert.Equal(t, quiz.DefaultLength, acts[0].Score)
	assert.Equal(t, quiz.DefaultLength, acts[0].Total)
	assert.Equal(t, s.ID(), acts[0].SessionID)

	_, err = s.Next()
	assert.ErrorIs(t, err, quiz.ErrSessionComplete)
	assert.Len(t, tu.Activities(), 1)
}

func TestStartQuiz_AbandonedWritesNothing(t *testing.T) {
	tu := newTutor(t, 2)
	s, err := tu.StartQuiz()
	require.NoError(t, err)
	_, err = s.Next()
	require.NoError(t, err)
	assert.Empty(t, tu.Activities())
}

func TestAsk_Unavailable(t *testing.T) {
	tu := newTutor(t, 1)
	assert.False(t, tu.ChatAvailable())
	for _, q := range []string{"", "   ", "what is a heap?"} {
		assert.Equal(t, chat.UnavailableMessage, tu.Ask(context.Background(), q), "question %q", q)
	}
	assert.Equal(t, chat.Exchange{Question: "", Response: chat.UnavailableMessage}, tu.Exchange(context.Background(), ""))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("draw: %w", quiz.ErrCatalogExhausted), "No quiz questions are available right now."},
		{&questionbank.EmptyCatalogError{}, "No quiz questions are available right now."},
		{&quiz.InvalidChoiceError{Choice: 9, Options: 4}, "Please choose an option between 1 and 4."},
		{quiz.ErrSessionComplete, "This quiz is already complete."},
		{quiz.ErrQuestionPending, "That action is not available right now."},
		{errors.New("disk on fire"), "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UserMessage(tt.err))
	}
}
