package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnbot/internal/questionbank"
)

func newTestSession(t *testing.T, log *ActivityLog, total int) *Session {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s, err := NewSession(SessionConfig{
		Total: total,
		Bank:  questionbank.Default(),
		Rand:  testRand(42),
		Log:   log,
		Now:   func() time.Time { return now },
	})
	require.NoError(t, err)
	return s
}

func TestSession_RecordsResultOnce(t *testing.T) {
	log := &ActivityLog{}
	s := newTestSession(t, log, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, log.Len(), "nothing recorded before completion")
		item, err := s.Next()
		require.NoError(t, err)
		choice := item.Answer
		if i%2 == 1 {
			choice = (item.Answer + 1) % len(item.Options)
		}
		_, err = s.Answer(choice)
		require.NoError(t, err)
	}

	require.True(t, s.Done())
	results := log.Results()
	require.Len(t, results, 1)
	assert.Equal(t, s.ID(), results[0].SessionID)
	assert.Equal(t, "quiz", results[0].Kind)
	assert.Equal(t, 3, results[0].Score)
	assert.Equal(t, 5, results[0].Total)
	assert.Equal(t, 2026, results[0].CompletedAt.Year())

	// Reading the completed state again does not duplicate the entry.
	_ = s.State()
	_, err := s.Answer(0)
	assert.True(t, errors.Is(err, ErrSessionComplete))
	assert.Equal(t, 1, log.Len())
}

func TestSession_AbandonedWritesNothing(t *testing.T) {
	log := &ActivityLog{}
	s := newTestSession(t, log, 5)
	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Answer(0)
	require.NoError(t, err)
	assert.False(t, s.Done())
	assert.Equal(t, 0, log.Len())
}

func TestSession_InvalidChoiceKeepsQuestion(t *testing.T) {
	s := newTestSession(t, &ActivityLog{}, 2)
	item, err := s.Next()
	require.NoError(t, err)

	_, err = s.Answer(len(item.Options))
	var inv *InvalidChoiceError
	require.True(t, errors.As(err, &inv))

	a := s.State().(Active)
	require.NotNil(t, a.Current)
	assert.Equal(t, item.Question, a.Current.Question)
}

func TestSession_SharedLogAcrossSessions(t *testing.T) {
	log := &ActivityLog{}
	for n := 0; n < 2; n++ {
		s := newTestSession(t, log, 1)
		item, err := s.Next()
		require.NoError(t, err)
		_, err = s.Answer(item.Answer)
		require.NoError(t, err)
	}
	results := log.Results()
	require.Len(t, results, 2)
	assert.NotEqual(t, results[0].SessionID, results[1].SessionID)
}

func TestNewSession_Validation(t *testing.T) {
	_, err := NewSession(SessionConfig{Log: &ActivityLog{}})
	assert.Error(t, err)
	_, err = NewSession(SessionConfig{Bank: questionbank.Default()})
	assert.Error(t, err)
	_, err = NewSession(SessionConfig{Bank: questionbank.Default(), Log: &ActivityLog{}, Total: -1})
	assert.Error(t, err)

	s, err := NewSession(SessionConfig{Bank: questionbank.Default(), Log: &ActivityLog{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultLength, s.State().(Active).Total)
}
