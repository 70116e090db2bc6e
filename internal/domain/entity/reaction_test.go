package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaction_Apply(t *testing.T) {
	// Arrange
	reaction := &Reaction{ChatID: 1, QuestionID: 7}
	skipTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	answerTime := skipTime.Add(time.Hour)

	// Act
	reaction.Apply(OutcomeSkipped, skipTime)

	// Assert
	require.NotNil(t, reaction.SkippedAt)
	assert.Equal(t, skipTime, *reaction.SkippedAt)
	assert.Nil(t, reaction.AnsweredAt)
	assert.Nil(t, reaction.GaveUpAt)

	// Act: следующий исход не стирает предыдущую отметку
	reaction.Apply(OutcomeAnswered, answerTime)

	// Assert
	require.NotNil(t, reaction.AnsweredAt)
	assert.Equal(t, answerTime, *reaction.AnsweredAt)
	assert.Equal(t, skipTime, *reaction.SkippedAt, "отметка пропуска должна сохраниться")
}

func TestReaction_Resolved(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Reaction{}).Resolved())
	assert.False(t, (&Reaction{SkippedAt: &now}).Resolved(), "пропуск не закрывает вопрос")
	assert.True(t, (&Reaction{AnsweredAt: &now}).Resolved())
	assert.True(t, (&Reaction{GaveUpAt: &now}).Resolved())
	assert.True(t, (&Reaction{SkippedAt: &now, GaveUpAt: &now}).Resolved())
}
