package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

func newProposalFixture() (*ProposalService, *MockQuestionRepo, *fakeFileStore) {
	mockQuestions := new(MockQuestionRepo)
	store := newFakeFileStore()
	svc := NewProposalService(mockQuestions, newFakeCache(), store, 30*time.Minute)
	return svc, mockQuestions, store
}

func TestProposalService_FullFlow(t *testing.T) {
	// Arrange
	svc, mockQuestions, _ := newProposalFixture()
	chat := &entity.Chat{ID: 1, TelegramID: 100}
	require.NoError(t, svc.Begin(100))

	mockQuestions.On("Create", mock.MatchedBy(func(q *entity.Question) bool {
		return q.Text == "Столица Австралии?" &&
			q.Answer == "Канберра" &&
			q.Comment != nil && *q.Comment == "Не Сидней" &&
			q.AuthorID != nil && *q.AuthorID == 1 &&
			!q.IsPublished
	})).Return(nil)

	// Act: вопрос -> ответ -> комментарий
	result, err := svc.HandleText(chat, "Столица Австралии?")
	require.NoError(t, err)
	assert.Equal(t, StepAnswer, result.NextStep)

	result, err = svc.HandleText(chat, "Канберра")
	require.NoError(t, err)
	assert.Equal(t, StepComment, result.NextStep)

	result, err = svc.HandleText(chat, "Не Сидней")

	// Assert: вопрос сохранен неопубликованным за авторством чата
	require.NoError(t, err)
	assert.True(t, result.Done)
	mockQuestions.AssertExpectations(t)

	active, err := svc.Active(100)
	require.NoError(t, err)
	assert.False(t, active, "после сохранения мастер должен завершиться")
}

func TestProposalService_SkipComment(t *testing.T) {
	// Arrange
	svc, mockQuestions, _ := newProposalFixture()
	chat := &entity.Chat{ID: 1, TelegramID: 100}
	require.NoError(t, svc.Begin(100))

	mockQuestions.On("Create", mock.MatchedBy(func(q *entity.Question) bool {
		return q.Comment == nil
	})).Return(nil)

	_, err := svc.HandleText(chat, "Вопрос без комментария?")
	require.NoError(t, err)
	_, err = svc.HandleText(chat, "Ответ")
	require.NoError(t, err)

	// Act: «-» пропускает комментарий
	result, err := svc.HandleText(chat, "-")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Done)
	mockQuestions.AssertExpectations(t)
}

func TestProposalService_TooShortQuestion(t *testing.T) {
	// Arrange
	svc, mockQuestions, _ := newProposalFixture()
	chat := &entity.Chat{ID: 1, TelegramID: 100}
	require.NoError(t, svc.Begin(100))

	// Act
	result, err := svc.HandleText(chat, "а?")

	// Assert: мастер остается на первом шаге
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockQuestions.AssertNotCalled(t, "Create", mock.Anything)

	active, err := svc.Active(100)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestProposalService_AttachPhoto(t *testing.T) {
	// Arrange
	svc, mockQuestions, store := newProposalFixture()
	chat := &entity.Chat{ID: 1, TelegramID: 100}
	require.NoError(t, svc.Begin(100))

	var created *entity.Question
	mockQuestions.On("Create", mock.AnythingOfType("*entity.Question")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*entity.Question)
	}).Return(nil)

	// Act: картинка к вопросу до текста, картинка к ответу после
	require.NoError(t, svc.AttachPhoto(100, []byte("question-bytes"), ".jpg"))
	_, err := svc.HandleText(chat, "Что на картинке?")
	require.NoError(t, err)

	require.NoError(t, svc.AttachPhoto(100, []byte("answer-bytes"), ".jpg"))
	_, err = svc.HandleText(chat, "Канберра")
	require.NoError(t, err)
	result, err := svc.HandleText(chat, "-")
	require.NoError(t, err)
	require.True(t, result.Done)

	// Assert: обе картинки сохранены под разными ключами
	require.NotNil(t, created)
	require.NotNil(t, created.QuestionPicture)
	require.NotNil(t, created.AnswerPicture)
	assert.NotEqual(t, *created.QuestionPicture.Path, *created.AnswerPicture.Path)
	assert.Len(t, store.saved, 2)
	for key := range store.saved {
		assert.Contains(t, key, ".jpg", "ключ объекта должен сохранять расширение")
	}
}

func TestProposalService_Cancel(t *testing.T) {
	svc, _, _ := newProposalFixture()
	require.NoError(t, svc.Begin(100))

	require.NoError(t, svc.Cancel(100))

	active, err := svc.Active(100)
	require.NoError(t, err)
	assert.False(t, active)
}
