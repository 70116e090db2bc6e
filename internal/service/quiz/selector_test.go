package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
)

func TestSelector_Next_FreshQuestions(t *testing.T) {
	// Arrange
	mockQuestions := new(MockQuestionRepo)
	mockReactions := new(MockReactionRepo)
	selector := NewSelector(mockQuestions, mockReactions)

	chat := &entity.Chat{ID: 1, TelegramID: 100}
	reacted := []uint{5, 6}

	mockReactions.On("ReactedQuestionIDs", uint(1)).Return(reacted, nil)
	mockQuestions.On("AvailableIDs", uint(1), reacted).Return([]uint{7}, nil)
	mockQuestions.On("GetByID", uint(7)).Return(&entity.Question{ID: 7, Text: "Вопрос", Answer: "Ответ"}, nil)

	// Act
	question, err := selector.Next(chat)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, uint(7), question.ID)
	mockReactions.AssertNotCalled(t, "UnresolvedQuestionIDs", mock.Anything)
	mockQuestions.AssertExpectations(t)
}

func TestSelector_Next_RecyclesSkipped(t *testing.T) {
	// Arrange: свежих вопросов нет, вопрос 5 отвечен, вопрос 6 пропущен
	mockQuestions := new(MockQuestionRepo)
	mockReactions := new(MockReactionRepo)
	selector := NewSelector(mockQuestions, mockReactions)

	chat := &entity.Chat{ID: 1, TelegramID: 100}

	mockReactions.On("ReactedQuestionIDs", uint(1)).Return([]uint{5, 6}, nil)
	mockQuestions.On("AvailableIDs", uint(1), []uint{5, 6}).Return([]uint{}, nil)
	mockReactions.On("UnresolvedQuestionIDs", uint(1)).Return([]uint{6}, nil)
	// Второй проход исключает только закрытые вопросы
	mockQuestions.On("AvailableIDs", uint(1), []uint{5}).Return([]uint{6}, nil)
	mockQuestions.On("GetByID", uint(6)).Return(&entity.Question{ID: 6}, nil)

	// Act
	question, err := selector.Next(chat)

	// Assert: пропущенный вопрос вернулся в ротацию, отвеченный - нет
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, uint(6), question.ID)
	mockQuestions.AssertExpectations(t)
	mockReactions.AssertExpectations(t)
}

func TestSelector_Next_Exhausted(t *testing.T) {
	// Arrange: оба прохода пусты
	mockQuestions := new(MockQuestionRepo)
	mockReactions := new(MockReactionRepo)
	selector := NewSelector(mockQuestions, mockReactions)

	chat := &entity.Chat{ID: 1, TelegramID: 100}

	mockReactions.On("ReactedQuestionIDs", uint(1)).Return([]uint{5}, nil)
	mockQuestions.On("AvailableIDs", uint(1), []uint{5}).Return([]uint{}, nil)
	mockReactions.On("UnresolvedQuestionIDs", uint(1)).Return([]uint{}, nil)
	mockQuestions.On("AvailableIDs", uint(1), []uint{5}).Return([]uint{}, nil)

	// Act
	question, err := selector.Next(chat)

	// Assert: исчерпание - не ошибка
	require.NoError(t, err)
	assert.Nil(t, question, "при исчерпании пула должен возвращаться nil")
}

func TestSelector_Next_PicksFromCandidates(t *testing.T) {
	// Arrange
	mockQuestions := new(MockQuestionRepo)
	mockReactions := new(MockReactionRepo)
	selector := NewSelector(mockQuestions, mockReactions)

	chat := &entity.Chat{ID: 1, TelegramID: 100}
	candidates := map[uint]bool{3: true, 4: true, 9: true}

	mockReactions.On("ReactedQuestionIDs", uint(1)).Return([]uint{}, nil)
	mockQuestions.On("AvailableIDs", uint(1), []uint{}).Return([]uint{3, 4, 9}, nil)
	for id := range candidates {
		id := id
		mockQuestions.On("GetByID", id).Return(&entity.Question{ID: id}, nil).Maybe()
	}

	// Act: выбор случайный, проверяем принадлежность множеству кандидатов
	for i := 0; i < 20; i++ {
		question, err := selector.Next(chat)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.True(t, candidates[question.ID], "выбранный вопрос должен быть из множества кандидатов")
	}
}

func TestSelector_Next_StoreError(t *testing.T) {
	// Arrange
	mockQuestions := new(MockQuestionRepo)
	mockReactions := new(MockReactionRepo)
	selector := NewSelector(mockQuestions, mockReactions)

	chat := &entity.Chat{ID: 1, TelegramID: 100}
	storeErr := errors.New("connection refused")

	mockReactions.On("ReactedQuestionIDs", uint(1)).Return(nil, storeErr)

	// Act
	question, err := selector.Next(chat)

	// Assert: ошибка хранилища передается наверх без повторных попыток
	assert.Nil(t, question)
	assert.ErrorIs(t, err, storeErr)
}

func TestSubtract(t *testing.T) {
	assert.Equal(t, []uint{1, 3}, subtract([]uint{1, 2, 3}, []uint{2}))
	assert.Equal(t, []uint{1, 2, 3}, subtract([]uint{1, 2, 3}, []uint{}))
	assert.Empty(t, subtract([]uint{1, 2}, []uint{1, 2}))
}
