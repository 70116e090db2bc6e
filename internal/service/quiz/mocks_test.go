package quiz

import (
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// MockChatRepo - мок для repository.ChatRepository
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) GetOrCreate(telegramID int64, title *string, initialBalance int) (*entity.Chat, error) {
	args := m.Called(telegramID, title, initialBalance)
	if chat, ok := args.Get(0).(*entity.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepo) GetByID(id uint) (*entity.Chat, error) {
	args := m.Called(id)
	if chat, ok := args.Get(0).(*entity.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepo) GetByTelegramID(telegramID int64) (*entity.Chat, error) {
	args := m.Called(telegramID)
	if chat, ok := args.Get(0).(*entity.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepo) DecreaseBalance(chatID uint) error {
	args := m.Called(chatID)
	return args.Error(0)
}

// MockQuestionRepo - мок для repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) CreateBatch(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if question, ok := args.Get(0).(*entity.Question); ok {
		return question, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionRepo) AvailableIDs(chatID uint, excludeIDs []uint) ([]uint, error) {
	args := m.Called(chatID, excludeIDs)
	if ids, ok := args.Get(0).([]uint); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionRepo) RecalculateRating(questionID uint) error {
	args := m.Called(questionID)
	return args.Error(0)
}

// MockReactionRepo - мок для repository.ReactionRepository
type MockReactionRepo struct {
	mock.Mock
}

func (m *MockReactionRepo) Find(chatID, questionID uint) (*entity.Reaction, error) {
	args := m.Called(chatID, questionID)
	if reaction, ok := args.Get(0).(*entity.Reaction); ok {
		return reaction, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReactionRepo) RecordOutcome(chatID, questionID uint, outcome entity.Outcome) error {
	args := m.Called(chatID, questionID, outcome)
	return args.Error(0)
}

func (m *MockReactionRepo) ReactedQuestionIDs(chatID uint) ([]uint, error) {
	args := m.Called(chatID)
	if ids, ok := args.Get(0).([]uint); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReactionRepo) UnresolvedQuestionIDs(chatID uint) ([]uint, error) {
	args := m.Called(chatID)
	if ids, ok := args.Get(0).([]uint); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeTxManager выполняет fn над переданными репозиториями без настоящей
// транзакции, подсчитывая вызовы
type fakeTxManager struct {
	repos repository.TxRepos
	calls int
}

func (m *fakeTxManager) WithinTx(fn func(r repository.TxRepos) error) error {
	m.calls++
	return fn(m.repos)
}

// fakeCache - кеш в памяти для тестов движка
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) SetJSON(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = data
	return nil
}

func (c *fakeCache) GetJSON(key string, dest interface{}) error {
	data, ok := c.data[key]
	if !ok {
		return apperrors.ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Delete(key string) error {
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Exists(key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}
