package service

import (
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// MockFeedbackRepo - мок для repository.FeedbackRepository
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(feedback *entity.Feedback) error {
	args := m.Called(feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepo) ListUnanswered() ([]entity.Feedback, error) {
	args := m.Called()
	if list, ok := args.Get(0).([]entity.Feedback); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
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

// fakeCache - кеш в памяти для тестов мастеров
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

// fakeFileStore запоминает сохраненные объекты в памяти
type fakeFileStore struct {
	saved map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: make(map[string][]byte)}
}

func (s *fakeFileStore) Save(key string, data []byte) error {
	s.saved[key] = data
	return nil
}
