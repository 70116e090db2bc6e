package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// минимальная длина осмысленного сообщения обратной связи
const feedbackMinLength = 3

// FeedbackService реализует прием обратной связи: команда /feedback
// взводит флаг ожидания, следующее текстовое сообщение сохраняется.
type FeedbackService struct {
	feedbacks repository.FeedbackRepository
	cache     repository.CacheRepository
	ttl       time.Duration
}

// NewFeedbackService создает новый сервис обратной связи
func NewFeedbackService(
	feedbacks repository.FeedbackRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
) *FeedbackService {
	return &FeedbackService{
		feedbacks: feedbacks,
		cache:     cache,
		ttl:       ttl,
	}
}

func (s *FeedbackService) flagKey(chatKey int64) string {
	return fmt.Sprintf("feedback:%d", chatKey)
}

// Begin взводит флаг ожидания текста обратной связи.
// Флаг истекает сам: забытый /feedback не перехватывает сообщения вечно.
func (s *FeedbackService) Begin(chatKey int64) error {
	return s.cache.SetJSON(s.flagKey(chatKey), true, s.ttl)
}

// Awaiting сообщает, ждет ли чат отправки обратной связи
func (s *FeedbackService) Awaiting(chatKey int64) (bool, error) {
	return s.cache.Exists(s.flagKey(chatKey))
}

// Cancel снимает флаг ожидания
func (s *FeedbackService) Cancel(chatKey int64) error {
	return s.cache.Delete(s.flagKey(chatKey))
}

// Submit сохраняет текст обратной связи и снимает флаг ожидания.
// Слишком короткий текст отклоняется, флаг остается взведенным.
func (s *FeedbackService) Submit(chat *entity.Chat, text string) (*entity.Feedback, error) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < feedbackMinLength {
		return nil, fmt.Errorf("%w: слишком короткое сообщение", apperrors.ErrValidation)
	}

	feedback := &entity.Feedback{
		Text:   text,
		ChatID: chat.ID,
	}
	if err := s.feedbacks.Create(feedback); err != nil {
		return nil, err
	}

	if err := s.Cancel(chat.TelegramID); err != nil {
		log.Printf("[FeedbackService] Не удалось снять флаг ожидания: %v (chat_key: %d)", err, chat.TelegramID)
	}

	log.Printf("[FeedbackService] Получена обратная связь от %s", chat.Label())
	return feedback, nil
}

// ListUnanswered возвращает обращения без ответа
func (s *FeedbackService) ListUnanswered() ([]entity.Feedback, error) {
	return s.feedbacks.ListUnanswered()
}
