package repository

import (
	"github.com/yourusername/quiz-bot/internal/domain/entity"
)

// FeedbackRepository определяет методы для работы с обратной связью
type FeedbackRepository interface {
	Create(feedback *entity.Feedback) error
	ListUnanswered() ([]entity.Feedback, error)
}
