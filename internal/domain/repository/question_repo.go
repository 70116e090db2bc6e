package repository

import (
	"github.com/yourusername/quiz-bot/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	// AvailableIDs возвращает id опубликованных вопросов, не авторства
	// данного чата и не входящих в excludeIDs
	AvailableIDs(chatID uint, excludeIDs []uint) ([]uint, error)
	// RecalculateRating пересчитывает долю ответивших среди отреагировавших
	RecalculateRating(questionID uint) error
}
