package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
)

// FeedbackRepo реализует repository.FeedbackRepository
type FeedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepo создает новый репозиторий обратной связи
func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Create сохраняет сообщение обратной связи
func (r *FeedbackRepo) Create(feedback *entity.Feedback) error {
	return r.db.Create(feedback).Error
}

// ListUnanswered возвращает сообщения без ответа администрации
func (r *FeedbackRepo) ListUnanswered() ([]entity.Feedback, error) {
	var feedbacks []entity.Feedback
	err := r.db.Preload("Chat").
		Where("response IS NULL").
		Order("created_at").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}
