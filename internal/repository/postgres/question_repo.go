package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос (вместе с прикрепленными картинками, если есть)
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch создает пакет вопросов в одной транзакции.
// Используется инструментом массового импорта.
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

// GetByID возвращает вопрос по ID вместе с автором и картинками
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Preload("Author").
		Preload("QuestionPicture").
		Preload("AnswerPicture").
		First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// AvailableIDs возвращает id опубликованных вопросов, доступных чату:
// автор отсутствует или не совпадает с чатом, id не входит в excludeIDs.
// Вопрос собственного авторства исключается для автора навсегда.
func (r *QuestionRepo) AvailableIDs(chatID uint, excludeIDs []uint) ([]uint, error) {
	query := r.db.Model(&entity.Question{}).
		Where("is_published = ?", true).
		Where("(author_id IS NULL OR author_id <> ?)", chatID)

	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// RecalculateRating пересчитывает рейтинг вопроса — долю ответивших
// среди всех отреагировавших. Показывается под текстом вопроса.
func (r *QuestionRepo) RecalculateRating(questionID uint) error {
	var total int64
	err := r.db.Model(&entity.Reaction{}).
		Where("question_id = ?", questionID).
		Count(&total).Error
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	var answered int64
	err = r.db.Model(&entity.Reaction{}).
		Where("question_id = ? AND answered_at IS NOT NULL", questionID).
		Count(&answered).Error
	if err != nil {
		return err
	}

	rating := int(answered * 100 / total)
	return r.db.Model(&entity.Question{}).
		Where("id = ?", questionID).
		Update("rating", rating).Error
}
