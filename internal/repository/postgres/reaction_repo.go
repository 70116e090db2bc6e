package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// ReactionRepo реализует repository.ReactionRepository
type ReactionRepo struct {
	db *gorm.DB
}

// NewReactionRepo создает новый репозиторий реакций
func NewReactionRepo(db *gorm.DB) *ReactionRepo {
	return &ReactionRepo{db: db}
}

// Find возвращает реакцию пары (чат, вопрос)
func (r *ReactionRepo) Find(chatID, questionID uint) (*entity.Reaction, error) {
	var reaction entity.Reaction
	err := r.db.Where("chat_id = ? AND question_id = ?", chatID, questionID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &reaction, nil
}

// RecordOutcome создает реакцию с отметкой указанного исхода либо проставляет
// отметку в существующей строке. Отметки других исходов не трогаются.
// Дубликат вставки при гонке (повторная доставка вебхука) гасится уникальным
// ограничением (chat_id, question_id) и превращается в обновление той же строки.
func (r *ReactionRepo) RecordOutcome(chatID, questionID uint, outcome entity.Outcome) error {
	column, err := outcomeColumn(outcome)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	var reaction entity.Reaction
	err = r.db.Where("chat_id = ? AND question_id = ?", chatID, questionID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reaction = entity.Reaction{ChatID: chatID, QuestionID: questionID}
		reaction.Apply(outcome, now)
		err = r.db.Create(&reaction).Error
		if isUniqueViolation(err) {
			return r.setOutcome(chatID, questionID, column, now)
		}
		return err
	}
	if err != nil {
		return err
	}

	return r.setOutcome(chatID, questionID, column, now)
}

func (r *ReactionRepo) setOutcome(chatID, questionID uint, column string, now time.Time) error {
	return r.db.Model(&entity.Reaction{}).
		Where("chat_id = ? AND question_id = ?", chatID, questionID).
		Update(column, now).Error
}

// ReactedQuestionIDs возвращает id вопросов с любой реакцией чата —
// исключающий набор первого прохода выбора вопроса
func (r *ReactionRepo) ReactedQuestionIDs(chatID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Reaction{}).
		Where("chat_id = ?", chatID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UnresolvedQuestionIDs возвращает id вопросов с реакцией, но без отметок
// answered/gave_up — то есть только пропущенных. Эти вопросы возвращаются
// в ротацию вторым проходом.
func (r *ReactionRepo) UnresolvedQuestionIDs(chatID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Reaction{}).
		Where("chat_id = ? AND answered_at IS NULL AND gave_up_at IS NULL", chatID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func outcomeColumn(outcome entity.Outcome) (string, error) {
	switch outcome {
	case entity.OutcomeAnswered:
		return "answered_at", nil
	case entity.OutcomeSkipped:
		return "skipped_at", nil
	case entity.OutcomeGaveUp:
		return "gave_up_at", nil
	default:
		return "", fmt.Errorf("%w: unknown outcome %q", apperrors.ErrValidation, outcome)
	}
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального
// ограничения PostgreSQL (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
