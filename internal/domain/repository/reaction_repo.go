package repository

import (
	"github.com/yourusername/quiz-bot/internal/domain/entity"
)

// ReactionRepository определяет методы для работы с реакциями —
// записями об исходах (чат, вопрос)
type ReactionRepository interface {
	// Find возвращает реакцию пары (чат, вопрос) или apperrors.ErrNotFound
	Find(chatID, questionID uint) (*entity.Reaction, error)
	// RecordOutcome — идемпотентный upsert: создает строку с единственной
	// отметкой исхода либо проставляет отметку в существующей строке,
	// не трогая остальные. Гонка параллельной вставки гасится уникальным
	// ограничением (chat_id, question_id), а не обработкой постфактум.
	RecordOutcome(chatID, questionID uint, outcome entity.Outcome) error
	// ReactedQuestionIDs возвращает id вопросов, на которые чат реагировал
	// хоть как-то. Источник фильтра первого прохода выбора.
	ReactedQuestionIDs(chatID uint) ([]uint, error)
	// UnresolvedQuestionIDs возвращает id вопросов с реакцией, но без
	// отметок answered/gave_up — только пропущенные. Источник фильтра
	// второго прохода: такие вопросы возвращаются в ротацию.
	UnresolvedQuestionIDs(chatID uint) ([]uint, error)
}
