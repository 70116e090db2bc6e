package quiz

import (
	"math/rand"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/domain/repository"
)

// Selector выбирает следующий вопрос для участника.
// Первый проход исключает все вопросы, на которые участник уже реагировал;
// когда свежие вопросы закончились, второй проход возвращает в ротацию
// только пропущенные. Отвеченные и сданные вопросы не повторяются никогда.
type Selector struct {
	questions repository.QuestionRepository
	reactions repository.ReactionRepository
}

// NewSelector создает новый селектор вопросов
func NewSelector(questions repository.QuestionRepository, reactions repository.ReactionRepository) *Selector {
	return &Selector{
		questions: questions,
		reactions: reactions,
	}
}

// Next возвращает следующий доступный вопрос или nil, nil при исчерпании пула.
// Из множества кандидатов выбирается один равномерно случайно,
// без весов и без учета давности.
func (s *Selector) Next(chat *entity.Chat) (*entity.Question, error) {
	reacted, err := s.reactions.ReactedQuestionIDs(chat.ID)
	if err != nil {
		return nil, err
	}

	ids, err := s.questions.AvailableIDs(chat.ID, reacted)
	if err != nil {
		return nil, err
	}

	// Свежие закончились — повторяем те вопросы, что были пропущены
	if len(ids) == 0 {
		skippedOnly, err := s.reactions.UnresolvedQuestionIDs(chat.ID)
		if err != nil {
			return nil, err
		}
		resolved := subtract(reacted, skippedOnly)
		ids, err = s.questions.AvailableIDs(chat.ID, resolved)
		if err != nil {
			return nil, err
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	selected := ids[rand.Intn(len(ids))]
	return s.questions.GetByID(selected)
}

// subtract возвращает ids без элементов remove
func subtract(ids, remove []uint) []uint {
	if len(remove) == 0 {
		return ids
	}
	removeSet := make(map[uint]struct{}, len(remove))
	for _, id := range remove {
		removeSet[id] = struct{}{}
	}
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := removeSet[id]; !ok {
			result = append(result, id)
		}
	}
	return result
}
