package quiz

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// Engine — машина состояний викторины. Каждый веб-хук превращается
// в событие, переход возвращает список эффектов для отрисовки.
// Движок не отправляет сообщений и не знает про Telegram.
type Engine struct {
	config   *Config
	deps     *Dependencies
	selector *Selector
}

// NewEngine создает движок викторины
func NewEngine(config *Config, deps *Dependencies) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		config:   config,
		deps:     deps,
		selector: NewSelector(deps.Questions, deps.Reactions),
	}
}

// Start начинает новый цикл показа вопроса: команда /start
// или продолжение после завершенной сессии
func (e *Engine) Start(chatKey int64, title *string) ([]Effect, error) {
	chat, err := e.deps.Chats.GetOrCreate(chatKey, title, e.config.InitialBalance)
	if err != nil {
		return nil, err
	}
	return e.present(chat)
}

// Handle обрабатывает входящее событие согласно текущему состоянию сессии.
// Событие без активной сессии не считается ошибкой: кнопка «продолжить»
// начинает новый цикл, остальное молча игнорируется.
func (e *Engine) Handle(chatKey int64, title *string, event Event) ([]Effect, error) {
	chat, err := e.deps.Chats.GetOrCreate(chatKey, title, e.config.InitialBalance)
	if err != nil {
		return nil, err
	}

	sess, err := e.loadSession(chatKey)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.State != StateAwaitingAnswer {
		if event.Kind == EventAction {
			switch event.Action {
			case ActionContinue:
				return e.present(chat)
			case ActionFinish:
				return []Effect{{Kind: EffectGoodbye}}, nil
			}
		}
		return nil, nil
	}

	return e.awaitingAnswer(chat, sess, event)
}

// present показывает следующий вопрос либо завершает сессию.
// Проверка баланса происходит только здесь: в пределах одного вопроса
// участник доигрывает даже при нулевом балансе.
func (e *Engine) present(chat *entity.Chat) ([]Effect, error) {
	if !chat.HasBalance() {
		e.clearSession(chat.TelegramID)
		return []Effect{{Kind: EffectLowBalance}}, nil
	}

	question, err := e.selector.Next(chat)
	if err != nil {
		return nil, err
	}
	if question == nil {
		e.clearSession(chat.TelegramID)
		log.Printf("[QuizEngine] Вопросы исчерпаны (chat_id: %d)", chat.ID)
		effects := []Effect{{Kind: EffectExhausted}}
		if chat.TelegramID != e.config.AdminChatID {
			effects = append(effects, Effect{
				Kind:   EffectAdminNotice,
				Notice: fmt.Sprintf("Вопросы закончились у %s", chat.Label()),
			})
		}
		return effects, nil
	}

	sess := &Session{
		ChatKey:    chat.TelegramID,
		QuestionID: question.ID,
		State:      StateAwaitingAnswer,
	}
	if err := e.saveSession(sess); err != nil {
		return nil, err
	}

	return []Effect{{
		Kind:     EffectQuestion,
		Question: question,
		Actions:  questionActions(),
	}}, nil
}

// awaitingAnswer обрабатывает событие при активном вопросе
func (e *Engine) awaitingAnswer(chat *entity.Chat, sess *Session, event Event) ([]Effect, error) {
	question, err := e.deps.Questions.GetByID(sess.QuestionID)
	if err != nil {
		return nil, err
	}

	switch event.Kind {
	case EventText:
		if !question.CheckAnswer(event.Text) {
			// Неверная попытка нигде не фиксируется: ни записи, ни списания
			return []Effect{{Kind: EffectRetry}}, nil
		}
		if err := e.resolve(chat, question, entity.OutcomeAnswered, true); err != nil {
			return nil, err
		}
		return []Effect{{
			Kind:     EffectCorrect,
			Question: question,
			Actions:  continueActions(),
		}}, nil

	case EventAction:
		switch event.Action {
		case ActionSkip:
			// Пропуск бесплатен и оставляет вопрос доступным для повтора
			if err := e.resolve(chat, question, entity.OutcomeSkipped, false); err != nil {
				return nil, err
			}
			return e.present(chat)

		case ActionReveal:
			if err := e.resolve(chat, question, entity.OutcomeGaveUp, true); err != nil {
				return nil, err
			}
			return []Effect{{
				Kind:     EffectReveal,
				Question: question,
				Actions:  continueActions(),
			}}, nil

		case ActionContinue:
			// Баланс мог измениться в рамках этой сессии — перечитываем
			fresh, err := e.deps.Chats.GetByID(chat.ID)
			if err != nil {
				return nil, err
			}
			return e.present(fresh)

		case ActionFinish:
			// Завершение всегда проходит через показ ответа,
			// даже если участник только что ответил верно
			if err := e.resolve(chat, question, entity.OutcomeGaveUp, true); err != nil {
				return nil, err
			}
			e.clearSession(chat.TelegramID)
			return []Effect{
				{Kind: EffectReveal, Question: question},
				{Kind: EffectGoodbye},
			}, nil

		default:
			return nil, fmt.Errorf("%w: неизвестное действие %q", apperrors.ErrValidation, event.Action)
		}
	}

	return nil, nil
}

// resolve записывает исход реакции и при необходимости списывает монету.
// Обе записи выполняются в одной транзакции: частичный исход невозможен.
func (e *Engine) resolve(chat *entity.Chat, question *entity.Question, outcome entity.Outcome, charge bool) error {
	err := e.deps.Tx.WithinTx(func(r repository.TxRepos) error {
		if err := r.Reactions.RecordOutcome(chat.ID, question.ID, outcome); err != nil {
			return err
		}
		if charge {
			return r.Chats.DecreaseBalance(chat.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Рейтинг пересчитывается вне транзакции: его сбой не откатывает исход
	if err := e.deps.Questions.RecalculateRating(question.ID); err != nil {
		log.Printf("[QuizEngine] Не удалось пересчитать рейтинг вопроса %d: %v", question.ID, err)
	}
	return nil
}

func (e *Engine) sessionKey(chatKey int64) string {
	return fmt.Sprintf("session:%d", chatKey)
}

func (e *Engine) loadSession(chatKey int64) (*Session, error) {
	var sess Session
	err := e.deps.Cache.GetJSON(e.sessionKey(chatKey), &sess)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

func (e *Engine) saveSession(sess *Session) error {
	return e.deps.Cache.SetJSON(e.sessionKey(sess.ChatKey), sess, e.config.SessionTTL)
}

func (e *Engine) clearSession(chatKey int64) {
	if err := e.deps.Cache.Delete(e.sessionKey(chatKey)); err != nil {
		log.Printf("[QuizEngine] Не удалось удалить сессию: %v (chat_key: %d)", err, chatKey)
	}
}
