package quiz

import (
	"time"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/domain/repository"
)

// Константы значений по умолчанию
const (
	// DefaultInitialBalance — начальный баланс при первом контакте с ботом.
	// В ранних ревизиях было 50, текущее значение 30; настраивается конфигом.
	DefaultInitialBalance = 30

	// DefaultSessionTTL — время жизни незавершенной сессии между веб-хуками
	DefaultSessionTTL = 30 * time.Minute
)

// State — состояние сессии участника
type State string

const (
	// StatePresenting — показ следующего вопроса; транзитное состояние,
	// из него сессия сразу переходит в ожидание ответа либо завершается
	StatePresenting State = "presenting"
	// StateAwaitingAnswer — ожидаем свободный текст или нажатие кнопки.
	// После верного ответа или показа ответа состояние сохраняется,
	// меняется только предлагаемый набор кнопок.
	StateAwaitingAnswer State = "awaiting_answer"
	// StateEnded — терминальное; новое входящее событие начинает сессию заново
	StateEnded State = "ended"
)

// Action — действие из закрытого набора кнопок.
// Значения совпадают с callback data клавиатур.
type Action string

const (
	// ActionSkip — пропустить вопрос; исход не закрывает вопрос окончательно
	ActionSkip Action = "skip"
	// ActionReveal — показать ответ; засчитывается как сдача
	ActionReveal Action = "fail"
	// ActionContinue — продолжить со следующим вопросом
	ActionContinue Action = "continue"
	// ActionFinish — закончить; побочные эффекты как у ActionReveal
	// плюс прощальное сообщение
	ActionFinish Action = "finish"
)

// EventKind — вид входящего события
type EventKind string

const (
	// EventText — свободный текст (попытка ответа)
	EventText EventKind = "text"
	// EventAction — нажатие кнопки
	EventAction EventKind = "action"
)

// Event — входящее событие от транспортного слоя
type Event struct {
	Kind   EventKind
	Text   string
	Action Action
}

// TextEvent создает событие свободного текста
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// ActionEvent создает событие нажатия кнопки
func ActionEvent(action Action) Event {
	return Event{Kind: EventAction, Action: action}
}

// Session — минимальное состояние для возобновления диалога между веб-хуками.
// Хранится в кеше, переживает перезапуск процесса в пределах TTL.
type Session struct {
	ChatKey    int64 `json:"chat_key"`
	QuestionID uint  `json:"question_id"`
	State      State `json:"state"`
}

// EffectKind — вид эффекта перехода
type EffectKind string

const (
	// EffectQuestion — показать вопрос с клавиатурой {пропустить, показать ответ, закончить}
	EffectQuestion EffectKind = "question"
	// EffectCorrect — подтвердить верный ответ (+ комментарий и картинка ответа)
	EffectCorrect EffectKind = "correct"
	// EffectReveal — показать правильный ответ (+ комментарий и картинка ответа)
	EffectReveal EffectKind = "reveal"
	// EffectRetry — ответ неверный, предложить попробовать еще раз
	EffectRetry EffectKind = "retry"
	// EffectLowBalance — монеты закончились
	EffectLowBalance EffectKind = "low_balance"
	// EffectExhausted — доступные вопросы закончились
	EffectExhausted EffectKind = "exhausted"
	// EffectGoodbye — прощальное сообщение
	EffectGoodbye EffectKind = "goodbye"
	// EffectAdminNotice — служебное уведомление в административный канал
	EffectAdminNotice EffectKind = "admin_notice"
)

// Effect — результат перехода, подлежащий отрисовке транспортным слоем.
// Машина состояний не знает про Telegram: форматирование, экранирование
// и клавиатуры — забота обработчика.
type Effect struct {
	Kind     EffectKind
	Question *entity.Question
	Actions  []Action
	Notice   string
}

// Config содержит настройки движка викторины
type Config struct {
	// InitialBalance — баланс, начисляемый при первом контакте
	InitialBalance int
	// SessionTTL — сколько незавершенная сессия ждет следующего события
	SessionTTL time.Duration
	// AdminChatID — административный канал для служебных уведомлений
	AdminChatID int64
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		InitialBalance: DefaultInitialBalance,
		SessionTTL:     DefaultSessionTTL,
	}
}

// Dependencies содержит зависимости движка викторины
type Dependencies struct {
	Chats     repository.ChatRepository
	Questions repository.QuestionRepository
	Reactions repository.ReactionRepository
	Cache     repository.CacheRepository
	Tx        repository.TxManager
}

func questionActions() []Action {
	return []Action{ActionSkip, ActionReveal, ActionFinish}
}

func continueActions() []Action {
	return []Action{ActionContinue, ActionFinish}
}
