package repository

import (
	"github.com/yourusername/quiz-bot/internal/domain/entity"
)

// ChatRepository определяет методы для работы со счетами чатов
type ChatRepository interface {
	// GetOrCreate возвращает чат по telegram id, создавая его при первом
	// обращении с начальным балансом. Идемпотентна.
	GetOrCreate(telegramID int64, title *string, initialBalance int) (*entity.Chat, error)
	GetByID(id uint) (*entity.Chat, error)
	GetByTelegramID(telegramID int64) (*entity.Chat, error)
	// DecreaseBalance атомарно уменьшает баланс на 1. Нижней границы нет:
	// баланс может уйти в ноль и ниже, блокировка выполняется выше по стеку.
	DecreaseBalance(chatID uint) error
}
