package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quiz-bot/internal/domain/repository"
)

// TxManager реализует repository.TxManager поверх транзакций GORM
type TxManager struct {
	db *gorm.DB
}

// NewTxManager создает новый менеджер транзакций
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx выполняет fn в одной транзакции БД. Репозитории внутри fn
// привязаны к транзакции: ошибка откатывает весь набор записей перехода.
func (m *TxManager) WithinTx(fn func(r repository.TxRepos) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(repository.TxRepos{
			Chats:     NewChatRepo(tx),
			Questions: NewQuestionRepo(tx),
			Reactions: NewReactionRepo(tx),
		})
	})
}
