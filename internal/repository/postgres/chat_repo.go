package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// ChatRepo реализует repository.ChatRepository
type ChatRepo struct {
	db *gorm.DB
}

// NewChatRepo создает новый репозиторий чатов
func NewChatRepo(db *gorm.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// GetOrCreate возвращает чат по telegram id, создавая запись при первом контакте.
// Начальный баланс передается из конфигурации, не зашит в репозиторий.
func (r *ChatRepo) GetOrCreate(telegramID int64, title *string, initialBalance int) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.db.Where("telegram_id = ?", telegramID).First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chat = entity.Chat{
		TelegramID: telegramID,
		Title:      title,
		Balance:    initialBalance,
	}
	if err := r.db.Create(&chat).Error; err != nil {
		if isUniqueViolation(err) {
			// Гонка с параллельной доставкой первого сообщения:
			// запись уже создана, читаем её
			err = r.db.Where("telegram_id = ?", telegramID).First(&chat).Error
			if err != nil {
				return nil, err
			}
			return &chat, nil
		}
		return nil, err
	}
	return &chat, nil
}

// GetByID возвращает чат по внутреннему id
func (r *ChatRepo) GetByID(id uint) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.db.First(&chat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// GetByTelegramID возвращает чат по telegram id
func (r *ChatRepo) GetByTelegramID(telegramID int64) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.db.Where("telegram_id = ?", telegramID).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// DecreaseBalance атомарно уменьшает баланс на 1 выражением в БД,
// чтобы исключить потерю обновлений при гонках чтение-изменение-запись
func (r *ChatRepo) DecreaseBalance(chatID uint) error {
	result := r.db.Model(&entity.Chat{}).
		Where("id = ?", chatID).
		Update("balance", gorm.Expr("balance - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
