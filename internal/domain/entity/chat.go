package entity

import (
	"fmt"
	"time"
)

// Chat представляет участника викторины. Счет привязан не к пользователю,
// а к чату (личному или групповому).
type Chat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	Title      *string   `gorm:"size:255" json:"title,omitempty"`
	Balance    int       `gorm:"not null;default:0" json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Chat) TableName() string {
	return "chats"
}

// HasBalance проверяет, может ли чат начать новый вопрос.
// Проверка выполняется только при входе в показ вопроса: внутри одного
// обмена баланс может уйти в ноль и ниже, блокировка сработает на следующем цикле.
func (c *Chat) HasBalance() bool {
	return c.Balance > 0
}

// Label возвращает человекочитаемую метку чата для служебных уведомлений
func (c *Chat) Label() string {
	title := "-"
	if c.Title != nil && *c.Title != "" {
		title = *c.Title
	}
	return fmt.Sprintf("(%d) %s", c.ID, title)
}
