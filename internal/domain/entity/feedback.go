package entity

import "time"

// Feedback представляет сообщение обратной связи от чата
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Response  *string   `gorm:"type:text" json:"response,omitempty"`
	ChatID    uint      `gorm:"not null" json:"chat_id"`
	Chat      Chat      `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Feedback) TableName() string {
	return "feedbacks"
}
