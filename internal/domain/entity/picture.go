package entity

import "time"

// Picture представляет изображение, прикрепленное к вопросу или ответу.
// Файлы лежат во внешнем объектном хранилище, здесь хранится только ключ.
type Picture struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Path      *string   `gorm:"size:255" json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Picture) TableName() string {
	return "pictures"
}
