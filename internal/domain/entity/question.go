package entity

import (
	"strings"
	"time"
)

// Question представляет вопрос викторины.
// После публикации вопрос неизменяем (кроме рейтинга и инструментов модерации).
type Question struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Text              string     `gorm:"type:text;not null" json:"text"`
	Answer            string     `gorm:"type:text;not null" json:"answer"`
	Comment           *string    `gorm:"type:text" json:"comment,omitempty"`
	AuthorID          *uint      `gorm:"index" json:"author_id,omitempty"`
	Author            *Chat      `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	IsPublished       bool       `gorm:"not null;default:false" json:"is_published"`
	QuestionPictureID *uint      `json:"question_picture_id,omitempty"`
	QuestionPicture   *Picture   `gorm:"foreignKey:QuestionPictureID;constraint:OnDelete:SET NULL" json:"question_picture,omitempty"`
	AnswerPictureID   *uint      `json:"answer_picture_id,omitempty"`
	AnswerPicture     *Picture   `gorm:"foreignKey:AnswerPictureID;constraint:OnDelete:SET NULL" json:"answer_picture,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	Rating            *int       `gorm:"default:0" json:"rating,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// NormalizeAnswer приводит текст ответа к канонической форме для сравнения:
// обрезает пробелы и опускает регистр. Регистр букв в ответе значения не имеет.
func NormalizeAnswer(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CheckAnswer сравнивает ответ пользователя с каноническим ответом вопроса.
// Сравнение — строгое равенство нормализованных строк.
func (q *Question) CheckAnswer(input string) bool {
	return NormalizeAnswer(input) == NormalizeAnswer(q.Answer)
}

// Publish помечает вопрос опубликованным. Время одобрения фиксируется
// один раз — при первой публикации.
func (q *Question) Publish(now time.Time) {
	q.IsPublished = true
	if q.ApprovedAt == nil {
		q.ApprovedAt = &now
	}
}
