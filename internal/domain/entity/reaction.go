package entity

import "time"

// Outcome — вид исхода по вопросу
type Outcome string

const (
	// OutcomeAnswered — участник дал правильный ответ
	OutcomeAnswered Outcome = "answered"
	// OutcomeSkipped — участник пропустил вопрос; такой вопрос может быть
	// предложен снова после исчерпания свежих
	OutcomeSkipped Outcome = "skipped"
	// OutcomeGaveUp — участник сдался (показать ответ / закончить)
	OutcomeGaveUp Outcome = "gave_up"
)

// Reaction представляет исход одного участника по одному вопросу.
// На пару (chat_id, question_id) существует не более одной строки,
// повторные исходы обновляют ту же строку.
type Reaction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ChatID     uint       `gorm:"not null;uniqueIndex:chat_question" json:"chat_id"`
	Chat       Chat       `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID uint       `gorm:"not null;uniqueIndex:chat_question" json:"question_id"`
	Question   Question   `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	SkippedAt  *time.Time `json:"skipped_at,omitempty"`
	GaveUpAt   *time.Time `json:"gave_up_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Reaction) TableName() string {
	return "reactions"
}

// Apply проставляет отметку времени для указанного исхода.
// Уже установленные отметки других исходов не трогаются и никогда не очищаются.
func (r *Reaction) Apply(outcome Outcome, now time.Time) {
	switch outcome {
	case OutcomeAnswered:
		r.AnsweredAt = &now
	case OutcomeSkipped:
		r.SkippedAt = &now
	case OutcomeGaveUp:
		r.GaveUpAt = &now
	}
}

// Resolved возвращает true, если вопрос для участника закрыт окончательно:
// отвечен или сдан. Пропуск не закрывает вопрос.
func (r *Reaction) Resolved() bool {
	return r.AnsweredAt != nil || r.GaveUpAt != nil
}
