package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/service/quiz"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "Столица Франции\\?", EscapeMarkdown("Столица Франции?"))
	assert.Equal(t, "a\\.b\\-c\\!", EscapeMarkdown("a.b-c!"))
	assert.Equal(t, "без спецсимволов", EscapeMarkdown("без спецсимволов"))
}

func TestRenderer_PictureURL(t *testing.T) {
	render := NewRenderer("https://storage.example.com", "quiz-pictures")

	url := render.PictureURL("abc123.jpg")

	assert.Equal(t, "https://storage.example.com/quiz-pictures/abc123.jpg", url)
}

func TestRenderer_QuestionText(t *testing.T) {
	render := NewRenderer("", "")

	t.Run("без рейтинга", func(t *testing.T) {
		question := &entity.Question{Text: "Столица Франции?"}
		assert.Equal(t, "*Столица Франции\\?*", render.QuestionText(question))
	})

	t.Run("с рейтингом", func(t *testing.T) {
		rating := 42
		question := &entity.Question{Text: "Столица Франции?", Rating: &rating}

		text := render.QuestionText(question)

		assert.Contains(t, text, "отвечают 42%")
	})

	t.Run("нулевой рейтинг не показывается", func(t *testing.T) {
		rating := 0
		question := &entity.Question{Text: "Вопрос", Rating: &rating}
		assert.NotContains(t, render.QuestionText(question), "отвечают")
	})
}

func TestRenderer_RevealText(t *testing.T) {
	render := NewRenderer("", "")
	comment := "Это интересно!"
	question := &entity.Question{Answer: "Париж", Comment: &comment}

	text := render.RevealText(question)

	assert.Contains(t, text, "*Правильный ответ:*\nПариж")
	assert.Contains(t, text, "Это интересно\\!")
}

func TestRenderer_Keyboard(t *testing.T) {
	render := NewRenderer("", "")

	t.Run("клавиатура вопроса", func(t *testing.T) {
		keyboard := render.Keyboard([]quiz.Action{quiz.ActionSkip, quiz.ActionReveal, quiz.ActionFinish})

		require.NotNil(t, keyboard)
		require.Len(t, keyboard.InlineKeyboard, 1)
		row := keyboard.InlineKeyboard[0]
		require.Len(t, row, 3)
		assert.Equal(t, "Пропустить", row[0].Text)
		assert.Equal(t, "skip", *row[0].CallbackData)
		assert.Equal(t, "Показать ответ", row[1].Text)
		assert.Equal(t, "fail", *row[1].CallbackData)
		assert.Equal(t, "Закончить", row[2].Text)
		assert.Equal(t, "finish", *row[2].CallbackData)
	})

	t.Run("клавиатура продолжения", func(t *testing.T) {
		keyboard := render.Keyboard([]quiz.Action{quiz.ActionContinue, quiz.ActionFinish})

		require.NotNil(t, keyboard)
		row := keyboard.InlineKeyboard[0]
		require.Len(t, row, 2)
		assert.Equal(t, "Точно!", row[0].Text)
		assert.Equal(t, "continue", *row[0].CallbackData)
		assert.Equal(t, "Ладно, хватит", row[1].Text, "после ответа кнопка завершения подписана иначе")
		assert.Equal(t, "finish", *row[1].CallbackData)
	})

	t.Run("без действий нет клавиатуры", func(t *testing.T) {
		assert.Nil(t, render.Keyboard(nil))
	})
}
