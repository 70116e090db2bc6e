package handler

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/service/quiz"
)

// Тексты сообщений бота. Все в MarkdownV2, спецсимволы заэкранированы заранее.
const (
	msgLowBalance = "У вас закончились монеты\\. Пополните баланс командой /balance и ждем вас снова\\!"
	msgExhausted  = "Уоу, вы ответили на все вопросы\\! Приходите завтра\\! Новые интересные вопросы появляются каждый день\\!"
	msgGoodbye    = "Приходите завтра\\! Новые интересные вопросы появляются каждый день\\!"
	msgRetry      = "Ответ неверный\\. Попробуйте еще раз"
	msgCorrect    = "*Это правильный ответ\\!*"

	msgFeedbackPrompt = "Если у вас есть вопросы, предложения или жалобы, напишите их следующим сообщением\\. Мы обязательно их увидим\\."
	msgFeedbackThanks = "Ваше сообщение принято\\! Спасибо\\!"

	msgProposalPrompt  = "Предложите свой вопрос для квиза\\! Напишите текст вопроса следующим сообщением\\. К вопросу можно приложить картинку\\."
	msgProposalAnswer  = "Теперь напишите правильный ответ\\. К ответу тоже можно приложить картинку\\."
	msgProposalComment = "Добавьте комментарий к ответу или отправьте «\\-», чтобы пропустить этот шаг\\."
	msgProposalThanks  = "Ваш вопрос отправлен на модерацию\\! Если он будет опубликован, ваш счет пополнится на 10 монет\\."

	msgInvalid    = "К сожалению, это некорректное сообщение\\."
	msgError      = "Произошла ошибка при обработке сообщения"
	msgNoCommand  = "Неизвестная команда\\. Начните игру командой /start"
	msgRules      = "*Правила*\n\n1\\. При первом контакте с ботом на ваш счет закидывается 30 монет\\.\n2\\. За каждый верно отвеченный вопрос со счета снимается 1 монета\\.\n3\\. Ответом является одно слово на русском языке в именительном падеже единственного числа, если в вопросе не указано иное\\.\n4\\. Если ответом является калька с иностранного языка, имеющая несколько вариантов написания, то правильным будет тот, который указан в Википедии\\.\n5\\. Регистр букв в ответе не имеет значения\\.\n6\\. За каждое нажатие кнопки Показать ответ со счета снимается 1 монета\\.\n7\\. Счет привязан не к пользователю, а к чату\\.\n8\\. Монеты со счета нельзя вернуть\\, но можно отдать другому чату\\, для этого напишите в форму обратной связи\\.\n9\\. Бот поставляется \"как есть\"\\. Администрация не несет ответственности за любые негативные последствия, прямо или косвенно вызванные использованием бота\\."
	msgBalanceFmt = "*Ваш баланс: %d монет\\.*\n\nПополнить баланс вы можете, предложив свой вопрос через соответствующую команду меню\\. В случае, если вопрос пройдет модерацию, он будет опубликован в боте и ваш счет будет пополнен на 10 монет\\. Если вы готовы приобрести монеты за деньги по курсу 1 монета \\= 10 рублей, свяжитесь с администрацией через команду \\/feedback"
)

// подписи кнопок по действиям машины состояний
var actionLabels = map[quiz.Action]string{
	quiz.ActionSkip:     "Пропустить",
	quiz.ActionReveal:   "Показать ответ",
	quiz.ActionContinue: "Точно!",
	quiz.ActionFinish:   "Закончить",
}

// на клавиатуре продолжения кнопка завершения подписана иначе
const finishAfterAnswerLabel = "Ладно, хватит"

// Renderer превращает эффекты машины состояний в готовые к отправке
// сообщения: тексты MarkdownV2, клавиатуры, URL картинок
type Renderer struct {
	pictureEndpoint string
	pictureBucket   string
}

// NewRenderer создает новый рендерер
func NewRenderer(pictureEndpoint, pictureBucket string) *Renderer {
	return &Renderer{
		pictureEndpoint: pictureEndpoint,
		pictureBucket:   pictureBucket,
	}
}

// EscapeMarkdown экранирует специальные символы MarkdownV2
func EscapeMarkdown(text string) string {
	specialChars := []string{"?", "!", "_", "*", "[", "]", "(", ")", "~", "`", ">", "<", "&", "#", "+", "-", "=", "|", "{", "}", "."}
	for _, char := range specialChars {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}
	return text
}

// PictureURL формирует публичный URL картинки из ключа объекта
func (r *Renderer) PictureURL(path string) string {
	return r.pictureEndpoint + "/" + r.pictureBucket + "/" + path
}

// QuestionText форматирует текст вопроса с рейтингом
func (r *Renderer) QuestionText(question *entity.Question) string {
	text := "*" + EscapeMarkdown(question.Text) + "*"
	if question.Rating != nil && *question.Rating > 0 {
		rating := fmt.Sprintf("На этот вопрос отвечают %d%% пользователей", *question.Rating)
		text += "\n\n_" + EscapeMarkdown(rating) + "_"
	}
	return text
}

// CorrectText форматирует подтверждение верного ответа
func (r *Renderer) CorrectText(question *entity.Question) string {
	text := msgCorrect
	if question.Comment != nil {
		text += "\n\n" + EscapeMarkdown(*question.Comment)
	}
	return text
}

// RevealText форматирует показ правильного ответа
func (r *Renderer) RevealText(question *entity.Question) string {
	text := "*Правильный ответ:*\n" + EscapeMarkdown(question.Answer)
	if question.Comment != nil {
		text += "\n\n" + EscapeMarkdown(*question.Comment)
	}
	return text
}

// BalanceText форматирует ответ на команду /balance
func (r *Renderer) BalanceText(balance int) string {
	return fmt.Sprintf(msgBalanceFmt, balance)
}

// Keyboard строит инлайн-клавиатуру для набора действий.
// Пустой набор действий - без клавиатуры.
func (r *Renderer) Keyboard(actions []quiz.Action) *tgbotapi.InlineKeyboardMarkup {
	if len(actions) == 0 {
		return nil
	}

	afterAnswer := len(actions) > 0 && actions[0] == quiz.ActionContinue
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(actions))
	for _, action := range actions {
		label := actionLabels[action]
		if action == quiz.ActionFinish && afterAnswer {
			label = finishAfterAnswerLabel
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, string(action)))
	}
	return &tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
	}
}
