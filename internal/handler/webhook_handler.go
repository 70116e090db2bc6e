package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
	"github.com/yourusername/quiz-bot/internal/service"
	"github.com/yourusername/quiz-bot/internal/service/quiz"
)

// QuizEngine - контракт машины состояний викторины
type QuizEngine interface {
	Start(chatKey int64, title *string) ([]quiz.Effect, error)
	Handle(chatKey int64, title *string, event quiz.Event) ([]quiz.Effect, error)
}

// FeedbackIntake - контракт приема обратной связи
type FeedbackIntake interface {
	Begin(chatKey int64) error
	Awaiting(chatKey int64) (bool, error)
	Submit(chat *entity.Chat, text string) (*entity.Feedback, error)
}

// ProposalIntake - контракт мастера предложения вопросов
type ProposalIntake interface {
	Begin(chatKey int64) error
	Active(chatKey int64) (bool, error)
	HandleText(chat *entity.Chat, text string) (*service.ProposalResult, error)
	AttachPhoto(chatKey int64, data []byte, ext string) error
}

// WebhookHandler обрабатывает веб-хуки Bot API.
// Порядок разбора свободного текста фиксирован: сначала ожидание
// обратной связи, затем мастер предложения, затем активный вопрос.
type WebhookHandler struct {
	engine         QuizEngine
	feedback       FeedbackIntake
	proposal       ProposalIntake
	chats          repository.ChatRepository
	sender         Sender
	files          FileFetcher
	render         *Renderer
	adminChatID    int64
	initialBalance int
}

// NewWebhookHandler создает новый обработчик веб-хуков
func NewWebhookHandler(
	engine QuizEngine,
	feedback FeedbackIntake,
	proposal ProposalIntake,
	chats repository.ChatRepository,
	sender Sender,
	files FileFetcher,
	render *Renderer,
	adminChatID int64,
	initialBalance int,
) *WebhookHandler {
	return &WebhookHandler{
		engine:         engine,
		feedback:       feedback,
		proposal:       proposal,
		chats:          chats,
		sender:         sender,
		files:          files,
		render:         render,
		adminChatID:    adminChatID,
		initialBalance: initialBalance,
	}
}

// HandleUpdate обрабатывает POST /webhook.
// Telegram повторяет доставку при не-200 ответе, поэтому ошибки обработки
// логируются, но наружу всегда уходит 200.
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
		return
	}

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(update.Message)
	}

	c.Status(http.StatusOK)
}

// handleCallback обрабатывает нажатие инлайн-кнопки
func (h *WebhookHandler) handleCallback(callback *tgbotapi.CallbackQuery) {
	if err := h.sender.AnswerCallback(callback.ID); err != nil {
		log.Printf("[WebhookHandler] Не удалось подтвердить callback: %v", err)
	}
	if callback.Message == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	title := chatTitle(callback.Message.Chat)

	effects, err := h.engine.Handle(chatID, title, quiz.ActionEvent(quiz.Action(callback.Data)))
	if err != nil {
		h.replyError(chatID, err, "callback")
		return
	}
	h.renderEffects(chatID, effects)
}

// handleMessage обрабатывает входящее сообщение
func (h *WebhookHandler) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	title := chatTitle(message.Chat)

	if message.IsCommand() {
		h.handleCommand(message, chatID, title)
		return
	}

	chat, err := h.chats.GetOrCreate(chatID, title, h.initialBalance)
	if err != nil {
		h.replyError(chatID, err, "message")
		return
	}

	text := message.Text
	if text == "" {
		text = message.Caption
	}

	// Картинка в рамках мастера предложения прикладывается к текущему шагу
	if len(message.Photo) > 0 {
		if handled := h.attachProposalPhoto(chatID, message); handled && text == "" {
			return
		}
	}

	if text == "" {
		return
	}

	if awaiting, err := h.feedback.Awaiting(chatID); err == nil && awaiting {
		h.submitFeedback(chat, text)
		return
	}

	if active, err := h.proposal.Active(chatID); err == nil && active {
		h.advanceProposal(chat, text)
		return
	}

	effects, err := h.engine.Handle(chatID, title, quiz.TextEvent(text))
	if err != nil {
		h.replyError(chatID, err, "text")
		return
	}
	h.renderEffects(chatID, effects)
}

// handleCommand обрабатывает команды бота
func (h *WebhookHandler) handleCommand(message *tgbotapi.Message, chatID int64, title *string) {
	switch message.Command() {
	case "start":
		effects, err := h.engine.Start(chatID, title)
		if err != nil {
			h.replyError(chatID, err, "start")
			return
		}
		h.renderEffects(chatID, effects)

	case "balance":
		chat, err := h.chats.GetOrCreate(chatID, title, h.initialBalance)
		if err != nil {
			h.replyError(chatID, err, "balance")
			return
		}
		h.send(chatID, h.render.BalanceText(chat.Balance), nil)

	case "rules":
		h.send(chatID, msgRules, nil)

	case "feedback":
		if err := h.feedback.Begin(chatID); err != nil {
			h.replyError(chatID, err, "feedback")
			return
		}
		h.send(chatID, msgFeedbackPrompt, nil)

	case "proposal":
		if err := h.proposal.Begin(chatID); err != nil {
			h.replyError(chatID, err, "proposal")
			return
		}
		h.send(chatID, msgProposalPrompt, nil)

	default:
		h.send(chatID, msgNoCommand, nil)
	}
}

// submitFeedback сохраняет текст обратной связи и уведомляет администратора
func (h *WebhookHandler) submitFeedback(chat *entity.Chat, text string) {
	feedback, err := h.feedback.Submit(chat, text)
	if err != nil {
		h.replyError(chat.TelegramID, err, "feedback")
		return
	}

	h.send(chat.TelegramID, msgFeedbackThanks, nil)

	notice := "Новое сообщение в форме обратной связи от " + chat.Label() + ":\n\n" + feedback.Text
	h.send(h.adminChatID, EscapeMarkdown(notice), nil)
}

// advanceProposal продвигает мастер предложения на один шаг
func (h *WebhookHandler) advanceProposal(chat *entity.Chat, text string) {
	result, err := h.proposal.HandleText(chat, text)
	if err != nil {
		h.replyError(chat.TelegramID, err, "proposal")
		return
	}

	if result.Done {
		h.send(chat.TelegramID, msgProposalThanks, nil)
		notice := "Новый вопрос на модерацию от " + chat.Label()
		h.send(h.adminChatID, EscapeMarkdown(notice), nil)
		return
	}

	switch result.NextStep {
	case service.StepAnswer:
		h.send(chat.TelegramID, msgProposalAnswer, nil)
	case service.StepComment:
		h.send(chat.TelegramID, msgProposalComment, nil)
	}
}

// attachProposalPhoto скачивает и прикладывает фото к мастеру предложения.
// Возвращает true, если фото было обработано.
func (h *WebhookHandler) attachProposalPhoto(chatID int64, message *tgbotapi.Message) bool {
	active, err := h.proposal.Active(chatID)
	if err != nil || !active {
		return false
	}

	// Telegram присылает несколько размеров, берем самый крупный
	photo := message.Photo[len(message.Photo)-1]
	data, ext, err := h.files.Download(photo.FileID)
	if err != nil {
		log.Printf("[WebhookHandler] Не удалось скачать фото: %v (chat_id: %d)", err, chatID)
		h.send(chatID, msgError, nil)
		return true
	}

	if err := h.proposal.AttachPhoto(chatID, data, ext); err != nil {
		h.replyError(chatID, err, "proposal photo")
		return true
	}
	return true
}

// renderEffects отправляет сообщения по списку эффектов перехода
func (h *WebhookHandler) renderEffects(chatID int64, effects []quiz.Effect) {
	for _, effect := range effects {
		switch effect.Kind {
		case quiz.EffectQuestion:
			text := h.render.QuestionText(effect.Question)
			keyboard := h.render.Keyboard(effect.Actions)
			h.sendWithPicture(chatID, text, keyboard, effect.Question.QuestionPicture)

		case quiz.EffectCorrect:
			text := h.render.CorrectText(effect.Question)
			keyboard := h.render.Keyboard(effect.Actions)
			h.sendWithPicture(chatID, text, keyboard, effect.Question.AnswerPicture)

		case quiz.EffectReveal:
			text := h.render.RevealText(effect.Question)
			keyboard := h.render.Keyboard(effect.Actions)
			h.sendWithPicture(chatID, text, keyboard, effect.Question.AnswerPicture)

		case quiz.EffectRetry:
			h.send(chatID, msgRetry, nil)

		case quiz.EffectLowBalance:
			h.send(chatID, msgLowBalance, nil)

		case quiz.EffectExhausted:
			h.send(chatID, msgExhausted, nil)

		case quiz.EffectGoodbye:
			h.send(chatID, msgGoodbye, nil)

		case quiz.EffectAdminNotice:
			h.send(h.adminChatID, EscapeMarkdown(effect.Notice), nil)
		}
	}
}

// sendWithPicture отправляет текст фотографией с подписью, если у вопроса
// есть картинка, и обычным сообщением в остальных случаях
func (h *WebhookHandler) sendWithPicture(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup, picture *entity.Picture) {
	if picture != nil && picture.Path != nil {
		url := h.render.PictureURL(*picture.Path)
		if err := h.sender.SendPhoto(chatID, url, text, keyboard); err != nil {
			log.Printf("[WebhookHandler] Не удалось отправить фото: %v (chat_id: %d)", err, chatID)
			h.send(chatID, text, keyboard)
		}
		return
	}
	h.send(chatID, text, keyboard)
}

func (h *WebhookHandler) send(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	if err := h.sender.SendMessage(chatID, text, keyboard); err != nil {
		log.Printf("[WebhookHandler] Не удалось отправить сообщение: %v (chat_id: %d)", err, chatID)
	}
}

// replyError превращает ошибку обработки в ответ участнику.
// Некорректный ввод получает нейтральное подтверждение, остальные
// ошибки - общий текст; повторных попыток записи нет.
func (h *WebhookHandler) replyError(chatID int64, err error, scope string) {
	if errors.Is(err, apperrors.ErrValidation) {
		h.send(chatID, msgInvalid, nil)
		return
	}
	log.Printf("[WebhookHandler] Ошибка обработки (%s): %v (chat_id: %d)", scope, err, chatID)
	h.send(chatID, msgError, nil)
}

func chatTitle(chat *tgbotapi.Chat) *string {
	if chat == nil || chat.Title == "" {
		return nil
	}
	return &chat.Title
}
