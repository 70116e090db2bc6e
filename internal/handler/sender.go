package handler

import (
	"fmt"
	"io"
	"net/http"
	"path"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender отправляет сообщения в Telegram
type Sender interface {
	SendMessage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	SendPhoto(chatID int64, photoURL, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(callbackID string) error
}

// FileFetcher скачивает присланный участником файл по file id
type FileFetcher interface {
	// Download возвращает содержимое файла и расширение (с точкой)
	Download(fileID string) ([]byte, string, error)
}

// BotSender реализует Sender и FileFetcher поверх Bot API
type BotSender struct {
	bot *tgbotapi.BotAPI
}

// NewBotSender создает новый отправитель
func NewBotSender(bot *tgbotapi.BotAPI) *BotSender {
	return &BotSender{bot: bot}
}

// SendMessage отправляет текстовое сообщение в MarkdownV2
func (s *BotSender) SendMessage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	_, err := s.bot.Send(msg)
	return err
}

// SendPhoto отправляет фото по URL с подписью в MarkdownV2
func (s *BotSender) SendPhoto(chatID int64, photoURL, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	if keyboard != nil {
		photo.ReplyMarkup = keyboard
	}
	_, err := s.bot.Send(photo)
	return err
}

// AnswerCallback подтверждает получение callback query,
// чтобы у участника погас индикатор ожидания
func (s *BotSender) AnswerCallback(callbackID string) error {
	_, err := s.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

// Download скачивает файл с серверов Telegram
func (s *BotSender) Download(fileID string) ([]byte, string, error) {
	file, err := s.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("не удалось получить файл: %w", err)
	}

	resp, err := http.Get(file.Link(s.bot.Token))
	if err != nil {
		return nil, "", fmt.Errorf("не удалось скачать файл: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("не удалось скачать файл: статус %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	ext := path.Ext(file.FilePath)
	if ext == "" {
		ext = ".jpg"
	}
	return data, ext, nil
}
