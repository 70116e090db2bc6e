package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	"github.com/yourusername/quiz-bot/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

// минимальная длина текста предлагаемого вопроса
const proposalMinLength = 3

// FileStore сохраняет загруженные участниками файлы под ключом объекта
type FileStore interface {
	Save(key string, data []byte) error
}

// ProposalStep — шаг мастера предложения вопроса
type ProposalStep string

const (
	// StepQuestion — ожидаем текст вопроса
	StepQuestion ProposalStep = "question"
	// StepAnswer — ожидаем ответ
	StepAnswer ProposalStep = "answer"
	// StepComment — ожидаем комментарий; «-» пропускает шаг
	StepComment ProposalStep = "comment"
)

// proposalState — состояние мастера между веб-хуками
type proposalState struct {
	Step                ProposalStep `json:"step"`
	Text                string       `json:"text,omitempty"`
	Answer              string       `json:"answer,omitempty"`
	QuestionPicturePath *string      `json:"question_picture_path,omitempty"`
	AnswerPicturePath   *string      `json:"answer_picture_path,omitempty"`
}

// ProposalResult — итог обработки шага мастера
type ProposalResult struct {
	// NextStep — какой шаг предложить участнику следующим
	NextStep ProposalStep
	// Done — вопрос сохранен, мастер завершен
	Done bool
}

// ProposalService реализует линейный мастер предложения вопросов.
// Принятый вопрос сохраняется неопубликованным за авторством чата
// и не попадает в выдачу до одобрения. Автору собственный вопрос
// не показывается никогда.
type ProposalService struct {
	questions repository.QuestionRepository
	cache     repository.CacheRepository
	store     FileStore
	ttl       time.Duration
}

// NewProposalService создает новый сервис предложения вопросов
func NewProposalService(
	questions repository.QuestionRepository,
	cache repository.CacheRepository,
	store FileStore,
	ttl time.Duration,
) *ProposalService {
	return &ProposalService{
		questions: questions,
		cache:     cache,
		store:     store,
		ttl:       ttl,
	}
}

func (s *ProposalService) stateKey(chatKey int64) string {
	return fmt.Sprintf("proposal:%d", chatKey)
}

// Begin запускает мастер с первого шага
func (s *ProposalService) Begin(chatKey int64) error {
	return s.saveState(chatKey, &proposalState{Step: StepQuestion})
}

// Active сообщает, идет ли у чата мастер предложения
func (s *ProposalService) Active(chatKey int64) (bool, error) {
	return s.cache.Exists(s.stateKey(chatKey))
}

// Cancel прерывает мастер без сохранения
func (s *ProposalService) Cancel(chatKey int64) error {
	return s.cache.Delete(s.stateKey(chatKey))
}

// HandleText обрабатывает текстовое сообщение на текущем шаге мастера
func (s *ProposalService) HandleText(chat *entity.Chat, text string) (*ProposalResult, error) {
	state, err := s.loadState(chat.TelegramID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)

	switch state.Step {
	case StepQuestion:
		if len([]rune(text)) < proposalMinLength {
			return nil, fmt.Errorf("%w: слишком короткий вопрос", apperrors.ErrValidation)
		}
		state.Text = text
		state.Step = StepAnswer
		if err := s.saveState(chat.TelegramID, state); err != nil {
			return nil, err
		}
		return &ProposalResult{NextStep: StepAnswer}, nil

	case StepAnswer:
		if text == "" {
			return nil, fmt.Errorf("%w: пустой ответ", apperrors.ErrValidation)
		}
		state.Answer = text
		state.Step = StepComment
		if err := s.saveState(chat.TelegramID, state); err != nil {
			return nil, err
		}
		return &ProposalResult{NextStep: StepComment}, nil

	case StepComment:
		var comment *string
		if text != "" && text != "-" {
			comment = &text
		}
		if err := s.create(chat, state, comment); err != nil {
			return nil, err
		}
		if err := s.Cancel(chat.TelegramID); err != nil {
			log.Printf("[ProposalService] Не удалось снять состояние мастера: %v (chat_key: %d)", err, chat.TelegramID)
		}
		return &ProposalResult{Done: true}, nil
	}

	return nil, fmt.Errorf("%w: неизвестный шаг %q", apperrors.ErrValidation, state.Step)
}

// AttachPhoto сохраняет присланную картинку и привязывает ее к текущему
// шагу: на шаге вопроса — к вопросу, дальше — к ответу.
// Ключ объекта производится от uuid, имя файла участника не используется.
func (s *ProposalService) AttachPhoto(chatKey int64, data []byte, ext string) error {
	state, err := s.loadState(chatKey)
	if err != nil {
		return err
	}

	key := uuid.NewString() + ext
	if err := s.store.Save(key, data); err != nil {
		return fmt.Errorf("не удалось сохранить картинку: %w", err)
	}

	switch state.Step {
	case StepQuestion:
		state.QuestionPicturePath = &key
	default:
		state.AnswerPicturePath = &key
	}
	return s.saveState(chatKey, state)
}

// create сохраняет предложенный вопрос неопубликованным
func (s *ProposalService) create(chat *entity.Chat, state *proposalState, comment *string) error {
	question := &entity.Question{
		Text:        state.Text,
		Answer:      state.Answer,
		Comment:     comment,
		AuthorID:    &chat.ID,
		IsPublished: false,
	}
	if state.QuestionPicturePath != nil {
		question.QuestionPicture = &entity.Picture{Path: state.QuestionPicturePath}
	}
	if state.AnswerPicturePath != nil {
		question.AnswerPicture = &entity.Picture{Path: state.AnswerPicturePath}
	}

	if err := s.questions.Create(question); err != nil {
		return err
	}
	log.Printf("[ProposalService] Новый вопрос на модерацию от %s (question_id: %d)", chat.Label(), question.ID)
	return nil
}

func (s *ProposalService) loadState(chatKey int64) (*proposalState, error) {
	var state proposalState
	if err := s.cache.GetJSON(s.stateKey(chatKey), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *ProposalService) saveState(chatKey int64, state *proposalState) error {
	return s.cache.SetJSON(s.stateKey(chatKey), state, s.ttl)
}
