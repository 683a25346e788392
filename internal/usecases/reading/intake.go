package reading

import (
	"context"
	"fmt"
	"strings"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/usecases/reading/texts"
)

// Поля анкеты в порядке опроса
const (
	fieldName       = "name"
	fieldBirthday   = "birthday"
	fieldBirthTime  = "birth_time"
	fieldBirthplace = "birthplace"
	fieldWorries    = "worries"
	fieldDone       = ""
)

// HandleText обрабатывает текстовые сообщения - очередной ответ анкеты
func (s *Service) HandleText(ctx context.Context, botID domain.BotId, chat *domain.Chat, text string, messageID int64) error {
	text = strings.TrimSpace(text)

	ref, ok, err := s.currentSession(ctx, chat.ID)
	if err != nil {
		return err
	}
	if !ok {
		return s.sendMessage(ctx, botID, chat.ID, texts.NoActiveReading)
	}

	state, err := s.ReadingRepo.GetByRef(ctx, ref)
	if err != nil {
		s.Log.Error("intake session points to missing state",
			"error", err,
			"ref", ref.String(),
			"chat_id", chat.ID,
		)
		s.closeSession(ctx, chat.ID)
		return s.sendMessage(ctx, botID, chat.ID, texts.NoActiveReading)
	}

	if isSkip(text) {
		return s.handleSkip(ctx, botID, chat.ID, state)
	}

	field := nextField(&state.RequiredInfo)
	if field == fieldDone {
		// все вопросы уже отвечены, анкета ждёт обработки
		s.closeSession(ctx, chat.ID)
		return s.finishIntake(ctx, botID, chat.ID, state)
	}

	if reprompt, err := setField(&state.RequiredInfo, field, text); err != nil {
		if !domain.IsFormatError(err) {
			return err
		}
		s.Log.Debug("intake answer rejected",
			"ref", ref.String(),
			"field", field,
			"error", err,
		)
		return s.sendMessage(ctx, botID, chat.ID, reprompt)
	}

	if err := s.ReadingRepo.Update(ctx, state); err != nil {
		s.Log.Error("failed to save intake answer",
			"error", err,
			"ref", ref.String(),
			"field", field,
		)
		return s.sendMessage(ctx, botID, chat.ID, texts.IntakeSaveError)
	}

	next := nextField(&state.RequiredInfo)
	if next == fieldDone {
		s.closeSession(ctx, chat.ID)
		return s.finishIntake(ctx, botID, chat.ID, state)
	}

	return s.sendMessage(ctx, botID, chat.ID, askFor(next))
}

// handleSkip завершает сбор досрочно, добивая анкету значениями по умолчанию.
// Имя и дату рождения дефолтами не заполнить, без них skip не работает
func (s *Service) handleSkip(ctx context.Context, botID domain.BotId, chatID int64, state *domain.ReadingState) error {
	if state.RequiredInfo.Name == "" || state.RequiredInfo.Birthday == "" {
		return s.sendMessage(ctx, botID, chatID, texts.SkipNotAllowedYet)
	}

	state.RequiredInfo.SupplementByDefault()

	if err := s.ReadingRepo.Update(ctx, state); err != nil {
		s.Log.Error("failed to save supplemented info",
			"error", err,
			"ref", state.Ref().String(),
		)
		return s.sendMessage(ctx, botID, chatID, texts.IntakeSaveError)
	}

	s.closeSession(ctx, chatID)
	return s.finishIntake(ctx, botID, chatID, state)
}

// finishIntake закрывает сбор и запускает пайплайн гадания
func (s *Service) finishIntake(ctx context.Context, botID domain.BotId, chatID int64, state *domain.ReadingState) error {
	s.Log.Info("intake finished",
		"ref", state.Ref().String(),
		"info", state.RequiredInfo.String(),
	)

	if err := s.sendMessage(ctx, botID, chatID, texts.IntakeDone); err != nil {
		return err
	}

	if err := s.ProcessReading(ctx, state); err != nil {
		return fmt.Errorf("failed to process reading: %w", err)
	}

	return nil
}

// isSkip распознаёт досрочное завершение анкеты
func isSkip(text string) bool {
	switch strings.ToLower(text) {
	case "skip", "пропустить":
		return true
	default:
		return false
	}
}

// nextField возвращает первое незаполненное поле анкеты.
// worries опрашивается последним и не обязателен для SatisfiedAll,
// но вопрос мы всё равно задаём - пустой ответ означает "без вопроса"
func nextField(info *domain.BirthInfo) string {
	switch {
	case info.Name == "":
		return fieldName
	case info.Birthday == "":
		return fieldBirthday
	case info.BirthTime == "":
		return fieldBirthTime
	case info.Birthplace == "":
		return fieldBirthplace
	case info.Worries == "":
		return fieldWorries
	default:
		return fieldDone
	}
}

// askFor возвращает текст вопроса для поля
func askFor(field string) string {
	switch field {
	case fieldName:
		return texts.AskName
	case fieldBirthday:
		return texts.AskBirthday
	case fieldBirthTime:
		return texts.AskBirthTime
	case fieldBirthplace:
		return texts.AskBirthplace
	case fieldWorries:
		return texts.AskWorries
	default:
		return texts.IntakeDone
	}
}

// setField записывает ответ в поле анкеты.
// Для birthday и birth_time ответ проходит через доменные валидаторы;
// при отказе возвращается текст повторного вопроса и ошибка
func setField(info *domain.BirthInfo, field, text string) (string, error) {
	switch field {
	case fieldName:
		info.Name = text
	case fieldBirthday:
		v, err := domain.ValidateBirthday(text)
		if err != nil {
			return texts.BadBirthday, err
		}
		info.Birthday = v
	case fieldBirthTime:
		v, err := domain.ValidateBirthTime(text)
		if err != nil {
			return texts.BadBirthTime, err
		}
		info.BirthTime = v
	case fieldBirthplace:
		info.Birthplace = text
	case fieldWorries:
		info.Worries = text
	}
	return "", nil
}
