package reading

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/usecases/reading/texts"
)

func (s *Service) HandleCommand(ctx context.Context, botID domain.BotId, chat *domain.Chat, command string, messageID int64) error {
	switch command {
	case "start":
		return s.sendMessage(ctx, botID, chat.ID, texts.Start)
	case "help":
		return s.sendMessage(ctx, botID, chat.ID, texts.Help)
	case "reading":
		return s.HandleReading(ctx, botID, chat, messageID)
	default:
		return s.sendMessage(ctx, botID, chat.ID, texts.FormatUnknownCommand(command))
	}
}

// HandleReading обрабатывает команду /reading - открывает новую анкету
func (s *Service) HandleReading(ctx context.Context, botID domain.BotId, chat *domain.Chat, messageID int64) error {
	// Если в чате уже идёт сбор анкеты, не открываем вторую,
	// а продолжаем с текущего вопроса
	if ref, ok, err := s.currentSession(ctx, chat.ID); err == nil && ok {
		state, err := s.ReadingRepo.GetByRef(ctx, ref)
		if err == nil {
			return s.sendMessage(ctx, botID, chat.ID,
				texts.ReadingAlreadyOpen+askFor(nextField(&state.RequiredInfo)))
		}
		// состояние пропало из хранилища - сессия мертва, открываем новую
		s.closeSession(ctx, chat.ID)
	}

	ref := domain.MessageRef{
		Platform: domain.PlatformTelegram,
		ID:       domain.MessageID(strconv.FormatInt(messageID, 10)),
	}

	state := domain.InitialReadingState(ref, true)
	state.ChatID = chat.ID

	if err := s.ReadingRepo.Create(ctx, state); err != nil {
		s.Log.Error("failed to create reading state",
			"error", err,
			"ref", ref.String(),
			"chat_id", chat.ID,
		)
		return fmt.Errorf("failed to create reading state: %w", err)
	}

	if err := s.openSession(ctx, chat.ID, ref); err != nil {
		s.Log.Error("failed to open intake session",
			"error", err,
			"ref", ref.String(),
			"chat_id", chat.ID,
		)
		return err
	}

	s.Log.Info("reading opened",
		"ref", ref.String(),
		"chat_id", chat.ID,
	)

	return s.sendMessage(ctx, botID, chat.ID, texts.AskName)
}
