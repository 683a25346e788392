package telegram

import (
	"context"
	"fmt"

	"github.com/hachimada/soothsayer/internal/domain"
)

// SendMessage отправляет текстовое сообщение пользователю
func (s *Service) SendMessage(ctx context.Context, botID domain.BotId, chatID int64, text string) error {
	client, ok := s.TelegramClients[botID]
	if !ok {
		return fmt.Errorf("telegram client not found for bot_id: %s", botID)
	}

	if err := client.SendMessage(ctx, chatID, text); err != nil {
		s.Log.Error("failed to send message",
			"error", err,
			"bot_id", botID,
			"chat_id", chatID,
		)
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.Log.Debug("message sent successfully",
		"bot_id", botID,
		"chat_id", chatID,
	)
	return nil
}

// SendVoice отправляет голосовое сообщение пользователю
func (s *Service) SendVoice(ctx context.Context, botID domain.BotId, chatID int64, voice []byte, filename string) error {
	client, ok := s.TelegramClients[botID]
	if !ok {
		return fmt.Errorf("telegram client not found for bot_id: %s", botID)
	}

	fileID, err := client.SendVoice(ctx, chatID, voice, filename)
	if err != nil {
		s.Log.Error("failed to send voice",
			"error", err,
			"bot_id", botID,
			"chat_id", chatID,
			"filename", filename,
		)
		return fmt.Errorf("failed to send voice: %w", err)
	}

	s.Log.Debug("voice sent successfully",
		"bot_id", botID,
		"chat_id", chatID,
		"file_id", fileID,
	)
	return nil
}
