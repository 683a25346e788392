package reading

import (
	"context"
	"fmt"

	"github.com/hachimada/soothsayer/internal/domain"
)

// sendMessage отправляет сообщение пользователю через Telegram сервис
func (s *Service) sendMessage(ctx context.Context, botID domain.BotId, chatID int64, text string) error {
	if err := s.Telegram.SendMessage(ctx, botID, chatID, text); err != nil {
		s.Log.Error("failed to send message",
			"error", err,
			"bot_id", botID,
			"chat_id", chatID,
		)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
