package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/service"
)

// HandleUpdate Основной метод для обработки всех типов обновлений
func (s *Service) HandleUpdate(ctx context.Context, botID domain.BotId, update *domain.Update) error {
	if update == nil {
		return fmt.Errorf("update is nil")
	}

	if update.Message != nil {
		return s.HandleMessage(ctx, botID, update.Message)
	}

	return nil
}

// HandleMessage обрабатывает входящее сообщение - роутинг в usecase
func (s *Service) HandleMessage(ctx context.Context, botID domain.BotId, message *domain.Message) error {
	if message == nil {
		return fmt.Errorf("message is nil")
	}

	if message.From == nil || message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "message_id", message.MessageID)
		return nil
	}

	if message.Chat == nil {
		return fmt.Errorf("message has no chat")
	}

	if message.Chat.Type != "private" {
		s.Log.Warn("ignoring message from group/chat",
			"message_id", message.MessageID,
			"chat_type", message.Chat.Type,
			"chat_id", message.Chat.ID,
		)
		return nil
	}

	// Определяем botType из botID через маппинг
	botType, err := s.GetBotType(botID)
	if err != nil {
		return fmt.Errorf("failed to get bot_type for bot_id %s: %w", botID, err)
	}

	botService, ok := s.BotTypeToUsecase[botType]
	if !ok {
		return fmt.Errorf("unknown bot_type: %s", botType)
	}

	if message.Text != nil {
		return s.routeTextMessage(ctx, botID, botService, message.Chat, *message.Text, message.MessageID)
	}

	return nil
}

// routeTextMessage роутит в команду/текст
func (s *Service) routeTextMessage(ctx context.Context, botID domain.BotId, botService service.IBotService, chat *domain.Chat, text string, messageID int64) error {
	if IsCommand(text) {
		command := ParseCommand(text)
		return botService.HandleCommand(ctx, botID, chat, command, messageID)
	}

	return botService.HandleText(ctx, botID, chat, text, messageID)
}

func ParseCommand(text string) string {
	text = strings.TrimPrefix(text, "/")

	if idx := strings.Index(text, "@"); idx != -1 {
		text = text[:idx]
	}

	if idx := strings.Index(text, " "); idx != -1 {
		text = text[:idx]
	}

	return text
}

func IsCommand(text string) bool {
	return len(text) > 0 && text[0] == '/'
}
