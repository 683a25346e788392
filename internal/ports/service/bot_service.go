package service

import (
	"context"

	"github.com/hachimada/soothsayer/internal/domain"
)

// IBotService интерфейс для бизнес-логики любого бота
type IBotService interface {
	HandleCommand(ctx context.Context, botID domain.BotId, chat *domain.Chat, command string, messageID int64) error
	HandleText(ctx context.Context, botID domain.BotId, chat *domain.Chat, text string, messageID int64) error
}
