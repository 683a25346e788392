package service

import (
	"context"

	"github.com/hachimada/soothsayer/internal/domain"
)

// ITelegramService интерфейс для отправки сообщений через Telegram
type ITelegramService interface {
	SendMessage(ctx context.Context, botID domain.BotId, chatID int64, text string) error
	SendVoice(ctx context.Context, botID domain.BotId, chatID int64, voice []byte, filename string) error
}
