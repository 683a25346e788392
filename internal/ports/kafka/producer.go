package kafka

import (
	"context"

	"github.com/hachimada/soothsayer/internal/domain"
)

// IVoiceProducer интерфейс для постановки текста гадания в очередь на синтез голоса
type IVoiceProducer interface {
	// SendSynthesisRequest отправляет текст гадания воркеру синтеза
	SendSynthesisRequest(ctx context.Context, ref domain.MessageRef, chatID int64, text string) error
	// Close закрывает producer
	Close() error
}
