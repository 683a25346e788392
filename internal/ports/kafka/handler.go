package kafka

import "context"

// MessageHandler обработчик одного сообщения из топика.
// Key - строковый ключ сообщения (для результатов синтеза это message ref)
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, value []byte) error
}
