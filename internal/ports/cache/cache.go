package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound ключ отсутствует в кэше
var ErrKeyNotFound = errors.New("key not found")

// Cache интерфейс для работы с кэшем
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
