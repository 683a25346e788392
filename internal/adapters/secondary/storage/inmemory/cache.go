package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hachimada/soothsayer/internal/ports/cache"
)

// Cache in-memory реализация cache.Cache для локальной разработки без Redis
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value     string
	expiresAt time.Time // нулевое время = без TTL
}

func New() cache.Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", cache.ErrKeyNotFound, key)
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %s", cache.ErrKeyNotFound, key)
	}
	return e.value, nil
}

func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}
