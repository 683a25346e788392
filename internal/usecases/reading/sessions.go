package reading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/cache"
)

// sessionTTL сколько живёт привязка чата к незавершённой анкете
const sessionTTL = 24 * time.Hour

func sessionKey(chatID int64) string {
	return fmt.Sprintf("intake:%d", chatID)
}

// openSession привязывает чат к открытому гаданию
func (s *Service) openSession(ctx context.Context, chatID int64, ref domain.MessageRef) error {
	if err := s.Cache.Set(ctx, sessionKey(chatID), ref.String(), sessionTTL); err != nil {
		return fmt.Errorf("failed to open intake session: %w", err)
	}
	return nil
}

// currentSession возвращает ссылку на гадание, открытое в этом чате.
// Если сессии нет, возвращает (MessageRef{}, false, nil)
func (s *Service) currentSession(ctx context.Context, chatID int64) (domain.MessageRef, bool, error) {
	val, err := s.Cache.Get(ctx, sessionKey(chatID))
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return domain.MessageRef{}, false, nil
		}
		return domain.MessageRef{}, false, fmt.Errorf("failed to read intake session: %w", err)
	}

	ref, err := domain.ParseMessageRef(val)
	if err != nil {
		// битая сессия - закрываем её, пусть пользователь откроет заново
		s.Log.Warn("corrupt intake session, dropping",
			"chat_id", chatID,
			"value", val,
			"error", err,
		)
		_ = s.Cache.Delete(ctx, sessionKey(chatID))
		return domain.MessageRef{}, false, nil
	}

	return ref, true, nil
}

// closeSession отвязывает чат от гадания
func (s *Service) closeSession(ctx context.Context, chatID int64) {
	if err := s.Cache.Delete(ctx, sessionKey(chatID)); err != nil {
		s.Log.Warn("failed to close intake session",
			"chat_id", chatID,
			"error", err,
		)
	}
}
