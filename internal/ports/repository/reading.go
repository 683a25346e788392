package repository

import (
	"context"
	"errors"

	"github.com/hachimada/soothsayer/internal/domain"
)

// ErrNotFound состояние с таким (platform, message_id) не найдено
var ErrNotFound = errors.New("reading state not found")

// IReadingRepo интерфейс для работы с состояниями гаданий
// Состояния ключуются парой (platform, message_id)
type IReadingRepo interface {
	Create(ctx context.Context, state *domain.ReadingState) error
	GetByRef(ctx context.Context, ref domain.MessageRef) (*domain.ReadingState, error)
	Update(ctx context.Context, state *domain.ReadingState) error

	// ListUnprocessed возвращает целевые состояния без текста гадания
	ListUnprocessed(ctx context.Context, limit int) ([]*domain.ReadingState, error)
	// ListPendingPlayback возвращает состояния с готовым голосом, ещё не проигранные
	ListPendingPlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error)
	// ListDeliverablePlayback то же, но только состояния с известным чатом
	ListDeliverablePlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error)
	MarkPlayed(ctx context.Context, ref domain.MessageRef) error
}
