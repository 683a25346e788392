package service

import (
	"context"

	"github.com/hachimada/soothsayer/internal/domain"
)

// IAstrologyService интерфейс для работы с астро-движком
// Принимает заполненную анкету (после SatisfiedAll) и координаты места рождения
type IAstrologyService interface {
	GetReading(ctx context.Context, info domain.BirthInfo, loc domain.Location) (domain.AstrologyResult, error)
	ResolveLocation(ctx context.Context, birthplace string) (domain.Location, error)
}
