package astroApi

import (
	"context"
	"fmt"

	astroApiAdapter "github.com/hachimada/soothsayer/internal/adapters/secondary/astroApi"
	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/service"
)

// Service реализует IAstrologyService поверх клиента астро-API
type Service struct {
	client *astroApiAdapter.Client
}

// New создаёт новый сервис для работы с астро-API
func New(client *astroApiAdapter.Client) service.IAstrologyService {
	return &Service{
		client: client,
	}
}

// GetReading запрашивает текст западного астрологического гадания
// Анкета должна быть заполнена (SatisfiedAll), но это ответственность вызывающего
func (s *Service) GetReading(ctx context.Context, info domain.BirthInfo, loc domain.Location) (domain.AstrologyResult, error) {
	req := astroApiAdapter.ReadingRequest{
		Subject: astroApiAdapter.Subject{
			Name:       info.Name,
			Birthday:   info.Birthday,
			BirthTime:  info.BirthTime,
			Birthplace: info.Birthplace,
			Worries:    info.Worries,
		},
		Location: astroApiAdapter.GeoPoint{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		},
		Options: astroApiAdapter.ReadingOptions{
			HouseSystem: "P", // Плацидус
			ZodiacType:  "Tropic",
			Language:    "ja",
		},
	}

	resp, err := s.client.GetReading(ctx, req)
	if err != nil {
		return domain.AstrologyResult{IsOK: false}, fmt.Errorf("failed to get reading: %w", err)
	}

	if resp.Status != "" && resp.Status != "success" {
		return domain.AstrologyResult{IsOK: false}, fmt.Errorf("astro API returned error: status=%s, code=%d, message=%s",
			resp.Status, resp.Code, resp.Message)
	}

	if resp.Reading == "" {
		return domain.AstrologyResult{IsOK: false}, fmt.Errorf("astro API returned empty reading")
	}

	return domain.AstrologyResult{Value: resp.Reading, IsOK: true}, nil
}

// ResolveLocation разрешает свободный текст места рождения в координаты
func (s *Service) ResolveLocation(ctx context.Context, birthplace string) (domain.Location, error) {
	if birthplace == "" {
		return domain.Location{}, fmt.Errorf("birthplace is empty")
	}

	resp, err := s.client.Geocode(ctx, astroApiAdapter.GeocodeRequest{Place: birthplace})
	if err != nil {
		return domain.Location{}, fmt.Errorf("failed to geocode birthplace: %w", err)
	}

	if resp.Status != "" && resp.Status != "success" {
		return domain.Location{}, fmt.Errorf("geocode returned error: status=%s, code=%d, message=%s",
			resp.Status, resp.Code, resp.Message)
	}

	return domain.Location{Latitude: resp.Latitude, Longitude: resp.Longitude}, nil
}
