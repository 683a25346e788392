package reading

import (
	"log/slog"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/cache"
	"github.com/hachimada/soothsayer/internal/ports/kafka"
	"github.com/hachimada/soothsayer/internal/ports/repository"
	"github.com/hachimada/soothsayer/internal/ports/service"
	"github.com/hachimada/soothsayer/internal/ports/storage"
)

// Service бизнес-логика гадателя: сбор анкеты, расчёт гадания, озвучка
type Service struct {
	ReadingRepo   repository.IReadingRepo
	Cache         cache.Cache
	Telegram      service.ITelegramService
	Astrology     service.IAstrologyService
	VoiceProducer kafka.IVoiceProducer
	VoiceStorage  storage.IS3Client
	// BotID бот, от имени которого доставляются готовые гадания
	// (результаты приходят из Kafka и фоновых джоб без контекста бота)
	BotID domain.BotId
	Log   *slog.Logger
}

// New создаёт новый сервис гадателя
func New(
	readingRepo repository.IReadingRepo,
	sessionCache cache.Cache,
	telegram service.ITelegramService,
	astrology service.IAstrologyService,
	voiceProducer kafka.IVoiceProducer,
	voiceStorage storage.IS3Client,
	botID domain.BotId,
	log *slog.Logger,
) *Service {
	return &Service{
		ReadingRepo:   readingRepo,
		Cache:         sessionCache,
		Telegram:      telegram,
		Astrology:     astrology,
		VoiceProducer: voiceProducer,
		VoiceStorage:  voiceStorage,
		BotID:         botID,
		Log:           log,
	}
}
