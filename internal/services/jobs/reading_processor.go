package jobs

import (
	"context"
	"log/slog"
	"time"

	readingUsecase "github.com/hachimada/soothsayer/internal/usecases/reading"
)

const readingProcessorName = "reading-processor"

// батч на один прогон, чтобы не съесть астро-API за раз
const readingProcessorBatch = 20

// ReadingProcessor джоба, которая добирает заполненные, но не обработанные
// гадания. Основной путь - обработка сразу после интейка; джоба закрывает
// случаи рестарта сервиса посреди пайплайна
type ReadingProcessor struct {
	readingService *readingUsecase.Service
	interval       time.Duration
	log            *slog.Logger
}

// NewReadingProcessor создаёт джобу дообработки гаданий
func NewReadingProcessor(readingService *readingUsecase.Service, interval time.Duration, log *slog.Logger) *ReadingProcessor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &ReadingProcessor{
		readingService: readingService,
		interval:       interval,
		log:            log,
	}
}

func (j *ReadingProcessor) Name() string {
	return readingProcessorName
}

// NextRun раз в interval
func (j *ReadingProcessor) NextRun(now time.Time) time.Time {
	return now.Add(j.interval)
}

// Run прогоняет заполненные анкеты через пайплайн гадания
func (j *ReadingProcessor) Run(ctx context.Context) error {
	states, err := j.readingService.ReadingRepo.ListUnprocessed(ctx, readingProcessorBatch)
	if err != nil {
		return err
	}

	var processed int
	for _, state := range states {
		// в списке есть и состояния с недобранной анкетой - пропускаем
		if !state.RequiredInfo.SatisfiedAll() {
			continue
		}

		if err := j.readingService.ProcessReading(ctx, state); err != nil {
			j.log.Error("failed to process stale reading",
				"error", err,
				"ref", state.Ref().String(),
			)
			continue
		}
		processed++
	}

	if processed > 0 {
		j.log.Info("stale readings processed", "count", processed)
	}

	return nil
}
