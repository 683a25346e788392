package jobs

import (
	"context"
	"log/slog"
	"time"

	readingUsecase "github.com/hachimada/soothsayer/internal/usecases/reading"
)

const playbackRetryerName = "playback-retryer"

const playbackRetryerBatch = 20

// PlaybackRetryer джоба, которая доигрывает гадания с готовым голосом,
// не доставленные с первого раза (чат был недоступен, S3 моргнул и т.п.)
type PlaybackRetryer struct {
	readingService *readingUsecase.Service
	interval       time.Duration
	log            *slog.Logger
}

// NewPlaybackRetryer создаёт джобу доигрывания голосовых гаданий
func NewPlaybackRetryer(readingService *readingUsecase.Service, interval time.Duration, log *slog.Logger) *PlaybackRetryer {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &PlaybackRetryer{
		readingService: readingService,
		interval:       interval,
		log:            log,
	}
}

func (j *PlaybackRetryer) Name() string {
	return playbackRetryerName
}

// NextRun раз в interval
func (j *PlaybackRetryer) NextRun(now time.Time) time.Time {
	return now.Add(j.interval)
}

// Run доигрывает зависшие голосовые гадания. Берём только состояния с известным
// чатом: остальным некуда доставлять, и попытки будут падать на каждом тике
func (j *PlaybackRetryer) Run(ctx context.Context) error {
	states, err := j.readingService.DeliverablePlayback(ctx, playbackRetryerBatch)
	if err != nil {
		return err
	}

	var played int
	for _, state := range states {
		if err := j.readingService.PlayReading(ctx, state); err != nil {
			j.log.Warn("failed to replay reading",
				"error", err,
				"ref", state.Ref().String(),
			)
			continue
		}
		played++
	}

	if played > 0 {
		j.log.Info("pending readings played", "count", played)
	}

	return nil
}
