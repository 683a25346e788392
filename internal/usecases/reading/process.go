package reading

import (
	"context"
	"fmt"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/usecases/reading/texts"
)

// ProcessReading прогоняет заполненную анкету через астро-движок и
// ставит результат в очередь на озвучку.
// Вызывается из интейка и из фоновой джобы, поэтому идемпотентен:
// состояние с готовым результатом не пересчитывается
func (s *Service) ProcessReading(ctx context.Context, state *domain.ReadingState) error {
	if state.HasResult() {
		return nil
	}

	if !state.RequiredInfo.SatisfiedAll() {
		return fmt.Errorf("reading %s is not satisfied yet", state.Ref().String())
	}

	result := s.computeReading(ctx, state)

	state.Result = result.Value
	if err := s.ReadingRepo.Update(ctx, state); err != nil {
		return fmt.Errorf("failed to save reading result: %w", err)
	}

	s.Log.Info("reading computed",
		"ref", state.Ref().String(),
		"is_ok", result.IsOK,
		"result_length", len(result.Value),
	)

	// текст отправляем сразу, голос придёт позже через Kafka
	if state.ChatID != 0 {
		if err := s.sendMessage(ctx, s.BotID, state.ChatID,
			texts.FormatReading(state.RequiredInfo.Name, result.Value)); err != nil {
			s.Log.Error("failed to deliver reading text",
				"error", err,
				"ref", state.Ref().String(),
				"chat_id", state.ChatID,
			)
		}
	}

	// фолбэк-текст не озвучиваем
	if !result.IsOK {
		return nil
	}

	if s.VoiceProducer == nil {
		s.Log.Warn("voice producer is not configured, reading stays text-only",
			"ref", state.Ref().String(),
		)
		return nil
	}

	if err := s.VoiceProducer.SendSynthesisRequest(ctx, state.Ref(), state.ChatID, result.Value); err != nil {
		s.Log.Error("failed to request voice synthesis",
			"error", err,
			"ref", state.Ref().String(),
		)
		return fmt.Errorf("failed to request voice synthesis: %w", err)
	}

	return nil
}

// computeReading запрашивает гадание у астро-движка.
// Ошибки движка не валят пайплайн - вместо текста пишется фолбэк
func (s *Service) computeReading(ctx context.Context, state *domain.ReadingState) domain.AstrologyResult {
	if s.Astrology == nil {
		s.Log.Error("astrology engine is not configured", "ref", state.Ref().String())
		return domain.AstrologyResult{Value: texts.ReadingFallback, IsOK: false}
	}

	loc, err := s.Astrology.ResolveLocation(ctx, state.RequiredInfo.Birthplace)
	if err != nil {
		s.Log.Error("failed to resolve birthplace",
			"error", err,
			"ref", state.Ref().String(),
			"birthplace", state.RequiredInfo.Birthplace,
		)
		return domain.AstrologyResult{Value: texts.ReadingFallback, IsOK: false}
	}

	result, err := s.Astrology.GetReading(ctx, state.RequiredInfo, loc)
	if err != nil {
		s.Log.Error("failed to get reading from astro engine",
			"error", err,
			"ref", state.Ref().String(),
		)
		return domain.AstrologyResult{Value: texts.ReadingFallback, IsOK: false}
	}

	return result
}
