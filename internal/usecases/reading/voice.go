package reading

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/repository"
	"github.com/hachimada/soothsayer/internal/usecases/reading/texts"
)

// ApplyVoiceResult записывает путь к синтезированному голосу и
// сразу пытается проиграть гадание в чат
func (s *Service) ApplyVoiceResult(ctx context.Context, ref domain.MessageRef, chatID int64, voicePath string) error {
	state, err := s.ReadingRepo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// состояние снесли - повторная доставка результата бессмысленна
			s.Log.Warn("voice result for unknown reading state", "ref", ref.String())
			return domain.WrapBusinessError(err)
		}
		return fmt.Errorf("failed to load reading state for voice result: %w", err)
	}

	state.ResultVoicePath = voicePath
	if chatID != 0 && state.ChatID == 0 {
		state.ChatID = chatID
	}

	if err := s.ReadingRepo.Update(ctx, state); err != nil {
		return fmt.Errorf("failed to save voice path: %w", err)
	}

	s.Log.Info("voice result applied",
		"ref", ref.String(),
		"voice_path", voicePath,
	)

	if err := s.PlayReading(ctx, state); err != nil {
		s.Log.Error("failed to play reading",
			"error", err,
			"ref", ref.String(),
		)
		// голос остаётся в pending playback, доиграет джоба или ручка
		return nil
	}

	return nil
}

// PlayReading отправляет голосовое гадание в чат и помечает его проигранным
func (s *Service) PlayReading(ctx context.Context, state *domain.ReadingState) error {
	if !state.HasVoice() {
		return fmt.Errorf("reading %s has no voice yet", state.Ref().String())
	}
	if state.ChatID == 0 {
		return fmt.Errorf("reading %s has no chat to deliver to", state.Ref().String())
	}
	if s.VoiceStorage == nil {
		return fmt.Errorf("voice storage is not configured")
	}

	voice, err := s.VoiceStorage.GetFile(ctx, state.ResultVoicePath)
	if err != nil {
		if sendErr := s.sendMessage(ctx, s.BotID, state.ChatID, texts.VoiceDeliverError); sendErr != nil {
			s.Log.Error("failed to notify about voice error",
				"error", sendErr,
				"ref", state.Ref().String(),
			)
		}
		return fmt.Errorf("failed to fetch voice file: %w", err)
	}

	filename := path.Base(state.ResultVoicePath)
	if err := s.Telegram.SendVoice(ctx, s.BotID, state.ChatID, voice, filename); err != nil {
		return fmt.Errorf("failed to send voice: %w", err)
	}

	if err := s.MarkPlayed(ctx, state.Ref()); err != nil {
		return err
	}

	s.Log.Info("reading played",
		"ref", state.Ref().String(),
		"chat_id", state.ChatID,
		"voice_size", len(voice),
	)

	return nil
}

// PendingPlayback возвращает гадания с готовым голосом, ещё не проигранные
func (s *Service) PendingPlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	states, err := s.ReadingRepo.ListPendingPlayback(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending playback: %w", err)
	}
	return states, nil
}

// DeliverablePlayback возвращает непроигранные гадания, у которых есть и голос,
// и чат для доставки. Состояния без чата сюда не попадают, чтобы фоновая джоба
// не ретраила их впустую
func (s *Service) DeliverablePlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	states, err := s.ReadingRepo.ListDeliverablePlayback(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliverable playback: %w", err)
	}
	return states, nil
}

// MarkPlayed помечает гадание проигранным
func (s *Service) MarkPlayed(ctx context.Context, ref domain.MessageRef) error {
	if err := s.ReadingRepo.MarkPlayed(ctx, ref); err != nil {
		return fmt.Errorf("failed to mark reading as played: %w", err)
	}
	return nil
}
