package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/hachimada/soothsayer/internal/domain"
	kafkaPorts "github.com/hachimada/soothsayer/internal/ports/kafka"
)

// VoiceApplier часть usecase гадателя, нужная обработчику результатов синтеза
type VoiceApplier interface {
	ApplyVoiceResult(ctx context.Context, ref domain.MessageRef, chatID int64, voicePath string) error
}

// VoiceResultHandler обрабатывает результаты синтеза голоса от воркера
type VoiceResultHandler struct {
	Readings VoiceApplier
	Log      *slog.Logger
}

// NewVoiceResultHandler создаёт новый handler для результатов синтеза
func NewVoiceResultHandler(readings VoiceApplier, log *slog.Logger) kafkaPorts.MessageHandler {
	return &VoiceResultHandler{
		Readings: readings,
		Log:      log,
	}
}

// HandleMessage обрабатывает сообщение от воркера синтеза.
// Ссылка на гадание едет в ключе сообщения ("platform:id") - тем же ключом
// producer отправлял запрос на синтез, воркер возвращает его как есть
func (h *VoiceResultHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	ref, err := domain.ParseMessageRef(key)
	if err != nil {
		return fmt.Errorf("invalid voice result key %q: %w", key, err)
	}

	var result VoiceResultMessage
	if err := json.Unmarshal(value, &result); err != nil {
		return fmt.Errorf("failed to unmarshal voice result: %w", err)
	}

	if !result.IsOK {
		h.Log.Warn("voice synthesis failed on worker side",
			"ref", ref.String(),
			"chat_id", result.ChatID,
		)
		return nil
	}

	if result.VoicePath == "" {
		return fmt.Errorf("voice_path is required in successful voice result")
	}

	h.Log.Debug("processing voice result",
		"ref", ref.String(),
		"chat_id", result.ChatID,
		"voice_path", result.VoicePath,
	)

	if err := h.Readings.ApplyVoiceResult(ctx, ref, result.ChatID, result.VoicePath); err != nil {
		return fmt.Errorf("failed to apply voice result: %w", err)
	}

	return nil
}

// VoiceResultMessage структура результата синтеза от воркера
type VoiceResultMessage struct {
	ChatID    int64  `json:"chat_id"`
	VoicePath string `json:"voice_path"`
	IsOK      bool   `json:"is_ok"`
}
