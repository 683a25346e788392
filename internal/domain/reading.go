package domain

import (
	"fmt"
	"strings"
	"time"
)

// Platform источник сообщения, из которого пришёл запрос на гадание
// Сейчас поддерживаем telegram, youtube зарезервирован для live-чата
type Platform string

const (
	PlatformTelegram Platform = "telegram"
	PlatformYouTube  Platform = "youtube"
)

func (p Platform) String() string {
	return string(p)
}

func (p Platform) IsValid() bool {
	switch p {
	case PlatformTelegram, PlatformYouTube:
		return true
	default:
		return false
	}
}

// MessageID непрозрачный идентификатор сообщения в рамках платформы
type MessageID string

// MessageRef ссылка на исходное сообщение: ID сам по себе уникален только
// внутри платформы, поэтому носим дискриминатор рядом, а не any
type MessageRef struct {
	Platform Platform  `json:"platform" db:"platform"`
	ID       MessageID `json:"message_id" db:"message_id"`
}

func (m MessageRef) String() string {
	return fmt.Sprintf("%s:%s", m.Platform, m.ID)
}

// ParseMessageRef разбирает строку вида "telegram:12345" обратно в MessageRef
func ParseMessageRef(s string) (MessageRef, error) {
	platform, id, ok := strings.Cut(s, ":")
	if !ok {
		return MessageRef{}, fmt.Errorf("invalid message ref: %q", s)
	}

	p := Platform(platform)
	if !p.IsValid() {
		return MessageRef{}, fmt.Errorf("invalid platform in message ref: %q", platform)
	}
	if id == "" {
		return MessageRef{}, fmt.Errorf("empty message id in ref: %q", s)
	}

	return MessageRef{Platform: p, ID: MessageID(id)}, nil
}

// ReadingState состояние одного гадания, ключуется по исходному сообщению.
// Поля мутируются внешними участниками по ходу пайплайна:
// коллектор заполняет RequiredInfo, астро-движок пишет Result,
// синтез голоса - ResultVoicePath, доставка выставляет IsPlayed
type ReadingState struct {
	MessageID       MessageID `json:"message_id" db:"message_id"`
	Platform        Platform  `json:"platform" db:"platform"`
	ChatID          int64     `json:"chat_id" db:"chat_id"` // куда доставлять готовое гадание
	IsTarget        bool      `json:"is_target" db:"is_target"`
	RequiredInfo    BirthInfo `json:"required_info" db:"required_info"`
	Result          string    `json:"result" db:"result"`
	ResultVoicePath string    `json:"result_voice_path" db:"result_voice_path"`
	IsPlayed        bool      `json:"is_played" db:"is_played"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"` // выставляется один раз при создании
}

// InitialReadingState создаёт состояние с пустой анкетой
func InitialReadingState(msg MessageRef, isTarget bool) *ReadingState {
	return &ReadingState{
		MessageID:       msg.ID,
		Platform:        msg.Platform,
		IsTarget:        isTarget,
		RequiredInfo:    InitialBirthInfo(),
		Result:          "",
		ResultVoicePath: "",
		IsPlayed:        false,
		CreatedAt:       time.Now(),
	}
}

// Ref возвращает ссылку на исходное сообщение
func (s *ReadingState) Ref() MessageRef {
	return MessageRef{Platform: s.Platform, ID: s.MessageID}
}

// HasResult сообщает, записал ли астро-движок текст гадания
func (s *ReadingState) HasResult() bool {
	return s.Result != ""
}

// HasVoice сообщает, готов ли синтезированный голосовой файл
func (s *ReadingState) HasVoice() bool {
	return s.ResultVoicePath != ""
}
