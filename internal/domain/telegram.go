package domain

// дока - https://core.telegram.org/bots/api

// Update - входящее обновление от Telegram Bot API
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
	// Можно добавить другие типы обновлений по мере необходимости:
	// EditedMessage      *Message `json:"edited_message,omitempty"`
	// и т.д.
}

// Message - сообщение от Telegram Bot API
type Message struct {
	MessageID int64         `json:"message_id"`
	From      *TelegramUser `json:"from,omitempty"` // отправитель (Telegram User)
	Chat      *Chat         `json:"chat"`           // чат
	Date      int64         `json:"date"`           // Unix timestamp
	Text      *string       `json:"text,omitempty"` // текст сообщения
}

// TelegramUser - пользователь Telegram
type TelegramUser struct {
	ID        int64   `json:"id"`
	IsBot     bool    `json:"is_bot"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
}

// Chat - чат в Telegram
type Chat struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"` // "private", "group", "supergroup", "channel"
	Title     *string `json:"title,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
}

type BotType string

const (
	BotTypeSoothsayer BotType = "soothsayer"
)

func (bt BotType) String() string {
	return string(bt)
}

func (bt BotType) IsValid() bool {
	switch bt {
	case BotTypeSoothsayer:
		return true
	default:
		return false
	}
}

type BotId string
