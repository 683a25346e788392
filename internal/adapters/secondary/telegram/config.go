package telegram

// Config режим получения обновлений, общий для всех ботов.
// Токены у каждого бота свои и живут в конфиге ботов
type Config struct {
	UseWebhook     string `envconfig:"USE_WEBHOOK"` // строка: хостинги подставляют "true"/"1"
	WebhookURL     string `envconfig:"WEBHOOK_URL"`
	PollingTimeout int    `envconfig:"POLLING_TIMEOUT"`
}

// IsWebhookEnabled парсит строку UseWebhook в boolean
func (c *Config) IsWebhookEnabled() bool {
	return c.UseWebhook == "true" || c.UseWebhook == "1" || c.UseWebhook == "True"
}
