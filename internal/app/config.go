package app

import (
	"fmt"
	"time"

	server "github.com/hachimada/soothsayer/internal/adapters/primary/http"
	astroApi "github.com/hachimada/soothsayer/internal/adapters/secondary/astroApi"
	kafkaAdapter "github.com/hachimada/soothsayer/internal/adapters/secondary/kafka"
	"github.com/hachimada/soothsayer/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/hachimada/soothsayer/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/hachimada/soothsayer/internal/adapters/secondary/storage/s3"
	"github.com/hachimada/soothsayer/internal/adapters/secondary/telegram"
	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres *pg.Config                `envconfig:"POSTGRES"`
	Log      *logger.Config            `envconfig:"LOG"`
	Server   *server.Config            `envconfig:"APISERVER"`
	Telegram *telegram.Config          `envconfig:"TELEGRAM"`
	AstroAPI *astroApi.Config          `envconfig:"ASTRO_API"`
	Redis    *redisAdapter.Config      `envconfig:"REDIS"`
	S3       *s3Adapter.Config         `envconfig:"S3"`
	Jobs     *JobsConfig               `envconfig:"JOBS"`
	Bots     BotsConfig                `envconfig:"BOTS"`
	Kafka    kafkaAdapter.KafkaConfigs `envconfig:"KAFKA"`
}

// JobsConfig интервалы фоновых джоб
type JobsConfig struct {
	ProcessInterval  time.Duration `envconfig:"PROCESS_INTERVAL" default:"5m"`
	PlaybackInterval time.Duration `envconfig:"PLAYBACK_INTERVAL" default:"10m"`
}

// BotsConfig конфигурация ботов
type BotsConfig struct {
	Count int         `envconfig:"COUNT" default:"1"`
	List  []BotConfig `envconfig:"-"` // Игнорируем envconfig, загружаем вручную
}

// Load загружает конфигурацию ботов из переменных окружения
func (bc *BotsConfig) Load(envPrefix string) error {
	bc.List = make([]BotConfig, bc.Count)
	for i := 0; i < bc.Count; i++ {
		prefix := fmt.Sprintf("%s_BOTS_%d", envPrefix, i) // SOOTHSAYER_BOTS_0, SOOTHSAYER_BOTS_1, ...
		var bot BotConfig
		if err := envconfig.Process(prefix, &bot); err != nil {
			return fmt.Errorf("failed to load bot %d: %w", i, err)
		}
		bc.List[i] = bot
	}
	return nil
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	// Загружаем ботов вручную (envconfig не умеет автоматически определять размер слайса)
	if err := cfg.Bots.Load(envPrefix); err != nil {
		return nil, fmt.Errorf("failed to load bots config: %w", err)
	}

	// Загружаем Kafka конфигурацию вручную
	if err := cfg.Kafka.Load(envPrefix); err != nil {
		return nil, fmt.Errorf("failed to load kafka config: %w", err)
	}

	return cfg, nil
}

// BotConfig конфигурация одного бота
type BotConfig struct {
	BotID    string `envconfig:"ID" required:"true"`    // SOOTHSAYER_BOTS_0_ID, SOOTHSAYER_BOTS_1_ID, ...
	BotType  string `envconfig:"TYPE" required:"true"`  // SOOTHSAYER_BOTS_0_TYPE, ...
	BotToken string `envconfig:"TOKEN" required:"true"` // SOOTHSAYER_BOTS_0_TOKEN, ...
}

func (c *BotConfig) Validate() error {
	if c.BotID == "" {
		return fmt.Errorf("bot_id is required")
	}
	if c.BotType == "" {
		return fmt.Errorf("bot_type is required")
	}
	if c.BotToken == "" {
		return fmt.Errorf("bot_token is required")
	}

	// Проверяем валидность bot_type
	botType := domain.BotType(c.BotType)
	if !botType.IsValid() {
		return fmt.Errorf("invalid bot_type: %s", c.BotType)
	}

	return nil
}

func (c *BotConfig) ToDomain() (domain.BotId, domain.BotType, error) {
	if err := c.Validate(); err != nil {
		return "", "", fmt.Errorf("invalid bot config: %w", err)
	}

	return domain.BotId(c.BotID), domain.BotType(c.BotType), nil
}
