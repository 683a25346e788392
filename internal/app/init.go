package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	server "github.com/hachimada/soothsayer/internal/adapters/primary/http"
	healthcheckController "github.com/hachimada/soothsayer/internal/adapters/primary/http/controllers/healthcheck"
	readingsController "github.com/hachimada/soothsayer/internal/adapters/primary/http/controllers/readings"
	telegramController "github.com/hachimada/soothsayer/internal/adapters/primary/http/controllers/telegram"
	kafkaConsumerAdapter "github.com/hachimada/soothsayer/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/hachimada/soothsayer/internal/adapters/primary/kafka/handlers"
	astroApiAdapter "github.com/hachimada/soothsayer/internal/adapters/secondary/astroApi"
	kafkaAdapter "github.com/hachimada/soothsayer/internal/adapters/secondary/kafka"
	"github.com/hachimada/soothsayer/internal/adapters/secondary/storage/inmemory"
	"github.com/hachimada/soothsayer/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/hachimada/soothsayer/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/hachimada/soothsayer/internal/adapters/secondary/storage/s3"
	tgAdapter "github.com/hachimada/soothsayer/internal/adapters/secondary/telegram"
	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/cache"
	kafkaPorts "github.com/hachimada/soothsayer/internal/ports/kafka"
	"github.com/hachimada/soothsayer/internal/ports/repository"
	"github.com/hachimada/soothsayer/internal/ports/service"
	storagePorts "github.com/hachimada/soothsayer/internal/ports/storage"
	telegramPorts "github.com/hachimada/soothsayer/internal/ports/telegram"
	readingRepo "github.com/hachimada/soothsayer/internal/repository/reading"
	astroApiService "github.com/hachimada/soothsayer/internal/services/astroApi"
	jobScheduler "github.com/hachimada/soothsayer/internal/services/jobs"
	telegramService "github.com/hachimada/soothsayer/internal/services/telegram"
	readingUsecase "github.com/hachimada/soothsayer/internal/usecases/reading"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB              *sqlx.DB
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClients map[domain.BotId]*tgAdapter.Client
	TelegramPoller  *tgAdapter.Poller
	PollerBotID     domain.BotId
	KafkaProducers  map[string]*kafkaAdapter.Producer
	KafkaConsumers  map[string]*kafkaConsumerAdapter.Consumer
	Cache           cache.Cache
	JobScheduler    *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	readings := a.initRepositories(db)
	telegramClients, tgService, err := a.initTelegram(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram: %w", err)
	}

	externalServices := a.initExternalServices()
	kafkaProducers := a.initKafkaProducers()

	readingUseCase := a.initUseCases(readings, tgService, externalServices, kafkaProducers)
	tgService.SetBotServices(map[domain.BotType]service.IBotService{
		domain.BotTypeSoothsayer: readingUseCase,
	})

	kafkaConsumers := a.initKafkaConsumers(readingUseCase)

	httpServer := a.initHTTP(db, tgService, readingUseCase)
	poller, pollerBotID, err := a.initTelegramMode(ctx, tgService, telegramClients)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	scheduler := a.initJobScheduler(readingUseCase)

	return &Dependencies{
		DB:              db,
		HTTPServer:      httpServer,
		TelegramService: tgService,
		TelegramClients: telegramClients,
		TelegramPoller:  poller,
		PollerBotID:     pollerBotID,
		KafkaProducers:  kafkaProducers,
		KafkaConsumers:  kafkaConsumers,
		Cache:           externalServices.Cache,
		JobScheduler:    scheduler,
	}, nil
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) repository.IReadingRepo {
	persistenceLayer := pg.NewDB(db)
	return readingRepo.New(persistenceLayer, a.Log)
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Astrology    service.IAstrologyService
	Cache        cache.Cache
	VoiceStorage storagePorts.IS3Client
}

// initExternalServices инициализирует внешние сервисы (AstroAPI, Cache, S3)
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{}

	// AstroAPI - обязательный
	if a.Cfg.AstroAPI == nil {
		a.Log.Warn("astro API configuration is missing")
	} else {
		astroAPIClient := astroApiAdapter.NewClient(a.Cfg.AstroAPI, a.Log)
		services.Astrology = astroApiService.New(astroAPIClient)
	}

	// Redis Cache - опциональный, без него интейк-сессии живут в памяти процесса
	if a.Cfg.Redis != nil {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, falling back to in-memory sessions", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}
	if services.Cache == nil {
		services.Cache = inmemory.New()
		a.Log.Warn("intake sessions are stored in-memory and will not survive a restart")
	}

	// S3 - опциональный, без него гадания остаются текстовыми
	if a.Cfg.S3 != nil {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3 voice storage, continuing without voice", "error", err)
		} else {
			services.VoiceStorage = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 voice storage connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	return services
}

// initTelegram инициализирует Telegram клиенты и сервис
func (a *App) initTelegram(ctx context.Context) (
	clients map[domain.BotId]*tgAdapter.Client,
	tgSvc *telegramService.Service,
	err error,
) {
	if len(a.Cfg.Bots.List) == 0 {
		return nil, nil, fmt.Errorf("no bots configured: at least one bot must be specified via BOTS_COUNT and BOTS_0_* environment variables")
	}

	botIDToType := make(map[domain.BotId]domain.BotType)
	clients = make(map[domain.BotId]*tgAdapter.Client)
	clientPorts := make(map[domain.BotId]telegramPorts.IClient)

	for i, botCfg := range a.Cfg.Bots.List {
		botID, botType, err := botCfg.ToDomain()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert bot config at index %d: %w", i, err)
		}

		botIDToType[botID] = botType
		clients[botID] = tgAdapter.NewClient(botCfg.BotToken, a.Log)
		clientPorts[botID] = clients[botID]

		// Проверяем токен сразу, чтобы не узнать о нём из первого апдейта
		if err := clients[botID].GetMe(ctx); err != nil {
			return nil, nil, fmt.Errorf("bot %s token check failed: %w", botID, err)
		}

		if err := a.registerBotCommands(ctx, clients[botID]); err != nil {
			a.Log.Warn("failed to register bot commands", "error", err, "bot_id", botID)
		}
	}

	tgSvc = telegramService.New(
		botIDToType,
		make(map[domain.BotType]service.IBotService), // будет заполнен после создания UseCase
		clientPorts,
		a.Log,
	)

	return clients, tgSvc, nil
}

// initKafkaProducers инициализирует Kafka producers (topic без consumer group)
func (a *App) initKafkaProducers() map[string]*kafkaAdapter.Producer {
	producers := make(map[string]*kafkaAdapter.Producer)

	for _, kafkaCfg := range a.Cfg.Kafka.List {
		if kafkaCfg.Config == nil {
			continue
		}
		if kafkaCfg.Config.Topic == "" || kafkaCfg.Config.ConsumerGroup != "" {
			continue
		}

		prod, err := kafkaAdapter.NewProducer(kafkaCfg.Config, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer", "error", err, "name", kafkaCfg.Name)
			continue
		}
		producers[kafkaCfg.Name] = prod
	}

	return producers
}

// initKafkaConsumers инициализирует Kafka consumers (есть consumer group)
func (a *App) initKafkaConsumers(readingUseCase *readingUsecase.Service) map[string]*kafkaConsumerAdapter.Consumer {
	consumers := make(map[string]*kafkaConsumerAdapter.Consumer)

	for _, kafkaCfg := range a.Cfg.Kafka.List {
		if kafkaCfg.Config == nil || kafkaCfg.Config.ConsumerGroup == "" {
			continue
		}

		handler := a.createHandlerForTopic(kafkaCfg.Name, readingUseCase)
		if handler == nil {
			a.Log.Warn("no handler for kafka topic, skipping consumer", "name", kafkaCfg.Name)
			continue
		}

		consumer, err := kafkaConsumerAdapter.NewConsumer(kafkaCfg.Config, handler, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka consumer", "error", err, "name", kafkaCfg.Name)
			continue
		}
		consumers[kafkaCfg.Name] = consumer
	}

	return consumers
}

// initUseCases инициализирует UseCases приложения
func (a *App) initUseCases(
	readings repository.IReadingRepo,
	tgService *telegramService.Service,
	externalServices *externalServices,
	kafkaProducers map[string]*kafkaAdapter.Producer,
) *readingUsecase.Service {
	var voiceProducer kafkaPorts.IVoiceProducer
	if prod, ok := kafkaProducers["voice_requests"]; ok {
		voiceProducer = prod
	}

	// от имени первого бота доставляются гадания, инициированные не из чата
	firstBotID, _, _ := a.Cfg.Bots.List[0].ToDomain()

	return readingUsecase.New(
		readings,
		externalServices.Cache,
		tgService,
		externalServices.Astrology,
		voiceProducer,                 // может быть nil
		externalServices.VoiceStorage, // может быть nil
		firstBotID,
		a.Log,
	)
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	tgService *telegramService.Service,
	readingUseCase *readingUsecase.Service,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		telegramController.New(tgService, a.Log),
		readingsController.New(readingUseCase, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgService *telegramService.Service,
	telegramClients map[domain.BotId]*tgAdapter.Client,
) (*tgAdapter.Poller, domain.BotId, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
	)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		if err := a.setupWebhooks(ctx, telegramClients); err != nil {
			return nil, "", fmt.Errorf("failed to setup webhooks: %w", err)
		}
		return nil, "", nil // webhook режим, poller не нужен
	}

	a.Log.Warn("polling mode enabled - this should only be used for local development")
	poller, botID := a.initPolling(tgService, telegramClients)
	return poller, botID, nil
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(readingUseCase *readingUsecase.Service) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log)

	var processInterval, playbackInterval time.Duration
	if a.Cfg.Jobs != nil {
		processInterval = a.Cfg.Jobs.ProcessInterval
		playbackInterval = a.Cfg.Jobs.PlaybackInterval
	}

	readingProcessor := jobScheduler.NewReadingProcessor(readingUseCase, processInterval, a.Log)
	scheduler.Register(readingProcessor)
	a.Log.Info("reading processor job registered")

	playbackRetryer := jobScheduler.NewPlaybackRetryer(readingUseCase, playbackInterval, a.Log)
	scheduler.Register(playbackRetryer)
	a.Log.Info("playback retryer job registered")

	return scheduler
}

// setupWebhooks устанавливает webhook для всех ботов
func (a *App) setupWebhooks(ctx context.Context, telegramClients map[domain.BotId]*tgAdapter.Client) error {
	if a.Cfg.Telegram.WebhookURL == "" {
		return fmt.Errorf("webhook_url is required when use_webhook is true")
	}

	webhookURL := fmt.Sprintf("%s/webhook", a.Cfg.Telegram.WebhookURL)

	for botID, client := range telegramClients {
		if err := client.SetWebhook(ctx, webhookURL, string(botID)); err != nil {
			a.Log.Error("failed to set webhook", "error", err, "bot_id", botID, "webhook_url", webhookURL)
			return fmt.Errorf("failed to set webhook for bot %s: %w", botID, err)
		}

		a.Log.Info("webhook set successfully", "bot_id", botID, "webhook_url", webhookURL)
	}

	return nil
}

// initPolling инициализирует polling для локальной разработки
func (a *App) initPolling(
	tgService *telegramService.Service,
	telegramClients map[domain.BotId]*tgAdapter.Client,
) (*tgAdapter.Poller, domain.BotId) {
	handler := func(ctx context.Context, botID domain.BotId, update *domain.Update) error {
		return tgService.HandleUpdate(ctx, botID, update)
	}

	firstBotCfg := a.Cfg.Bots.List[0]
	firstBotID, _, _ := firstBotCfg.ToDomain()

	poller := tgAdapter.NewPoller(
		telegramClients[firstBotID],
		a.Cfg.Telegram,
		handler,
		a.Log,
	)

	return poller, firstBotID
}

// registerBotCommands регистрирует команды бота в Telegram
func (a *App) registerBotCommands(ctx context.Context, client *tgAdapter.Client) error {
	commands := []tgAdapter.BotCommand{
		{Command: "start", Description: "Начать работу с ботом"},
		{Command: "reading", Description: "Начать новое гадание"},
		{Command: "help", Description: "Показать справку"},
	}

	return client.SetMyCommands(ctx, commands)
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres() (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// createHandlerForTopic создаёт handler для указанного топика Kafka
func (a *App) createHandlerForTopic(
	topicName string,
	readingUseCase *readingUsecase.Service,
) kafkaPorts.MessageHandler {
	switch topicName {
	case "voice_results":
		return kafkaHandlers.NewVoiceResultHandler(readingUseCase, a.Log)
	default:
		a.Log.Warn("unknown kafka topic, using default handler", "topic", topicName)
		return nil
	}
}
