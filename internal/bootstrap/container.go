package bootstrap

import (
	"context"
	"log"
	"time"

	"career-discovery-be/internal/config"
	"career-discovery-be/internal/constant"
	"career-discovery-be/internal/controller"
	"career-discovery-be/internal/pkg/logger"
	"career-discovery-be/internal/pkg/mailer"
	"career-discovery-be/internal/repository/implementation"
	"career-discovery-be/internal/repository/memory"
	"career-discovery-be/internal/repository/unitofwork"
	"career-discovery-be/internal/service"
	"career-discovery-be/pkg/llm/factory"

	pktNats "career-discovery-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	ReportController       controller.IReportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// Initialize In-Memory Live State Storage
	liveRepo := memory.NewLiveStateRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Services
	publisherService := service.NewPublisherService(constant.ReportGeneratedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.ReportGeneratedTopic,
		uowFactory,
		natsPub,
	)

	conversationService := service.NewConversationService(
		uowFactory,
		llmProvider,
		liveRepo,
		publisherService,
		natsPub,
		sysLogger,
		time.Duration(cfg.Ai.ReplyTimeout)*time.Second,
	)

	reportService := service.NewReportService(
		implementation.NewCareerReportRepository(db),
		implementation.NewConversationSessionRepository(db),
		rdb,
		emailService,
		natsPub,
		sysLogger,
		cfg.App.ClientURL,
	)

	// 4. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService),
		ReportController:       controller.NewReportController(reportService),

		ConsumerService: consumerService,
	}
}
