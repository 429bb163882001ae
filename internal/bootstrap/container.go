package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rafasilcos/arcflowapp-sub007/internal/config"
	"github.com/rafasilcos/arcflowapp-sub007/internal/controller"
	"github.com/rafasilcos/arcflowapp-sub007/internal/handler"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/mailer"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/memory"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/unitofwork"
	"github.com/rafasilcos/arcflowapp-sub007/internal/service"
	"github.com/rafasilcos/arcflowapp-sub007/internal/websocket"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/autosave"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/overlay"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/resolver"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/events"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
	pktNats "github.com/rafasilcos/arcflowapp-sub007/pkg/nats"
)

type Container struct {
	// Controllers
	BriefingController        controller.IBriefingController
	TemplateController        controller.ITemplateController
	PersonalizationController controller.IPersonalizationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for graceful shutdown: interrupts every open autosave pipeline.
	BriefingService service.IBriefingService

	// WebSockets
	BriefingWsHandler *handler.BriefingWsHandler
	WebSocketHub      *websocket.Hub
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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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

	// Answer and overlay tiers: Redis is the remote store, go-cache the local
	// defensive copy, the snapshot repository the crash recovery tier.
	remoteKV := kvstore.NewRedisStore(rdb)
	localKV := kvstore.NewCacheStore()
	backupRepo := memory.NewBackupRepository()

	// Autosave
	window := time.Duration(cfg.Briefing.DebounceMs) * time.Millisecond
	saveManager := autosave.NewManager(
		remoteKV,
		backupRepo,
		window,
		sysLogger,
		autosave.WithManagerPublisher(pubSub, cfg.Briefing.FlushTopic),
	)

	// Template resolution
	overlayStore := overlay.NewStore(remoteKV, localKV, sysLogger)
	dbCatalog := service.NewDbCatalog(uowFactory, sysLogger)
	templateResolver := resolver.New(overlayStore, dbCatalog, sysLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/briefing_ws.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Briefing.FlushTopic)
	templateService := service.NewTemplateService(templateResolver, dbCatalog, sysLogger)
	briefingService := service.NewBriefingService(uowFactory, saveManager, templateService, overlayStore, remoteKV, natsPub, sysLogger)
	personalizationService := service.NewPersonalizationService(uowFactory, overlayStore, templateService, publisherService, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Briefing.FlushTopic,
		uowFactory,
		remoteKV,
		templateService,
		wsHub,
	)

	// 3.5 Conclusion mail: reacts to the NATS event published when a briefing
	// is concluded. The office inbox is optional.
	if natsSub != nil && cfg.SMTP.NotifyEmail != "" {
		err := natsSub.Subscribe("events.BRIEFING_CONCLUIDO", "briefing-mailer", func(ctx context.Context, evt events.Event) error {
			data := evt.Payload()
			nome, _ := data["nome"].(string)
			progresso := 0
			if p, ok := data["progresso"].(float64); ok {
				progresso = int(p)
			}
			return emailService.SendBriefingConcluded(cfg.SMTP.NotifyEmail, nome, progresso)
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe conclusion mailer: %v", err)
		}
	}

	// Handler
	wsHandler := handler.NewBriefingWsHandler(wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		BriefingController:        controller.NewBriefingController(briefingService),
		TemplateController:        controller.NewTemplateController(templateService),
		PersonalizationController: controller.NewPersonalizationController(personalizationService),

		ConsumerService: consumerService,
		BriefingService: briefingService,

		BriefingWsHandler: wsHandler,
		WebSocketHub:      wsHub,
	}
}
