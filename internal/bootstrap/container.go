package bootstrap

import (
	"context"
	"log"
	"time"

	"one-editor-be/internal/config"
	"one-editor-be/internal/controller"
	"one-editor-be/internal/handler"
	"one-editor-be/internal/pkg/logger"
	"one-editor-be/internal/pkg/mailer"
	"one-editor-be/internal/repository/unitofwork"
	"one-editor-be/internal/service"
	"one-editor-be/internal/websocket"
	"one-editor-be/pkg/collection"
	"one-editor-be/pkg/confirm"
	"one-editor-be/pkg/localstore"

	pktNats "one-editor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// sessionTopic is the in-process channel carrying auth-state transitions.
const sessionTopic = "session.state"

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	OAuthController     controller.IOAuthController
	UserController      controller.IUserController
	WorkspaceController controller.IWorkspaceController
	SettingsController  controller.ISettingsController
	CommandController   controller.ICommandController
	ContactController   controller.IContactController
	ExportController    controller.IExportController
	GameController      controller.IGameController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sysLogger.Info("Bootstrap", "Container wiring started", nil)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.SMTP.ContactInbox,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	// Device-local state rides redis when it is up, in-process otherwise.
	var localStore localstore.Store
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory local store", err)
		localStore = localstore.NewMemoryStore()
		rdb = nil
	} else {
		localStore = localstore.NewRedisStore(rdb)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(sessionTopic, pubSub)

	confirmations := confirm.NewQueue(time.Duration(cfg.Workspace.ConfirmTTLMinutes) * time.Minute)

	workspaceService := service.NewWorkspaceService(
		uowFactory,
		localStore,
		wsHub,
		natsPub,
		confirmations,
		collection.ActivePolicy(cfg.Workspace.ActiveNotePolicy),
	)

	consumerService := service.NewConsumerService(
		pubSub,
		sessionTopic,
		workspaceService,
	)

	authService := service.NewAuthService(uowFactory, publisherService, natsPub)
	oauthService := service.NewOAuthService(cfg, uowFactory, publisherService)
	userService := service.NewUserService(uowFactory, emailService)
	settingsService := service.NewSettingsService(localStore)
	commandService := service.NewCommandService(settingsService)
	contactService := service.NewContactService(uowFactory, emailService, natsPub)
	exportService := service.NewExportService(uowFactory, localStore)
	gameService := service.NewGameService(localStore)

	// 4. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(cfg, oauthService),
		UserController:      controller.NewUserController(userService),
		WorkspaceController: controller.NewWorkspaceController(workspaceService),
		SettingsController:  controller.NewSettingsController(settingsService),
		CommandController:   controller.NewCommandController(commandService),
		ContactController:   controller.NewContactController(contactService),
		ExportController:    controller.NewExportController(exportService),
		GameController:      controller.NewGameController(gameService),

		ConsumerService: consumerService,

		StreamHandler: handler.NewStreamHandler(wsHub, wsLogger),
		WebSocketHub:  wsHub,
	}
}
