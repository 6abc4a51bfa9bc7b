package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"crop-advisor-be/internal/config"
	"crop-advisor-be/internal/controller"
	"crop-advisor-be/internal/handler"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/implementation"
	"crop-advisor-be/internal/repository/memory"
	"crop-advisor-be/internal/service"
	"crop-advisor-be/internal/websocket"
	"crop-advisor-be/pkg/llm/factory"
	"crop-advisor-be/pkg/ml"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	CropController    controller.ICropController
	ChatController    controller.IChatController
	ForumController   controller.IForumController
	WeatherController controller.IWeatherController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. ML artifacts. Load failures disable the recommendation feature but
	// never stop the rest of the application.
	recommender := loadRecommender(cfg, sysLogger)

	// 4. LLM Provider
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		sysLogger.Warn("Bootstrap", "LLM provider unavailable", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		})
	}
	// The hosted provider needs a token; a local one does not.
	llmReady := llmProvider != nil &&
		(cfg.Ai.LLMProvider != "huggingface" || cfg.Keys.HuggingFace != "")

	// 5. Repositories
	forumRepo := implementation.NewForumRepository(cfg.Forum.FilePath, sysLogger)
	sessionRepo := memory.NewSessionRepository()

	// 6. Optional Redis (multi-instance websocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Invalid REDIS_URL, running single-instance", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			rdb = redis.NewClient(opt)
		}
	}

	// 7. WebSocket Hub
	hub := websocket.NewHub(rdb, sysLogger)
	go hub.Run()

	// 8. Services
	forumService := service.NewForumService(forumRepo, pubSub, sysLogger, cfg.Forum.MaxPosts)
	weatherService := service.NewWeatherService(cfg.Keys.OpenWeather, "")
	authService := service.NewAuthService(cfg.Keys.FirebaseAPI, "", cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours, sysLogger)
	advisoryService := service.NewAdvisoryService(recommender, llmProvider, llmReady, sessionRepo, sysLogger)
	consumerService := service.NewConsumerService(pubSub, hub, sysLogger)

	if authService.DemoMode() {
		log.Println("[INFO] Identity provider not configured: running auth in demo mode")
	}

	// 9. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService, advisoryService),
		CropController:    controller.NewCropController(advisoryService),
		ChatController:    controller.NewChatController(advisoryService),
		ForumController:   controller.NewForumController(forumService, cfg.Forum.PageSize),
		WeatherController: controller.NewWeatherController(weatherService),

		ConsumerService: consumerService,

		NotificationHandler: handler.NewNotificationHandler(hub, sysLogger),
		WebSocketHub:        hub,

		Logger: sysLogger,
	}
}

func loadRecommender(cfg *config.Config, sysLogger logger.ILogger) *ml.Recommender {
	params, err := ml.LoadScalerParams(cfg.Model.ScalerParamsPath)
	if err != nil {
		sysLogger.Error("Bootstrap", "Failed to load scaler parameters", map[string]interface{}{
			"path":  cfg.Model.ScalerParamsPath,
			"error": err.Error(),
		})
		return nil
	}

	classifier, err := ml.NewONNXClassifier(cfg.Model.ClassifierPath)
	if err != nil {
		sysLogger.Error("Bootstrap", "Failed to load crop classifier", map[string]interface{}{
			"path":  cfg.Model.ClassifierPath,
			"error": err.Error(),
		})
		return nil
	}

	return ml.NewRecommender(ml.NewPipeline(params), classifier)
}
