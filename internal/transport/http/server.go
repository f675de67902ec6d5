package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "datachat/internal/app"
	"datachat/internal/bootstrap"
	"datachat/internal/cache"
	rabbitmqClient "datachat/internal/platform/rabbitmq"
	"datachat/internal/repository"
	"datachat/internal/transport/http/handler"
	"datachat/internal/websearch"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.GET("/healthz", healthHandler.Check)

	datasetRepo := repository.NewDatasetRepository(app.MySQL)
	turnRepo := repository.NewTurnRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	tableCache := cache.NewTableCache(app.Redis, time.Duration(app.Config.Redis.TableTTLSeconds)*time.Second)
	publisher := rabbitmqClient.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	searchService := appsvc.NewSearchService(datasetRepo, tableCache)
	chatService := appsvc.NewChatService(
		datasetRepo,
		turnRepo,
		searchService,
		websearch.New(),
		app.GroqClient,
		publisher,
	)
	datasetService := appsvc.NewDatasetService(datasetRepo, publisher, app.Config.Upload.Dir)
	systemService := appsvc.NewSystemService(
		app.MySQL,
		datasetRepo,
		turnRepo,
		activityRepo,
		tableCache,
		publisher,
		app.Config.Upload.Dir,
	)

	chatHandler := handler.NewChatHandler(chatService)
	datasetHandler := handler.NewDatasetHandler(datasetService, app.Config.Upload.MaxSizeMB)
	systemHandler := handler.NewSystemHandler(systemService)

	v1 := router.Group("/api/v1")

	datasetGroup := v1.Group("/datasets")
	datasetGroup.POST("", datasetHandler.Upload)
	datasetGroup.GET("", datasetHandler.List)

	chatGroup := v1.Group("/chat")
	chatGroup.POST("", chatHandler.Chat)
	chatGroup.GET("/history", chatHandler.GetHistory)

	systemGroup := v1.Group("/system")
	systemGroup.GET("/stats", systemHandler.Stats)
	systemGroup.DELETE("/data", systemHandler.ClearAll)

	return router
}
