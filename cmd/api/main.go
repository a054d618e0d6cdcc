// @title StudyBridge Learning API
// @version 1.0
// @description Learning content and quiz generation service for international students.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studybridge/internal/adapter"
	"studybridge/internal/adapter/textgen"
	"studybridge/internal/cache"
	"studybridge/internal/config"
	"studybridge/internal/database"
	"studybridge/internal/domain"
	"studybridge/internal/handler"
	"studybridge/internal/logger"
	"studybridge/internal/middleware"
	"studybridge/internal/repository"
	"studybridge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Text generation backend
	var generator domain.TextGenerator
	switch cfg.LLM.Provider {
	case "googleai":
		generator, err = textgen.NewGoogleAIGenerator(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create GoogleAI text generator", zap.Error(err))
		}
	case "ollama":
		generator, err = textgen.NewOllamaGenerator(cfg.LLM.ServerURL, cfg.LLM.Model, cfg.LLM.Temperature, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama text generator", zap.Error(err))
		}
	default:
		appLogger.Fatal("Unsupported LLM provider, check llm.provider in config", zap.String("provider", cfg.LLM.Provider))
	}

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Connected to Redis")

	// Repositories
	contentRepository := repository.NewContentDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	attemptRepository := repository.NewAttemptDatabaseAdapter(db)
	userRepository := repository.NewUserDatabaseAdapter(db)
	topicRepository := repository.NewTopicDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	contentService := service.NewContentService(contentRepository, userRepository, topicRepository, generator, cacheAdapter, cfg)
	quizService := service.NewQuizService(questionRepository, contentRepository, userRepository, attemptRepository, txManager, generator, cfg, nil)

	// Handlers
	contentHandler := handler.NewContentHandler(contentService)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-User-ID",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	learningGroup := apiGroup.Group("/learning")
	learningGroup.Get("/topics", contentHandler.ListTopics)
	learningGroup.Get("/content", middleware.RequireUser(), contentHandler.GetContent)

	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Get("/", quizHandler.GetQuiz)
	quizGroup.Post("/generate", middleware.RequireUser(), quizHandler.GenerateQuiz)
	quizGroup.Post("/submit", middleware.RequireUser(), quizHandler.SubmitQuiz)
	quizGroup.Get("/attempts", middleware.RequireUser(), quizHandler.GetAttempts)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
