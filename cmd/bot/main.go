package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/yourusername/quiz-bot/internal/config"
	"github.com/yourusername/quiz-bot/internal/handler"
	"github.com/yourusername/quiz-bot/internal/middleware"
	pgRepo "github.com/yourusername/quiz-bot/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-bot/internal/repository/redis"
	"github.com/yourusername/quiz-bot/internal/service"
	"github.com/yourusername/quiz-bot/internal/service/quiz"
	"github.com/yourusername/quiz-bot/pkg/database"
	"github.com/yourusername/quiz-bot/pkg/storage"
)

func main() {
	// Локальный .env, в проде переменные приходят из окружения
	if err := godotenv.Load(); err == nil {
		log.Println("Переменные окружения загружены из .env")
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	chatRepo := pgRepo.NewChatRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	reactionRepo := pgRepo.NewReactionRepo(db)
	feedbackRepo := pgRepo.NewFeedbackRepo(db)
	txManager := pgRepo.NewTxManager(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Хранилище загружаемых картинок
	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Printf("Failed to initialize file storage: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	engine := quiz.NewEngine(
		&quiz.Config{
			InitialBalance: cfg.Quiz.InitialBalance,
			SessionTTL:     cfg.Quiz.SessionTTL(),
			AdminChatID:    cfg.Telegram.AdminChatID,
		},
		&quiz.Dependencies{
			Chats:     chatRepo,
			Questions: questionRepo,
			Reactions: reactionRepo,
			Cache:     cacheRepo,
			Tx:        txManager,
		},
	)
	feedbackService := service.NewFeedbackService(feedbackRepo, cacheRepo, cfg.Quiz.SessionTTL())
	proposalService := service.NewProposalService(questionRepo, cacheRepo, fileStore, cfg.Quiz.SessionTTL())

	// Инициализируем Bot API
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Printf("Failed to initialize Bot API: %v", err)
		os.Exit(1)
	}
	log.Printf("Бот авторизован как @%s", bot.Self.UserName)

	sender := handler.NewBotSender(bot)
	render := handler.NewRenderer(cfg.Storage.Endpoint, cfg.Storage.Bucket)
	webhookHandler := handler.NewWebhookHandler(
		engine,
		feedbackService,
		proposalService,
		chatRepo,
		sender,
		sender,
		render,
		cfg.Telegram.AdminChatID,
		cfg.Quiz.InitialBalance,
	)

	// Настраиваем маршруты
	router := gin.Default()

	rateLimiter := middleware.NewRateLimiter(redisClient)
	webhook := router.Group("/webhook")
	webhook.Use(middleware.WebhookAuth(cfg.Telegram.WebhookSecret))
	webhook.Use(rateLimiter.LimitByIP(middleware.DefaultWebhookRateLimitConfig()))
	{
		webhook.POST("", webhookHandler.HandleUpdate)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Настраиваем HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
