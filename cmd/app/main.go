package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnfromvideo/config"
	"learnfromvideo/internal/application/usecase"
	"learnfromvideo/internal/domain"
	"learnfromvideo/internal/infrastructure/ai"
	"learnfromvideo/internal/infrastructure/lock"
	"learnfromvideo/internal/infrastructure/repository"
	"learnfromvideo/internal/infrastructure/transcript"
	"learnfromvideo/internal/infrastructure/youtube"
	"learnfromvideo/internal/middleware"
	handlers "learnfromvideo/internal/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}
	if cfg.DBHost == "" || cfg.DBName == "" {
		log.Fatalf("DB_HOST and DB_NAME are required")
	}
	if cfg.RedisAddr == "" {
		log.Fatalf("REDIS_ADDR is required")
	}

	// 2. Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError нужен, чтобы конфликт уникального индекса по video_id
	// приходил как gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("DB handle failed: %v", err)
	}
	defer sqlDB.Close()

	// Миграции
	if err := db.AutoMigrate(
		&domain.Course{},
		&domain.CourseSection{},
		&domain.CourseVisualization{},
		&domain.StatusCheck{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// 3. Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("Connected to Redis at", cfg.RedisAddr)

	// 4. Внешние клиенты
	metadataClient, err := youtube.NewMetadataClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("YouTube client init failed: %v", err)
	}
	if cfg.YouTubeAPIKey == "" {
		log.Println("YOUTUBE_API_KEY is not set, metadata will use placeholders")
	}

	synthesizer, err := ai.NewSynthesizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Gemini client init failed: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY is not set, course synthesis will use the fallback structure")
	}

	// 5. Репозитории и юзкейсы
	courseRepo := repository.NewCourseRepository(db, rdb)
	statusRepo := repository.NewStatusRepository(db)
	videoLock := lock.NewVideoLock(rdb)

	convertUC := usecase.NewConvertUseCase(
		courseRepo,
		metadataClient,
		transcript.NewFetcher(),
		synthesizer,
		videoLock,
	)
	statusUC := usecase.NewStatusUseCase(statusRepo)

	// 6. HTTP
	courseHandler := handlers.NewCourseHandler(convertUC)
	statusHandler := handlers.NewStatusHandler(statusUC)
	rateLimiter := middleware.NewRateLimiter(rdb)

	router := handlers.NewRouter(courseHandler, statusHandler, rateLimiter, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("learnfromvideo API running on %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	// Ждем сигнал и гасим сервер, соединения закроются через defer
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
