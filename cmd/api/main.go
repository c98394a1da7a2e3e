package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mindmate/internal/config"
	"mindmate/internal/db"
	"mindmate/internal/email"
	apihttp "mindmate/internal/http"
	"mindmate/internal/llm"
	"mindmate/internal/music"
	"mindmate/internal/repository"
	"mindmate/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	locationRepo := repository.NewPgLocationRepository(pool)
	assessmentRepo := repository.NewPgAssessmentRepository(pool)
	memoryRepo := repository.NewPgMemoryRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, logger)

	crisisSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			crisisSender = sender
		}
	}
	if cfg.CrisisAlertEmail == "" {
		logger.Warn("crisis alert email not configured, high-risk alerts disabled")
	}

	loginLimiter := service.NewLoginRateLimiter(10*time.Minute, 5)
	var tokenStore service.RefreshTokenStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 5)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	assessSvc := service.NewAssessmentService(logger, sessionRepo, assessmentRepo)
	locationSvc := service.NewLocationService(logger, locationRepo)
	dietSvc := service.NewDietService(logger, userRepo, assessmentRepo)
	messageSvc := service.NewMessageService(messageRepo)
	contextSvc := service.NewBasicContextService(messageRepo)
	memorySvc := service.NewMemoryService(memoryRepo, llmClient)
	chatSvc := service.NewChatService(logger, llmClient, messageRepo, contextSvc, memorySvc, crisisSender, cfg.CrisisAlertEmail)

	musicClient := music.NewClient(cfg.MusicBaseURL, cfg.MusicClientID, logger)
	musicCatalog := music.NewCatalog(logger, musicClient, time.Duration(cfg.MusicCacheTTLMins)*time.Minute)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	chatHandler := apihttp.NewChatHandler(logger, sessionRepo, assessmentRepo, assessSvc, chatSvc, messageSvc)
	locationHandler := apihttp.NewLocationHandler(logger, locationSvc)
	musicHandler := apihttp.NewMusicHandler(logger, musicCatalog)
	dietHandler := apihttp.NewDietHandler(logger, dietSvc)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, chatHandler, locationHandler, musicHandler, dietHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
