package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/config"
	"github.com/dropfixer/dropfixer-api/internal/database"
	"github.com/dropfixer/dropfixer-api/internal/handler"
	"github.com/dropfixer/dropfixer-api/internal/middleware"
	"github.com/dropfixer/dropfixer-api/internal/ml"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/repository"
	"github.com/dropfixer/dropfixer-api/internal/router"
	"github.com/dropfixer/dropfixer-api/internal/service"
	"github.com/dropfixer/dropfixer-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Attendance{},
		&models.Grade{},
		&models.Fee{},
		&models.Survey{},
		&models.Alert{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis not configured, roster cache disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, alert events disabled")
		} else {
			defer natsConn.Close()
		}
	}

	responder := buildResponder(cfg, logger)

	predictor := ml.NewPredictor(cfg.ModelPath, logger)
	if err := predictor.Warmup(); err != nil {
		log.Fatalf("failed to prepare dropout model: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	academicRepo := repository.NewAcademicRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, logger)
	alertService := service.NewAlertService(alertRepo, natsConn, logger)
	predictionService := service.NewPredictionService(userRepo, academicRepo, predictor, alertService, logger)
	chatService := service.NewChatService(responder, cfg.AITimeout, logger)
	rosterService := service.NewRosterService(userRepo, academicRepo, alertRepo, redisClient, cfg.RosterCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, validate, logger)
	predictionHandler := handler.NewPredictionHandler(predictionService, logger)
	chatHandler := handler.NewChatHandler(chatService, validate, logger)
	alertHandler := handler.NewAlertHandler(alertService, logger)
	rosterHandler := handler.NewRosterHandler(rosterService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		PredictionHandler: predictionHandler,
		ChatHandler:       chatHandler,
		AlertHandler:      alertHandler,
		RosterHandler:     rosterHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildResponder selects the chat backend from configuration. A missing API
// key is not fatal: the chat service degrades to its scripted replies.
func buildResponder(cfg config.Config, logger zerolog.Logger) ai.Responder {
	switch strings.ToLower(cfg.AIProvider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn().Msg("openai api key missing, chat runs in fallback mode")
			return nil
		}
		responder, err := ai.NewOpenAIResponder(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.AIModel,
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("openai client unavailable, chat runs in fallback mode")
			return nil
		}
		return responder
	default:
		if cfg.GeminiAPIKey == "" {
			logger.Warn().Msg("gemini api key missing, chat runs in fallback mode")
			return nil
		}
		responder, err := ai.NewGeminiResponder(context.Background(), ai.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.AIModel,
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("gemini client unavailable, chat runs in fallback mode")
			return nil
		}
		return responder
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
