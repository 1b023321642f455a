package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/config"
	"github.com/fitra-dev/jejak-api/internal/database"
	"github.com/fitra-dev/jejak-api/internal/handler"
	"github.com/fitra-dev/jejak-api/internal/middleware"
	"github.com/fitra-dev/jejak-api/internal/models"
	"github.com/fitra-dev/jejak-api/internal/repository"
	"github.com/fitra-dev/jejak-api/internal/router"
	"github.com/fitra-dev/jejak-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.ActivityLog{}, &models.User{}, &models.Author{}, &models.Article{}, &models.Comment{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL, logger)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityLogRepository(db, cfg.ActivityNamespace)

	authorRepo := repository.NewAuthorRepository(db, activitylog.New(activitylog.Config{
		Model:       "Authors",
		SystemScope: true,
		Namespace:   cfg.ActivityNamespace,
		Sink:        activityRepo,
		Logger:      logger,
	}))
	articleRepo := repository.NewArticleRepository(db, activitylog.New(activitylog.Config{
		Model:       "Articles",
		Scope:       []interface{}{"Articles", "Authors"},
		SystemScope: true,
		Namespace:   cfg.ActivityNamespace,
		FieldScopes: map[string]string{"author_id": "Authors"},
		Sink:        activityRepo,
		Logger:      logger,
	}))
	commentRepo := repository.NewCommentRepository(db, activitylog.New(activitylog.Config{
		Model:       "Comments",
		Scope:       []interface{}{"Comments", "Articles", "Users"},
		FieldScopes: map[string]string{"article_id": "Articles", "user_id": "Users"},
		Sink:        activityRepo,
		Logger:      logger,
	}))
	userRepo := repository.NewUserRepository(db)

	seedService := service.NewSeedService(userRepo, logger)
	if err := seedService.EnsureDefaults(context.Background()); err != nil {
		log.Fatalf("failed to seed defaults: %v", err)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, validate, logger)
	contentService := service.NewContentService(authorRepo, articleRepo, commentRepo, validate, logger)
	activityService := service.NewActivityService(activityRepo, validate, logger)
	feedService := service.NewActivityFeedService(activityRepo, redisClient, cfg.FeedCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})
	app.Use(middleware.CorrelationID())

	router.Register(app, cfg, router.Dependencies{
		AuthHandler:     handler.NewAuthHandler(authService, logger),
		ContentHandler:  handler.NewContentHandler(contentService, logger),
		ActivityHandler: handler.NewActivityHandler(activityService, feedService, logger),
		JWTMiddleware:   middleware.JWTProtected(cfg.JWTSecret),
		IssuerResolver:  middleware.AutoIssuer(userRepo, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
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
