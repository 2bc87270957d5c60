package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/carlosmendieta/resumeforge-backend/api/routes"
	"github.com/carlosmendieta/resumeforge-backend/internal/ai"
	"github.com/carlosmendieta/resumeforge-backend/internal/analytics"
	"github.com/carlosmendieta/resumeforge-backend/internal/auth"
	"github.com/carlosmendieta/resumeforge-backend/internal/contact"
	"github.com/carlosmendieta/resumeforge-backend/internal/export"
	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/internal/resumes"
	"github.com/carlosmendieta/resumeforge-backend/internal/templates"
	"github.com/carlosmendieta/resumeforge-backend/internal/users"
	"github.com/carlosmendieta/resumeforge-backend/pkg/config"
	"github.com/carlosmendieta/resumeforge-backend/pkg/db"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
	"github.com/carlosmendieta/resumeforge-backend/pkg/metrics"
	"github.com/carlosmendieta/resumeforge-backend/pkg/migrate"
	"github.com/carlosmendieta/resumeforge-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	usersRepo := users.NewRepository(dbClient.DB())
	resumesRepo := resumes.NewRepository(dbClient.DB())
	templatesRepo := templates.NewRepository(dbClient.DB())
	featuresRepo := features.NewRepository(dbClient.DB())
	contactRepo := contact.NewRepository(dbClient.DB())
	analyticsRepo := analytics.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	templatesService, err := templates.NewService(templatesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create templates service", err)
		os.Exit(1)
	}

	resumesService, err := resumes.NewService(resumesRepo, templatesRepo, cfg.App.MaxResumesPerUser)
	if err != nil {
		logg.Error(context.Background(), "failed to create resumes service", err)
		os.Exit(1)
	}

	featuresService, err := features.NewService(featuresRepo, redisClient, cfg.Features.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create features service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(contactRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analyticsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	aiClient, err := ai.NewClient(cfg.AI)
	if err != nil {
		logg.Error(context.Background(), "failed to create ai client", err)
		os.Exit(1)
	}

	aiService, err := ai.NewService(aiClient, featuresService, resumesService)
	if err != nil {
		logg.Error(context.Background(), "failed to create ai service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	exportService, err := export.NewService(resumesService, featuresService, export.NewChromeRenderer(cfg.Export), httpMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			usersRepo,
			authService,
			resumesService,
			templatesService,
			featuresService,
			contactService,
			usersService,
			analyticsService,
			aiService,
			exportService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
