package main

import (
	"context"
	"net/http"
	"os"

	"github.com/deelmap/admin-backend/api/routes"
	"github.com/deelmap/admin-backend/internal/analytics"
	"github.com/deelmap/admin-backend/internal/applications"
	"github.com/deelmap/admin-backend/internal/auth"
	"github.com/deelmap/admin-backend/internal/properties"
	"github.com/deelmap/admin-backend/internal/scraped"
	"github.com/deelmap/admin-backend/internal/settings"
	"github.com/deelmap/admin-backend/internal/users"
	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/deelmap/admin-backend/pkg/db"
	"github.com/deelmap/admin-backend/pkg/logger"
	"github.com/deelmap/admin-backend/pkg/migrate"
	"github.com/deelmap/admin-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/resend/resend-go/v2"
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

	var mailer applications.Mailer
	if cfg.Resend.APIKey != "" {
		mailer = resend.NewClient(cfg.Resend.APIKey).Emails
	} else {
		logg.Warn(context.Background(), "resend api key not set; credentials emails will be skipped")
	}

	gormDB := dbClient.DB()

	authService, err := auth.NewService(auth.NewRepository(gormDB), cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analytics.NewRepository(gormDB), cfg.Analytics)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	applicationsService, err := applications.NewService(
		applications.NewRepository(gormDB),
		settingsService,
		mailer,
		logg,
		cfg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create applications service", err)
		os.Exit(1)
	}

	propertiesService, err := properties.NewService(properties.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create properties service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	scrapedService, err := scraped.NewService(scraped.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create scraped service", err)
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

	handler := routes.NewRouter(cfg, logg, routes.Services{
		Auth:         authService,
		Analytics:    analyticsService,
		Settings:     settingsService,
		Applications: applicationsService,
		Properties:   propertiesService,
		Users:        usersService,
		Scraped:      scrapedService,
	}, routes.HealthChecks{
		"database": dbClient,
		"redis":    redisClient,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
