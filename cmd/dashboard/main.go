package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/job-market-dashboard/internal/config"
	"github.com/octobees/job-market-dashboard/internal/handler"
	"github.com/octobees/job-market-dashboard/internal/jobsapi"
	"github.com/octobees/job-market-dashboard/internal/logger"
	middlewarepkg "github.com/octobees/job-market-dashboard/internal/middleware"
	"github.com/octobees/job-market-dashboard/internal/render"
	"github.com/octobees/job-market-dashboard/internal/router"
	"github.com/octobees/job-market-dashboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(appLogger)

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	client := jobsapi.NewClient(nil, cfg.JobsAPIBaseURL, jobsapi.Options{
		LookupTimeout: cfg.LookupTimeout,
		SearchTimeout: cfg.SearchTimeout,
		Audience:      cfg.JobsAPIAudience,
		Logger:        appLogger,
	})
	source := jobsapi.NewCache(client, cfg.LookupCacheTTL)

	tokens := session.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	store := session.NewStore(cfg.SessionTTL, cfg.PageSize)

	handlers := router.Handlers{
		Profile:  handler.NewProfileHandler(source, appLogger),
		Insights: handler.NewInsightsHandler(source, appLogger),
		Pages:    handler.NewPagesHandler(cfg.PowerBIURL),
		API:      handler.NewAPIHandler(source, cfg.PageSize, appLogger),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(appLogger))
	e.Use(echoMiddleware.Recover())
	e.Use(middlewarepkg.RateLimiter("/api/", cfg.RateLimitAPI))

	router.Register(e, handlers, middlewarepkg.Session(tokens, store, appLogger))

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("dashboard listening", "port", cfg.Port, "jobs_api", cfg.JobsAPIBaseURL)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", "error", err)
	}
}
