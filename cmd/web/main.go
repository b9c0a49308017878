package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gameverse/gameverse-go/internal/config"
	"github.com/gameverse/gameverse-go/internal/factory"
	"github.com/gameverse/gameverse-go/internal/search"
	"github.com/gameverse/gameverse-go/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A .env in the working directory seeds the environment for local runs
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app, err := factory.New(factory.Config{
		App:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("cache close failed", slog.String("error", err.Error()))
		}
	}()

	router := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		API:         app.Client,
		Catalog:     app.Catalog,
		Ranking:     app.Ranking,
		NewSession:  web.NewSessionFactory(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, app.Clock, logger),
		PageSize:    cfg.PageSize,
		MinQueryLen: search.DefaultConfig().MinQueryLen,
	})

	serverConfig := web.DefaultServerConfig()
	serverConfig.Addr = cfg.ListenAddr
	server := web.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
