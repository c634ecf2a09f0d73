// Package main provides the API server entry point for the stock screener service.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manapixels/stock-screener/internal/adapter"
	"github.com/manapixels/stock-screener/internal/api"
	"github.com/manapixels/stock-screener/internal/auth"
	"github.com/manapixels/stock-screener/internal/config"
	"github.com/manapixels/stock-screener/internal/logging"
	"github.com/manapixels/stock-screener/internal/storage"
)

func main() {
	fmt.Println("Stock Screener API Server")
	log.Println("Server starting...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize structured logging
	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	// Connect to Postgres
	logger.Info("Connecting to database...")
	postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Postgres")
	}
	defer postgres.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	userRepo := storage.NewUserRepository(postgres)
	watchlistRepo := storage.NewWatchlistRepository(postgres)
	noteRepo := storage.NewNoteRepository(postgres)
	alertRepo := storage.NewAlertRepository(postgres)

	// Initialize auth service
	authService, err := auth.NewService(cfg.Auth, userRepo)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize auth service")
	}

	// Initialize upstream clients. Missing credentials are not fatal here:
	// only the endpoints that need them will fail.
	marketClient := adapter.NewAlphaVantageClient(cfg.Market.APIKey, cfg.Market.BaseURL)
	telegramClient := adapter.NewTelegramClient(cfg.Telegram.BotToken, cfg.Telegram.BaseURL, cfg.Telegram.MessagesPerSecond)

	if cfg.Market.APIKey == "" {
		logger.Warn("ALPHA_VANTAGE_API_KEY not set - market data endpoints will fail")
	}
	if cfg.Telegram.BotToken == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN not set - Telegram endpoints will fail")
	}

	// Create server configuration
	serverConfig := &api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}

	server := api.NewServer(serverConfig, userRepo, watchlistRepo, noteRepo, alertRepo, authService, marketClient, telegramClient)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
