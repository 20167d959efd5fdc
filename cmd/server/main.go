// @title Article Prompts API
// @version 1.2.0
// @description Turns an article into FAQ, AI Overview, People Also Ask and Entities prompts and runs them against an LLM provider.
// @BasePath /api
package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"articleprompts/internal/config"
	"articleprompts/internal/db"
	"articleprompts/internal/handler"
	transport "articleprompts/internal/http"
	"articleprompts/internal/logger"
	"articleprompts/internal/network"
	"articleprompts/internal/repository"
	"articleprompts/internal/service"
	"articleprompts/internal/service/ai"
	"articleprompts/internal/service/anubis"
	"articleprompts/internal/snowflake"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.NodeID); err != nil {
		logger.Error("snowflake init failed", "module", "app", "action", "init", "resource", "snowflake", "result", "failed", "node_id", cfg.NodeID, "error", err)
		os.Exit(1)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("database open failed", "module", "app", "action", "init", "resource", "db", "result", "failed", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	settingsRepo := repository.NewSettingsRepository(dbConn)

	settingsService := service.NewSettingsService(settingsRepo, service.AIDefaults{
		Provider: cfg.AIProvider,
		Model:    cfg.AIModel,
		BaseURL:  cfg.AIBaseURL,
	}, ai.NewProvider)
	clientFactory := network.NewClientFactory(settingsService)
	promptService := service.NewPromptService(settingsService, ai.NewProvider)
	solver := anubis.NewSolver(clientFactory, anubis.NewStore(settingsRepo))
	articleService := service.NewArticleService(clientFactory, solver)

	router := transport.NewRouter(
		handler.NewPromptHandler(promptService),
		handler.NewArticleHandler(articleService),
		handler.NewSettingsHandler(settingsService, clientFactory),
		cfg.StaticDir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "module", "app", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "version", config.AppVersion)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("server failed", "module", "app", "action", "start", "resource", "http", "result", "failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server shutting down", "module", "app", "action", "stop", "resource", "http", "result", "ok")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "module", "app", "action", "stop", "resource", "http", "result", "failed", "error", err)
	}
}
