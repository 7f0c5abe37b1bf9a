package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khalidmnor/legal-ai-assistant/internal/assistant"
	"github.com/khalidmnor/legal-ai-assistant/internal/audit"
	"github.com/khalidmnor/legal-ai-assistant/internal/completion"
	"github.com/khalidmnor/legal-ai-assistant/internal/config"
	"github.com/khalidmnor/legal-ai-assistant/internal/server"
	"github.com/khalidmnor/legal-ai-assistant/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	usage := audit.Disabled()
	if cfg.Assistant.Audit.Enabled {
		usage, err = audit.Open(cfg.Assistant.Audit.DBPath, cfg.Assistant.Completion.Model, log)
		if err != nil {
			log.Error("failed to open usage log", "error", err)
			os.Exit(1)
		}
	}
	defer usage.Close()

	client := completion.NewClient(completion.Options{
		BaseURL:     cfg.Assistant.Completion.BaseURL,
		Model:       cfg.Assistant.Completion.Model,
		MaxTokens:   cfg.Assistant.Completion.MaxTokens,
		Temperature: cfg.Assistant.Completion.Temperature,
		Timeout:     cfg.Assistant.Completion.Timeout,
	}, log)

	svc := assistant.NewService(assistant.NewRegistry(), client, usage, log)
	sessions := session.NewStore(cfg.Assistant.Session.TTL)
	api := server.New(cfg, svc, sessions, usage, log)

	srv := &http.Server{
		Addr:         cfg.Assistant.Server.Addr,
		Handler:      api.Router(),
		ReadTimeout:  cfg.Assistant.Server.ReadTimeout,
		WriteTimeout: cfg.Assistant.Server.WriteTimeout,
		IdleTimeout:  cfg.Assistant.Server.IdleTimeout,
	}

	go func() {
		log.Info("starting legal assistant API",
			"addr", cfg.Assistant.Server.Addr,
			"model", client.Model(),
			"credential_configured", cfg.CredentialConfigured())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
