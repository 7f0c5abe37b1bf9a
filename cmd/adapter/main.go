package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/khalidmnor/legal-ai-assistant/internal/assistant"
	"github.com/khalidmnor/legal-ai-assistant/internal/audit"
	"github.com/khalidmnor/legal-ai-assistant/internal/completion"
	"github.com/khalidmnor/legal-ai-assistant/internal/config"
	"github.com/khalidmnor/legal-ai-assistant/pkg/mcp"
)

func main() {
	// stdout carries the MCP protocol, so logs go to stderr.
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
	handler := mcp.NewHandler(svc, func() string { return cfg.Assistant.Completion.APIKey })

	log.Info("serving legal assistant tools over stdio",
		"tools", handler.Tools(),
		"model", client.Model(),
		"credential_configured", cfg.CredentialConfigured())
	if err := handler.Run(context.Background()); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
