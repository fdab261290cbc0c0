package main

import (
	"fmt"

	"go.uber.org/zap"

	"postcraft/backend/internal/config"
	configapp "postcraft/backend/internal/features/config/application"
	contentapp "postcraft/backend/internal/features/content/application"
	"postcraft/backend/internal/features/content/infrastructure"
)

// app holds the wired services shared by the subcommands.
type app struct {
	templates config.TemplateStore
	client    infrastructure.CompletionClient
	content   contentapp.ContentService
	options   configapp.OptionsService
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	templates := config.NewTemplateStore(cfg.TemplatesPath, logger)
	credentials := infrastructure.NewCredentialResolver(nil)

	// Initialize completion client
	client, err := infrastructure.NewOpenAIClient(infrastructure.ClientConfig{
		BaseURL:        cfg.Upstream.BaseURL,
		Models:         cfg.Upstream.FallbackModels,
		AttemptTimeout: cfg.Upstream.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	content := contentapp.NewContentService(templates, credentials, client, contentapp.EditSettings{
		Model:       cfg.Edit.Model,
		SecretName:  config.EditAPIKeyEnv,
		MaxTokens:   cfg.Edit.MaxTokens,
		Temperature: cfg.Edit.Temperature,
	}, logger)

	options := configapp.NewOptionsService(templates, credentials, configapp.ModelInfo{
		FallbackModels: client.Models(),
		EditModel:      cfg.Edit.Model,
	})

	return &app{
		templates: templates,
		client:    client,
		content:   content,
		options:   options,
	}, nil
}
