package application

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"postcraft/backend/internal/config"
	"postcraft/backend/internal/features/content/domain"
	"postcraft/backend/internal/features/content/infrastructure"
	"postcraft/backend/internal/logging"
)

// ContentService defines the interface for the content application service.
type ContentService interface {
	Generate(ctx context.Context, req *domain.GenerateRequest) (string, error)
	Edit(ctx context.Context, req *domain.EditRequest) (string, error)
}

// EditSettings fixes the model, secret and sampling used by the edit path.
type EditSettings struct {
	Model       string
	SecretName  string
	MaxTokens   int
	Temperature float32
}

// contentService is the implementation of ContentService.
type contentService struct {
	templates config.TemplateStore
	secrets   infrastructure.SecretResolver
	client    infrastructure.CompletionClient
	builder   *PromptBuilder
	edit      EditSettings
	logger    *zap.Logger
}

// NewContentService creates a new instance of contentService.
func NewContentService(
	templates config.TemplateStore,
	secrets infrastructure.SecretResolver,
	client infrastructure.CompletionClient,
	edit EditSettings,
	logger *zap.Logger,
) ContentService {
	if edit.Model == "" {
		edit.Model = domain.DefaultEditModel
	}
	if edit.SecretName == "" {
		edit.SecretName = config.EditAPIKeyEnv
	}
	return &contentService{
		templates: templates,
		secrets:   secrets,
		client:    client,
		builder:   NewPromptBuilder(),
		edit:      edit,
		logger:    logger,
	}
}

// Generate loads the templates, resolves the platform key, builds the prompt
// and runs it through the model fallback chain.
func (s *contentService) Generate(ctx context.Context, req *domain.GenerateRequest) (string, error) {
	contentType := norm.NFC.String(req.ContentType)
	platform := norm.NFC.String(req.Platform)
	targetAudience := norm.NFC.String(req.TargetAudience)
	userPrompt := norm.NFC.String(req.UserPrompt)

	cfg, err := s.templates.Load(ctx)
	if err != nil {
		s.logger.Error("Error in generateContent", zap.Error(err))
		return "", err
	}

	apiKey, err := s.secrets.Resolve(platform)
	if err != nil {
		s.logger.Error("Error in generateContent", zap.Error(err))
		return "", err
	}

	prompt, err := s.builder.Build(cfg, contentType, platform, targetAudience, userPrompt)
	if err != nil {
		s.logger.Error("Error in generateContent", zap.Error(err))
		return "", err
	}

	s.logger.Debug("Generated Prompt", zap.String("prompt", prompt))
	s.logger.Info("Using API key for platform",
		zap.String("platform", platform),
		zap.String("key", logging.MaskSecret(apiKey)))

	completion, err := s.client.CompleteWithFallback(ctx, apiKey, prompt)
	if err != nil {
		s.logger.Error("Error in generateContent", zap.Error(err))
		return "", err
	}

	s.logger.Info("Content generated",
		zap.String("platform", platform),
		zap.String("contentType", contentType),
		zap.String("model", completion.Model),
		zap.Int("attempts", len(completion.Attempts)))
	return Sanitize(completion.Content), nil
}

// Edit rewrites existing content with the fixed edit model. The platform and
// content type are carried for logging only.
func (s *contentService) Edit(ctx context.Context, req *domain.EditRequest) (string, error) {
	s.logger.Info("Edit requested",
		zap.String("platform", req.Platform),
		zap.String("contentType", req.ContentType),
		zap.Int("originalLength", len(req.OriginalContent)))

	apiKey, err := s.secrets.Lookup(s.edit.SecretName)
	if err != nil {
		s.logger.Error("Error in editContent", zap.Error(err))
		return "", err
	}

	prompt := s.builder.BuildEdit(norm.NFC.String(req.OriginalContent), norm.NFC.String(req.EditRequest))

	content, err := s.client.Complete(ctx, apiKey, s.edit.Model, prompt, infrastructure.CompletionOptions{
		MaxTokens:   s.edit.MaxTokens,
		Temperature: s.edit.Temperature,
	})
	if err != nil {
		s.logger.Error("Error in editContent", zap.Error(err))
		return "", err
	}
	return Sanitize(content), nil
}
