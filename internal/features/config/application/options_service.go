package application

import (
	"context"

	"postcraft/backend/internal/config"
	"postcraft/backend/internal/features/config/domain"
)

// ModelInfo describes the models the service calls.
type ModelInfo struct {
	FallbackModels []string `json:"models"`
	EditModel      string   `json:"editModel"`
}

// GroupLister exposes the platform alias table without secrets.
type GroupLister interface {
	Groups() map[string]string
}

// OptionsService defines the interface for listing what callers may request.
type OptionsService interface {
	Options(ctx context.Context) (domain.AvailableOptions, error)
	Platforms() map[string]string
	Models() ModelInfo
	Validate(ctx context.Context, contentType, platform string) error
}

// optionsService is the implementation of OptionsService.
type optionsService struct {
	templates config.TemplateStore
	groups    GroupLister
	models    ModelInfo
}

// NewOptionsService creates a new instance of optionsService.
func NewOptionsService(templates config.TemplateStore, groups GroupLister, models ModelInfo) OptionsService {
	return &optionsService{
		templates: templates,
		groups:    groups,
		models:    models,
	}
}

// Options lists the configured platforms and their content types.
func (s *optionsService) Options(ctx context.Context) (domain.AvailableOptions, error) {
	cfg, err := s.templates.Load(ctx)
	if err != nil {
		return domain.AvailableOptions{}, err
	}
	return cfg.Options(), nil
}

func (s *optionsService) Platforms() map[string]string {
	return s.groups.Groups()
}

func (s *optionsService) Models() ModelInfo {
	out := ModelInfo{
		FallbackModels: make([]string, len(s.models.FallbackModels)),
		EditModel:      s.models.EditModel,
	}
	copy(out.FallbackModels, s.models.FallbackModels)
	return out
}

func (s *optionsService) Validate(ctx context.Context, contentType, platform string) error {
	return s.templates.Validate(ctx, contentType, platform)
}
