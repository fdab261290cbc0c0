package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"postcraft/backend/internal/features/config/domain"
	contentdomain "postcraft/backend/internal/features/content/domain"
)

// TemplateStore defines the interface for prompt template access.
type TemplateStore interface {
	// Load returns the template configuration, reading the file on first use only.
	Load(ctx context.Context) (*domain.TemplateConfig, error)
	// Validate checks that the platform and content type exist in the configuration.
	Validate(ctx context.Context, contentType, platform string) error
	// Loaded reports whether the configuration has been cached.
	Loaded() bool
}

// templateStore is the file-backed implementation of TemplateStore.
type templateStore struct {
	path   string
	logger *zap.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	cached *domain.TemplateConfig
}

// NewTemplateStore creates a store reading the JSON or YAML file at path.
func NewTemplateStore(path string, logger *zap.Logger) TemplateStore {
	return &templateStore{path: path, logger: logger}
}

func (s *templateStore) Loaded() bool {
	return s.current() != nil
}

func (s *templateStore) current() *domain.TemplateConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

// Load serves the cached configuration. Concurrent first calls share a single
// read; a failed read is not cached so the next call tries again.
func (s *templateStore) Load(ctx context.Context) (*domain.TemplateConfig, error) {
	if cfg := s.current(); cfg != nil {
		return cfg, nil
	}

	ch := s.group.DoChan("load", func() (interface{}, error) {
		if cfg := s.current(); cfg != nil {
			return cfg, nil
		}
		cfg, err := s.read()
		if err != nil {
			s.logger.Error("Error loading prompt templates", zap.String("path", s.path), zap.Error(err))
			return nil, err
		}
		s.mu.Lock()
		s.cached = cfg
		s.mu.Unlock()
		s.logger.Info("Prompt templates loaded",
			zap.String("path", s.path),
			zap.Int("platforms", len(cfg.Platforms)))
		return cfg, nil
	})

	select {
	case <-ctx.Done():
		return nil, contentdomain.Wrapf(contentdomain.ErrCancelled, ctx.Err(), "template load cancelled")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.TemplateConfig), nil
	}
}

func (s *templateStore) read() (*domain.TemplateConfig, error) {
	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return nil, contentdomain.Wrapf(contentdomain.ErrConfigLoad, err, "Failed to load prompt configuration")
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, contentdomain.Wrapf(contentdomain.ErrConfigLoad, err, "Failed to load prompt configuration")
	}

	cfg, err := ParseTemplates(data, filepath.Ext(absPath))
	if err != nil {
		return nil, contentdomain.Wrapf(contentdomain.ErrConfigLoad, err, "Failed to load prompt configuration")
	}
	return cfg, nil
}

// ParseTemplates decodes a template file. ext selects YAML for ".yaml" and
// ".yml"; anything else is parsed as JSON.
func ParseTemplates(data []byte, ext string) (*domain.TemplateConfig, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var file domain.TemplateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.ContentCreationPrompts == nil {
		return nil, errMissingRoot
	}
	return file.ContentCreationPrompts, nil
}

var errMissingRoot = errors.New("missing content_creation_prompts")

// Validate reports ErrInvalidPlatform or ErrInvalidContentType, listing the
// valid alternatives.
func (s *templateStore) Validate(ctx context.Context, contentType, platform string) error {
	cfg, err := s.Load(ctx)
	if err != nil {
		return err
	}

	templates, ok := cfg.Platform(strings.ToLower(platform))
	if !ok {
		return contentdomain.Newf(contentdomain.ErrInvalidPlatform,
			"Invalid platform: %s. Available platforms: %s",
			platform, strings.Join(cfg.PlatformNames(), ", "))
	}

	if _, ok := templates[strings.ToLower(contentType)]; !ok {
		return contentdomain.Newf(contentdomain.ErrInvalidContentType,
			"Invalid content type: %s for platform %s. Available types: %s",
			contentType, platform, strings.Join(templates.ContentTypes(), ", "))
	}
	return nil
}
