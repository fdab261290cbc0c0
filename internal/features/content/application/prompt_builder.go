package application

import (
	"fmt"
	"strings"

	configdomain "postcraft/backend/internal/features/config/domain"
	"postcraft/backend/internal/features/content/domain"
)

// PromptBuilder composes upstream prompts from templates and user input.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build assembles the generation prompt for a platform/content type pair.
// Only the template entry itself is mandatory; missing rules, constraints,
// tone or length render as empty segments.
func (b *PromptBuilder) Build(cfg *configdomain.TemplateConfig, contentType, platform, targetAudience, userPrompt string) (string, error) {
	if cfg == nil {
		return "", domain.Newf(domain.ErrConfigLoad, "Prompt templates not loaded")
	}

	platformTemplates, ok := cfg.Platform(strings.ToLower(platform))
	if !ok {
		return "", domain.Newf(domain.ErrUnsupportedPlatform, "Unsupported platform: %s", platform)
	}

	entry, ok := platformTemplates[strings.ToLower(contentType)]
	if !ok {
		return "", domain.Newf(domain.ErrUnsupportedContentType,
			"Unsupported content type '%s' for platform '%s'", contentType, platform)
	}

	prompt := fmt.Sprintf(GeneratePromptTemplate,
		entry.Prompt, userPrompt,
		cfg.HumanRules(),
		targetAudience,
		entry.Length,
		entry.DefaultTone,
		bulletList(entry.Rules),
		bulletList(entry.Constraints),
	)
	return strings.TrimSpace(prompt), nil
}

// BuildEdit assembles the prompt asking the model to rewrite existing content.
func (b *PromptBuilder) BuildEdit(originalContent, editRequest string) string {
	return fmt.Sprintf(EditPromptTemplate, originalContent, editRequest)
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
