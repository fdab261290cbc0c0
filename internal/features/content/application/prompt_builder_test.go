package application

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcraft/backend/internal/config"
	configdomain "postcraft/backend/internal/features/config/domain"
	"postcraft/backend/internal/features/content/domain"
)

const testTemplates = `{
  "content_creation_prompts": {
    "global_guidelines": {
      "Human Rules": ["- Sound human.", "- Short sentences."]
    },
    "linkedin": {
      "post": {
        "prompt": "Write a LinkedIn post about:",
        "length": "120-200 words",
        "default_tone": "Professional",
        "rules": ["Open with a hook", "End with a question"],
        "constraints": ["Max 3 hashtags"],
        "output_format": ["hook", "body"]
      },
      "bare": {
        "prompt": "Write something about:"
      }
    },
    "x": {
      "tweet": {
        "prompt": "Write a tweet about:",
        "length": "Under 280 characters",
        "default_tone": "Direct",
        "rules": ["Lead with the claim"],
        "constraints": ["One hashtag"]
      }
    }
  }
}`

func loadTestTemplates(t *testing.T) *configdomain.TemplateConfig {
	t.Helper()
	cfg, err := config.ParseTemplates([]byte(testTemplates), ".json")
	require.NoError(t, err)
	return cfg
}

func TestPromptBuilder_Build_Golden(t *testing.T) {
	cfg := loadTestTemplates(t)

	got, err := NewPromptBuilder().Build(cfg, "post", "linkedin", "startup founders", "remote hiring")
	require.NoError(t, err)

	want := `Write a LinkedIn post about: remote hiring

Human like writing rules:
- Sound human.
- Short sentences.

Additional rules:
- Platform-specific rules override global guidelines when they conflict.
- Target Audience: startup founders
- Length: 120-200 words [*Adjust length according to target audience or idea]
- Default Tone: Professional [*Adjust tone according to target audience or idea]
- Open with a hook
- End with a question

Constraints:
- Max 3 hashtags

**Just give final output.**`

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptBuilder_Build_ContainsInputs(t *testing.T) {
	cfg := loadTestTemplates(t)
	builder := NewPromptBuilder()

	for _, platform := range cfg.PlatformNames() {
		templates, _ := cfg.Platform(platform)
		for _, contentType := range templates.ContentTypes() {
			t.Run(platform+"/"+contentType, func(t *testing.T) {
				prompt, err := builder.Build(cfg, contentType, platform, "audience-"+platform, "idea about "+contentType)
				require.NoError(t, err)

				assert.Contains(t, prompt, "idea about "+contentType)
				assert.Contains(t, prompt, "audience-"+platform)
				entry := templates[contentType]
				for _, rule := range entry.Rules {
					assert.Contains(t, prompt, rule)
				}
				for _, constraint := range entry.Constraints {
					assert.Contains(t, prompt, constraint)
				}
				assert.Equal(t, strings.TrimSpace(prompt), prompt)
			})
		}
	}
}

func TestPromptBuilder_Build_CaseInsensitiveKeys(t *testing.T) {
	cfg := loadTestTemplates(t)

	prompt, err := NewPromptBuilder().Build(cfg, "Tweet", "X", "devs", "Go generics")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "Write a tweet about: Go generics"))
}

func TestPromptBuilder_Build_MissingOptionalFields(t *testing.T) {
	cfg := loadTestTemplates(t)

	prompt, err := NewPromptBuilder().Build(cfg, "bare", "linkedin", "anyone", "cats")
	require.NoError(t, err)

	assert.Contains(t, prompt, "- Length:  [*Adjust length")
	assert.Contains(t, prompt, "- Default Tone:  [*Adjust tone")
	assert.Contains(t, prompt, "Constraints:\n\n\n**Just give final output.**")
	assert.NotContains(t, prompt, "output_format")
}

func TestPromptBuilder_Build_Errors(t *testing.T) {
	cfg := loadTestTemplates(t)
	builder := NewPromptBuilder()

	_, err := builder.Build(cfg, "post", "myspace", "a", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedPlatform))
	assert.Equal(t, "Unsupported platform: myspace", err.Error())

	_, err = builder.Build(cfg, "novel", "linkedin", "a", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedContentType))
	assert.Equal(t, "Unsupported content type 'novel' for platform 'linkedin'", err.Error())

	_, err = builder.Build(nil, "post", "linkedin", "a", "b")
	assert.True(t, errors.Is(err, domain.ErrConfigLoad))
}

func TestPromptBuilder_BuildEdit(t *testing.T) {
	got := NewPromptBuilder().BuildEdit("Original post.", "make it shorter")

	want := "Here is the original content:\nOriginal post.\n\nEdit Request: make it shorter\n\n" +
		"Please rewrite the content according to the edit request while maintaining the original style and format. " +
		"Keep the same content type and platform requirements.\n" +
		"**just give final output do not share what u change or anything else**\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildEdit() mismatch (-want +got):\n%s", diff)
	}
}
