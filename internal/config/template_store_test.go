package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"postcraft/backend/internal/features/config/domain"
	contentdomain "postcraft/backend/internal/features/content/domain"
)

const jsonTemplates = `{
  "content_creation_prompts": {
    "global_guidelines": {"Human Rules": "Be human."},
    "linkedin": {
      "post": {
        "prompt": "Write a post:",
        "length": "short",
        "default_tone": "warm",
        "rules": ["r1", "r2"],
        "constraints": ["c1"],
        "output_format": ["body"]
      },
      "article": {"prompt": "Write an article:"}
    },
    "email": {
      "newsletter": {"prompt": "Write a newsletter:", "length": 300}
    }
  }
}`

const yamlTemplates = `
content_creation_prompts:
  global_guidelines:
    Human Rules: Be human.
  linkedin:
    post:
      prompt: "Write a post:"
      length: short
      default_tone: warm
      rules: [r1, r2]
      constraints: [c1]
      output_format: [body]
    article:
      prompt: "Write an article:"
  email:
    newsletter:
      prompt: "Write a newsletter:"
      length: 300
`

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseTemplates_JSON(t *testing.T) {
	cfg, err := ParseTemplates([]byte(jsonTemplates), ".json")
	require.NoError(t, err)

	assert.Equal(t, "Be human.", cfg.HumanRules())
	assert.Equal(t, []string{"email", "linkedin"}, cfg.PlatformNames())

	post := cfg.Platforms["linkedin"]["post"]
	assert.Equal(t, "Write a post:", post.Prompt)
	assert.Equal(t, domain.Text("short"), post.Length)
	assert.Equal(t, []string{"r1", "r2"}, post.Rules)
	assert.Equal(t, []string{"body"}, post.OutputFormat)
	assert.Equal(t, domain.Text("300"), cfg.Platforms["email"]["newsletter"].Length)
	_, hasGlobal := cfg.Platform(domain.GlobalGuidelinesKey)
	assert.False(t, hasGlobal)
}

func TestParseTemplates_YAMLMatchesJSON(t *testing.T) {
	fromJSON, err := ParseTemplates([]byte(jsonTemplates), ".json")
	require.NoError(t, err)
	fromYAML, err := ParseTemplates([]byte(yamlTemplates), ".yaml")
	require.NoError(t, err)

	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Errorf("YAML and JSON templates differ (-json +yaml):\n%s", diff)
	}
}

func TestParseTemplates_Errors(t *testing.T) {
	_, err := ParseTemplates([]byte(`{"other": {}}`), ".json")
	assert.Error(t, err)

	_, err = ParseTemplates([]byte(`{not json`), ".json")
	assert.Error(t, err)

	_, err = ParseTemplates([]byte("a: [unclosed"), ".yml")
	assert.Error(t, err)

	_, err = ParseTemplates([]byte(`{"content_creation_prompts": {"x": "not an object"}}`), ".json")
	assert.Error(t, err)
}

func TestTemplateStore_LoadCaches(t *testing.T) {
	path := writeFile(t, "prompt.json", jsonTemplates)
	store := NewTemplateStore(path, zap.NewNop())

	assert.False(t, store.Loaded())
	first, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, store.Loaded())

	// The file is not read again once cached.
	require.NoError(t, os.Remove(path))
	second, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestTemplateStore_FailureIsNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.json")
	store := NewTemplateStore(path, zap.NewNop())

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, contentdomain.ErrConfigLoad))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, store.Loaded())

	require.NoError(t, os.WriteFile(path, []byte(jsonTemplates), 0o644))
	cfg, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestTemplateStore_Malformed(t *testing.T) {
	for name, content := range map[string]string{
		"bad.json":     `{"content_creation_prompts": `,
		"noroot.json":  `{"prompts": {}}`,
		"bad.yaml":     "content_creation_prompts: [",
		"scalar.yaml":  "just a string",
		"emptyroot.js": `{"content_creation_prompts": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			store := NewTemplateStore(writeFile(t, name, content), zap.NewNop())
			_, err := store.Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, contentdomain.ErrConfigLoad))
		})
	}
}

func TestTemplateStore_ConcurrentLoad(t *testing.T) {
	store := NewTemplateStore(writeFile(t, "prompt.yaml", yamlTemplates), zap.NewNop())

	const n = 32
	results := make([]*domain.TemplateConfig, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := store.Load(context.Background())
			assert.NoError(t, err)
			results[i] = cfg
		}(i)
	}
	wg.Wait()

	for _, cfg := range results {
		assert.Same(t, results[0], cfg)
	}
}

func TestTemplateStore_LoadCancelled(t *testing.T) {
	store := NewTemplateStore(writeFile(t, "prompt.json", jsonTemplates), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either the read wins the race or the cancellation does.
	cfg, err := store.Load(ctx)
	if err != nil {
		assert.True(t, errors.Is(err, contentdomain.ErrCancelled))
		return
	}
	assert.NotNil(t, cfg)
}

func TestTemplateStore_Validate(t *testing.T) {
	store := NewTemplateStore(writeFile(t, "prompt.json", jsonTemplates), zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, store.Validate(ctx, "post", "linkedin"))
	assert.NoError(t, store.Validate(ctx, "Article", "LinkedIn"))

	err := store.Validate(ctx, "post", "myspace")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contentdomain.ErrInvalidPlatform))
	assert.Equal(t, "Invalid platform: myspace. Available platforms: email, linkedin", err.Error())

	err = store.Validate(ctx, "novel", "linkedin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contentdomain.ErrInvalidContentType))
	assert.Equal(t, "Invalid content type: novel for platform linkedin. Available types: article, post", err.Error())
}

func TestTemplateStore_ValidateLoadFailure(t *testing.T) {
	store := NewTemplateStore(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())

	err := store.Validate(context.Background(), "post", "linkedin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contentdomain.ErrConfigLoad))
}
