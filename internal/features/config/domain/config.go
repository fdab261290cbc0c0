package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	// GlobalGuidelinesKey is the reserved key holding guidelines shared by every platform.
	GlobalGuidelinesKey = "global_guidelines"
	// HumanRulesKey is the guideline injected into every generation prompt.
	HumanRulesKey = "Human Rules"
)

// TemplateFile is the root of the prompt template file.
type TemplateFile struct {
	ContentCreationPrompts *TemplateConfig `json:"content_creation_prompts"`
}

// TemplateConfig maps platform -> content type -> template, plus the global guidelines.
type TemplateConfig struct {
	Platforms        map[string]PlatformTemplates
	GlobalGuidelines map[string]Text
}

// PlatformTemplates maps a content type to its template.
type PlatformTemplates map[string]TemplateEntry

// TemplateEntry is the template for one platform/content type pair.
type TemplateEntry struct {
	Prompt       string   `json:"prompt"`
	Length       Text     `json:"length"`
	DefaultTone  Text     `json:"default_tone"`
	Rules        []string `json:"rules"`
	Constraints  []string `json:"constraints"`
	OutputFormat []string `json:"output_format"`
}

// Text is a string that also accepts JSON arrays (joined by newlines, one item
// per line) and other scalars (kept as their literal JSON text).
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '[':
		var items []Text
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = string(item)
		}
		*t = Text(strings.Join(parts, "\n"))
	default:
		*t = Text(trimmed)
	}
	return nil
}

// UnmarshalJSON splits the reserved global guidelines key from the platform entries.
func (c *TemplateConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Platforms = make(map[string]PlatformTemplates, len(raw))
	c.GlobalGuidelines = map[string]Text{}
	for key, msg := range raw {
		if key == GlobalGuidelinesKey {
			if err := json.Unmarshal(msg, &c.GlobalGuidelines); err != nil {
				return fmt.Errorf("%s: %w", GlobalGuidelinesKey, err)
			}
			continue
		}
		var templates PlatformTemplates
		if err := json.Unmarshal(msg, &templates); err != nil {
			return fmt.Errorf("platform %q: %w", key, err)
		}
		c.Platforms[key] = templates
	}
	return nil
}

// HumanRules returns the global human-like writing rules, empty when absent.
func (c *TemplateConfig) HumanRules() string {
	return string(c.GlobalGuidelines[HumanRulesKey])
}

// Platform returns the templates of a platform key.
func (c *TemplateConfig) Platform(name string) (PlatformTemplates, bool) {
	templates, ok := c.Platforms[name]
	return templates, ok
}

// PlatformNames returns the configured platforms, sorted.
func (c *TemplateConfig) PlatformNames() []string {
	names := make([]string, 0, len(c.Platforms))
	for name := range c.Platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContentTypes returns the content types of a platform template set, sorted.
func (t PlatformTemplates) ContentTypes() []string {
	types := make([]string, 0, len(t))
	for name := range t {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// AvailableOptions lists what a caller may ask for.
type AvailableOptions struct {
	Platforms    []string            `json:"platforms"`
	ContentTypes map[string][]string `json:"contentTypes"`
}

// Options builds the platform and content type listing.
func (c *TemplateConfig) Options() AvailableOptions {
	opts := AvailableOptions{
		Platforms:    c.PlatformNames(),
		ContentTypes: make(map[string][]string, len(c.Platforms)),
	}
	for _, name := range opts.Platforms {
		opts.ContentTypes[name] = c.Platforms[name].ContentTypes()
	}
	return opts
}
