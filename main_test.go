package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"postcraft/backend/internal/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestOptionsCommand_SampleTemplates(t *testing.T) {
	out := execute(t, "options", "--templates", "config/prompt.json", "--log-level", "error")

	var opts struct {
		Platforms    []string            `json:"platforms"`
		ContentTypes map[string][]string `json:"contentTypes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Contains(t, opts.Platforms, "linkedin")
	assert.Contains(t, opts.Platforms, "youtube")
	assert.Contains(t, opts.ContentTypes["linkedin"], "post")
}

func TestPromptCommand(t *testing.T) {
	out := execute(t, "prompt", "--templates", "config/prompt.json", "--log-level", "error",
		"--platform", "LinkedIn", "--content-type", "post", "--audience", "founders", "--prompt", "remote hiring")

	assert.True(t, strings.HasPrefix(out, "Write a LinkedIn post about: remote hiring"))
	assert.Contains(t, out, "Target Audience: founders")
	assert.Contains(t, out, "**Just give final output.**")
}

func TestNewApp(t *testing.T) {
	cfg, err := config.Load(config.NewViper())
	require.NoError(t, err)

	a, err := newApp(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, cfg.Upstream.FallbackModels, a.client.Models())
	assert.Equal(t, cfg.Edit.Model, a.options.Models().EditModel)
	assert.NotEmpty(t, a.options.Platforms())
}
