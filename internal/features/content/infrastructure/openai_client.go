package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"postcraft/backend/internal/features/content/domain"
	"postcraft/backend/internal/logging"
)

// DefaultAttemptTimeout bounds a single upstream call when none is configured.
const DefaultAttemptTimeout = 60 * time.Second

// errRateLimited marks an attempt the fallback loop may retry on the next model.
var errRateLimited = errors.New("rate-limited")

// ClientConfig configures the upstream client.
type ClientConfig struct {
	// BaseURL is the OpenAI-compatible API root, e.g. https://openrouter.ai/api/v1.
	BaseURL string
	// Models is the fallback chain, tried in order.
	Models []string
	// AttemptTimeout bounds each call. Zero means DefaultAttemptTimeout.
	AttemptTimeout time.Duration
	// HTTPClient overrides the transport. Nil means http.DefaultClient.
	HTTPClient *http.Client
	// OnAttempt, when set, observes every finished attempt.
	OnAttempt func(Attempt)
}

// openAIClient is the go-openai implementation of CompletionClient.
type openAIClient struct {
	baseURL        string
	models         []string
	attemptTimeout time.Duration
	httpClient     *http.Client
	onAttempt      func(Attempt)
	logger         *zap.Logger
}

// NewOpenAIClient creates a completion client for an OpenAI-compatible endpoint.
func NewOpenAIClient(cfg ClientConfig, logger *zap.Logger) (CompletionClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base URL not set")
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("model fallback chain is empty")
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = DefaultAttemptTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	models := make([]string, len(cfg.Models))
	copy(models, cfg.Models)

	return &openAIClient{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		models:         models,
		attemptTimeout: cfg.AttemptTimeout,
		httpClient:     cfg.HTTPClient,
		onAttempt:      cfg.OnAttempt,
		logger:         logger,
	}, nil
}

func (c *openAIClient) Models() []string {
	out := make([]string, len(c.models))
	copy(out, c.models)
	return out
}

// newClient binds the shared transport to one secret.
func (c *openAIClient) newClient(secret string) *openai.Client {
	config := openai.DefaultConfig(secret)
	config.BaseURL = c.baseURL
	config.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(config)
}

// CompleteWithFallback walks the model chain. A rate-limited attempt moves on
// to the next model immediately; any other failure ends the run.
func (c *openAIClient) CompleteWithFallback(ctx context.Context, secret, prompt string) (*Completion, error) {
	client := c.newClient(secret)
	completion := &Completion{}

	for i, model := range c.models {
		if err := ctx.Err(); err != nil {
			return nil, domain.Wrapf(domain.ErrCancelled, err, "request cancelled before attempt %d", i+1)
		}

		c.logger.Info("Attempting with model", zap.String("model", model), zap.Int("attempt", i+1))
		start := time.Now()
		content, err := c.call(ctx, client, model, prompt, CompletionOptions{})
		attempt := Attempt{Model: model, Err: err, Duration: time.Since(start)}

		switch {
		case err == nil:
			attempt.Outcome = OutcomeSuccess
		case errors.Is(err, domain.ErrCancelled):
			attempt.Outcome = OutcomeCancelled
		case errors.Is(err, errRateLimited):
			attempt.Outcome = OutcomeRateLimited
		default:
			attempt.Outcome = OutcomeFailed
		}
		completion.Attempts = append(completion.Attempts, attempt)
		c.observe(attempt)

		switch attempt.Outcome {
		case OutcomeSuccess:
			c.logger.Info("Successfully used model", zap.String("model", model), zap.Duration("duration", attempt.Duration))
			completion.Content = content
			completion.Model = model
			return completion, nil
		case OutcomeRateLimited:
			c.logger.Warn("Model is rate-limited, trying next model", zap.String("model", model), zap.Error(err))
			continue
		default:
			c.logger.Error("API Error", zap.String("model", model), zap.Error(err))
			return nil, err
		}
	}

	return nil, domain.Newf(domain.ErrAllModelsRateLimited, "All models are rate-limited. Please try again later.")
}

// Complete makes one call with no fallback. Rate limiting is reported as an
// ordinary upstream failure.
func (c *openAIClient) Complete(ctx context.Context, secret, model, prompt string, opts CompletionOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.Wrapf(domain.ErrCancelled, err, "request cancelled")
	}

	c.logger.Debug("Calling model",
		zap.String("model", model),
		zap.String("key", logging.MaskSecret(secret)),
		zap.Int("max_tokens", opts.MaxTokens))

	start := time.Now()
	content, err := c.call(ctx, c.newClient(secret), model, prompt, opts)
	attempt := Attempt{Model: model, Err: err, Duration: time.Since(start), Outcome: OutcomeSuccess}
	if err != nil {
		attempt.Outcome = OutcomeFailed
		if errors.Is(err, domain.ErrCancelled) {
			attempt.Outcome = OutcomeCancelled
		}
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == errRateLimited {
			de.Kind = domain.ErrUpstream
		}
	}
	c.observe(attempt)

	if err != nil {
		c.logger.Error("API Error", zap.String("model", model), zap.Error(err))
		return "", err
	}
	return content, nil
}

func (c *openAIClient) observe(attempt Attempt) {
	if c.onAttempt != nil {
		c.onAttempt(attempt)
	}
}

// call issues one chat completion request and classifies its failure.
func (c *openAIClient) call(ctx context.Context, client *openai.Client, model, prompt string, opts CompletionOptions) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", domain.Wrapf(domain.ErrCancelled, ctxErr, "upstream call to %s cancelled", model)
		}
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 || isEmptyMessage(resp.Choices[0].Message) {
		return "", domain.Newf(domain.ErrUpstream, "Invalid response structure from API")
	}
	return resp.Choices[0].Message.Content, nil
}

func isEmptyMessage(msg openai.ChatCompletionMessage) bool {
	return msg.Role == "" && msg.Content == "" && len(msg.MultiContent) == 0 && len(msg.ToolCalls) == 0
}

// classifyError turns a go-openai error into errRateLimited or ErrUpstream,
// keeping the upstream message for display.
func classifyError(err error) error {
	message := upstreamMessage(err)
	if IsRateLimitError(err) {
		return domain.Wrapf(errRateLimited, err, "API request failed: %s", message)
	}
	return domain.Wrapf(domain.ErrUpstream, err, "API request failed: %s", message)
}

func upstreamMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if text := http.StatusText(apiErr.HTTPStatusCode); text != "" {
			return text
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if text := http.StatusText(reqErr.HTTPStatusCode); text != "" {
			return text
		}
	}
	return "transport error"
}

// IsRateLimitError reports whether err means the model is rate-limited: the
// error text mentions 429, the API error code is 429, or the API error
// message says "rate-limited".
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.Code.(type) {
		case int:
			if code == http.StatusTooManyRequests {
				return true
			}
		case float64:
			if code == http.StatusTooManyRequests {
				return true
			}
		case string:
			if code == "429" {
				return true
			}
		}
		if strings.Contains(strings.ToLower(apiErr.Message), "rate-limited") {
			return true
		}
	}

	return strings.Contains(err.Error(), "429")
}
