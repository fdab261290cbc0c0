package infrastructure

import (
	"context"
	"time"
)

// CompletionOptions tunes a single upstream call. Zero values are omitted
// from the request body.
type CompletionOptions struct {
	MaxTokens   int
	Temperature float32
}

// AttemptOutcome classifies how one upstream attempt ended.
type AttemptOutcome string

const (
	OutcomeSuccess     AttemptOutcome = "success"
	OutcomeRateLimited AttemptOutcome = "rate_limited"
	OutcomeFailed      AttemptOutcome = "failed"
	OutcomeCancelled   AttemptOutcome = "cancelled"
)

// Attempt records one call against one model.
type Attempt struct {
	Model    string
	Outcome  AttemptOutcome
	Err      error
	Duration time.Duration
}

// Completion is a successful fallback run.
type Completion struct {
	Content  string
	Model    string
	Attempts []Attempt
}

// CompletionClient defines the interface for the upstream chat completions API.
type CompletionClient interface {
	// CompleteWithFallback tries each configured model in order, moving on
	// only when a model is rate-limited.
	CompleteWithFallback(ctx context.Context, secret, prompt string) (*Completion, error)

	// Complete makes exactly one call against model.
	Complete(ctx context.Context, secret, model, prompt string, opts CompletionOptions) (string, error)

	// Models returns the fallback chain in order.
	Models() []string
}

// SecretResolver maps platforms and variable names to secrets.
type SecretResolver interface {
	Resolve(platform string) (string, error)
	Lookup(name string) (string, error)
}
