package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	contentdomain "postcraft/backend/internal/features/content/domain"
)

// Setting keys. Each is also read from the upper-cased environment variable.
const (
	KeyEnv                  = "env"
	KeyPort                 = "port"
	KeyTemplatesPath        = "templates_path"
	KeyLogLevel             = "log_level"
	KeyUpstreamBaseURL      = "upstream_base_url"
	KeyUpstreamTimeout      = "upstream_timeout"
	KeyFallbackModels       = "fallback_models"
	KeyEditModel            = "edit_model"
	KeyEditMaxTokens        = "edit_max_tokens"
	KeyEditTemperature      = "edit_temperature"
	KeyAllowedOrigins       = "allowed_origins"
	KeyRateLimitRPS         = "rate_limit_rps"
	KeyRateLimitBurst       = "rate_limit_burst"
	KeyLegacyErrorResponses = "legacy_error_responses"
)

// EditAPIKeyEnv is the environment variable holding the edit path secret.
const EditAPIKeyEnv = "EDIT_API_KEY"

// DefaultUpstreamBaseURL is the OpenRouter chat completions base URL.
const DefaultUpstreamBaseURL = "https://openrouter.ai/api/v1"

// Config is the process configuration.
type Config struct {
	Env                  string
	Port                 string
	TemplatesPath        string
	LogLevel             string
	Upstream             UpstreamConfig
	Edit                 EditConfig
	AllowedOrigins       []string
	RateLimit            RateLimitConfig
	LegacyErrorResponses bool
}

// UpstreamConfig configures the completion endpoint.
type UpstreamConfig struct {
	BaseURL        string
	Timeout        time.Duration
	FallbackModels []string
}

// EditConfig configures the single-model edit path.
type EditConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// RateLimitConfig configures the per-IP inbound limiter. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// NewViper returns a viper instance with defaults that reads the environment.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyTemplatesPath, "config/prompt.json")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyUpstreamBaseURL, DefaultUpstreamBaseURL)
	v.SetDefault(KeyUpstreamTimeout, "60s")
	v.SetDefault(KeyFallbackModels, "")
	v.SetDefault(KeyEditModel, contentdomain.DefaultEditModel)
	v.SetDefault(KeyEditMaxTokens, 2000)
	v.SetDefault(KeyEditTemperature, 0.7)
	v.SetDefault(KeyAllowedOrigins, "")
	v.SetDefault(KeyRateLimitRPS, 0)
	v.SetDefault(KeyRateLimitBurst, 5)
	v.SetDefault(KeyLegacyErrorResponses, false)
	v.AutomaticEnv()
	return v
}

// Load builds a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:           v.GetString(KeyEnv),
		Port:          strings.TrimSpace(v.GetString(KeyPort)),
		TemplatesPath: v.GetString(KeyTemplatesPath),
		LogLevel:      v.GetString(KeyLogLevel),
		Upstream: UpstreamConfig{
			BaseURL:        strings.TrimRight(v.GetString(KeyUpstreamBaseURL), "/"),
			Timeout:        v.GetDuration(KeyUpstreamTimeout),
			FallbackModels: splitList(v.GetString(KeyFallbackModels)),
		},
		Edit: EditConfig{
			Model:       v.GetString(KeyEditModel),
			MaxTokens:   v.GetInt(KeyEditMaxTokens),
			Temperature: float32(v.GetFloat64(KeyEditTemperature)),
		},
		AllowedOrigins: splitList(v.GetString(KeyAllowedOrigins)),
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64(KeyRateLimitRPS),
			Burst: v.GetInt(KeyRateLimitBurst),
		},
		LegacyErrorResponses: v.GetBool(KeyLegacyErrorResponses),
	}

	if len(cfg.Upstream.FallbackModels) == 0 {
		cfg.Upstream.FallbackModels = contentdomain.DefaultFallbackModels()
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("%s must not be empty", strings.ToUpper(KeyPort))
	}
	if cfg.TemplatesPath == "" {
		return nil, fmt.Errorf("%s must not be empty", strings.ToUpper(KeyTemplatesPath))
	}
	if cfg.Upstream.Timeout <= 0 {
		return nil, fmt.Errorf("%s must be a positive duration, got %q",
			strings.ToUpper(KeyUpstreamTimeout), v.GetString(KeyUpstreamTimeout))
	}
	// The upstream client omits a zero temperature, so 0 could never be sent.
	if cfg.Edit.Temperature <= 0 || cfg.Edit.Temperature > 2 {
		return nil, fmt.Errorf("%s must be in (0, 2], got %q",
			strings.ToUpper(KeyEditTemperature), v.GetString(KeyEditTemperature))
	}
	if cfg.RateLimit.RPS < 0 {
		return nil, fmt.Errorf("%s must not be negative", strings.ToUpper(KeyRateLimitRPS))
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst < 1 {
		cfg.RateLimit.Burst = 1
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
