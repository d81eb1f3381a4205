package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"codeberg.org/snonux/vide/internal/translation"
)

// Provider names
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DefaultGeminiModel is used when no model is configured for Gemini
const DefaultGeminiModel = "gemini-3-pro-preview"

// Config holds configuration for generative backends
type Config struct {
	Provider string // "gemini" or "openai"
	Model    string

	// Temperature is kept low so translations and glossaries are reproducible
	Temperature float32

	// Timeout bounds a single HTTP round trip
	Timeout time.Duration

	GeminiKey     string
	OpenAIKey     string
	OpenAIBaseURL string // optional, for OpenAI compatible endpoints

	// BreakerFailures consecutive failures open the circuit for BreakerTimeout.
	// Zero disables the breaker.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Temperature:     0.2,
		Timeout:         60 * time.Second,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// ModelName returns the configured model or the provider default
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return openai.GPT4oMini
	default:
		return DefaultGeminiModel
	}
}

// New creates the backend selected by config, wrapped in a circuit breaker
// unless BreakerFailures is zero
func New(ctx context.Context, config *Config, logger *zap.Logger) (translation.Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		b   translation.Backend
		err error
	)
	switch config.Provider {
	case ProviderGemini, "":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		b, err = NewGenAIBackend(ctx, config)
	case ProviderOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		b, err = NewOpenAIBackend(config), nil
	default:
		return nil, fmt.Errorf("unknown backend provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	if config.BreakerFailures == 0 {
		return b, nil
	}
	return NewBreakerBackend(b, config.Provider, config.BreakerFailures, config.BreakerTimeout, logger), nil
}
