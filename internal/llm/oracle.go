package llm

import (
	"context"

	"github.com/verifact/verifact/internal/model"
)

// Oracle defines the language-model capability used by the pipeline.
// Both claim extraction and claim verification go through CompleteJSON;
// the caller owns the prompts and the parsing of the structured reply.
type Oracle interface {
	// Name returns the oracle name
	Name() string

	// CompleteJSON sends a chat completion request with structured (JSON
	// object) output enforced and returns the raw response content.
	CompleteJSON(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the oracle is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one oracle call
type CompletionRequest struct {
	// System is the fixed system instruction
	System string

	// Prompt is the user instruction
	Prompt string

	// Model overrides the configured model when set
	Model string

	// Temperature controls randomness; low but nonzero for extraction,
	// very low for verification
	Temperature float32

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds oracle configuration
type Config struct {
	// Model name (e.g., gpt-4o-mini)
	Model string

	// APIKey for the oracle API
	APIKey string

	// BaseURL for custom endpoints (mainly for tests)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}
