// Package llm sends rendered prompts to a text-generation provider and
// coerces the structured reply into a flow's output schema.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

// ProviderName selects the generation backend.
type ProviderName string

const (
	ProviderGemini    ProviderName = "gemini"
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
)

// Config holds LLM client configuration.
type Config struct {
	Provider ProviderName // defaults to gemini
	APIKey   string       // Required: API key for the provider
	BaseURL  string       // Optional: custom API endpoint
	Model    string       // Optional: provider default when empty
	Timeout  time.Duration
}

// Request is one generation call.
type Request struct {
	Name        string // flow name, used as the schema/tool name
	Prompt      string
	Output      schema.Schema
	Safety      SafetySettings
	MaxTokens   int
	Temperature *float64 // nil = model default, explicit 0 = deterministic
}

// Response is the provider's raw reply before coercion.
type Response struct {
	Payload          []byte
	FinishReason     string
	PromptTokens     int
	CompletionTokens int
}

// Provider performs a single structured generation call. Implementations
// never retry and return *InvocationError for transport or provider failures.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() ProviderName
	Model() string
}

// NewProvider creates the Provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func Temp(t float64) *float64 {
	return &t
}
