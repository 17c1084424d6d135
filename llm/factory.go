// Provider factory.
//
// Providers are selected by name, with API keys read from each provider's
// conventional environment variable.

package llm

import (
	"fmt"
	"os"
	"strings"
)

// ProviderType identifies a supported model provider.
type ProviderType int

const (
	// ProviderOpenAI is the OpenAI provider, also used for any
	// OpenAI-compatible endpoint via a base URL override.
	ProviderOpenAI ProviderType = iota
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderDeepSeek is the DeepSeek provider.
	ProviderDeepSeek
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
)

// String returns the canonical provider name.
func (p ProviderType) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderDeepSeek:
		return "deepseek"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// EnvVar returns the environment variable holding this provider's API key.
func (p ProviderType) EnvVar() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderDeepSeek:
		return "DEEPSEEK_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// DefaultModel returns the default model for this provider.
func (p ProviderType) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o"
	case ProviderAnthropic:
		return "claude-sonnet-4-20250514"
	case ProviderDeepSeek:
		return "deepseek-chat"
	case ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return ""
	}
}

// ParseProviderType parses a provider name (case-insensitive, with aliases).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "deepseek":
		return ProviderDeepSeek, nil
	case "gemini", "google":
		return ProviderGemini, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// Options configures provider construction.
type Options struct {
	// Model overrides the provider's default model when non-empty.
	Model string
	// BaseURL points OpenAI-type providers at a compatible local endpoint.
	BaseURL string
	// APIKey overrides the environment lookup when non-empty. A BaseURL
	// pointing at a local endpoint makes a missing key non-fatal.
	APIKey      string
	MaxTokens   uint32
	Temperature float32
}

// NewProvider builds a provider by name.
func NewProvider(name string, opts Options) (Provider, error) {
	providerType, err := ParseProviderType(name)
	if err != nil {
		return nil, err
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(providerType.EnvVar())
	}
	if apiKey == "" {
		if providerType == ProviderOpenAI && opts.BaseURL != "" {
			// Local OpenAI-compatible servers usually ignore the key.
			apiKey = "local"
		} else {
			return nil, fmt.Errorf("%s: %s environment variable not set", providerType, providerType.EnvVar())
		}
	}

	model := opts.Model
	if model == "" {
		model = providerType.DefaultModel()
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	switch providerType {
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey, opts.BaseURL, model, maxTokens, temperature), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(apiKey, model, maxTokens, temperature), nil
	case ProviderDeepSeek:
		return NewDeepSeekProvider(apiKey, model, maxTokens, temperature), nil
	case ProviderGemini:
		return NewGeminiProvider(apiKey, model, maxTokens, temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", providerType)
	}
}
