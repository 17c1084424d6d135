// DeepSeek provider implementation using go-openai.
//
// Information Hiding:
// - OpenAI-compatible API with a different base URL
// - reasoning_content extraction for deepseek-reasoner models

package llm

const deepseekBaseURL = "https://api.deepseek.com/v1"

// NewDeepSeekProvider creates a DeepSeek provider. DeepSeek speaks the
// OpenAI wire protocol, so this reuses the OpenAI client with the DeepSeek
// endpoint; the reasoning text of reasoner models comes back in
// Reply.Reasoning.
func NewDeepSeekProvider(apiKey, model string, maxTokens uint32, temperature float32) *OpenAIProvider {
	p := NewOpenAIProvider(apiKey, deepseekBaseURL, model, maxTokens, temperature)
	p.name = "deepseek"
	return p
}
