// Package llm provides model provider abstractions.
//
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import "context"

// Provider is the abstract interface for model providers.
// Chat is a blocking call; cancellation and deadlines come from ctx.
// A nil or empty tools slice sends a plain completion request.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model in use.
	Model() string

	// Chat sends a completion request with optional tool definitions.
	// The model may answer with text, native tool calls, or both.
	Chat(ctx context.Context, messages []ChatMessage, tools []ToolDefinition) (Reply, error)
}
