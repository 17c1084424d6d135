// Package llm provides shared data models for model providers.
package llm

import (
	"encoding/json"

	"github.com/renswick/atlas/model"
)

// ChatMessage is one conversation turn as sent to a provider.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant turns that requested tools
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool outcome turns
}

// ToolCall is a native function call as a provider represents it.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolDefinition describes a callable tool to the provider.
// Parameters is a JSON schema object.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Reply is one raw model turn before normalization.
type Reply struct {
	Content string
	// Reasoning is the model's thinking text, when the provider exposes it
	// (reasoning_content on DeepSeek-style APIs). Empty otherwise.
	Reasoning string
	ToolCalls []ToolCall
	Usage     *TokenUsage
}

// TokenUsage contains token accounting for one call.
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}

// SystemMessage creates a system turn.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: model.RoleSystem, Content: content}
}

// UserMessage creates a user turn.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: model.RoleUser, Content: content}
}

// AssistantMessage creates an assistant turn.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: model.RoleAssistant, Content: content}
}

// ToolMessage creates a tool outcome turn answering the given call ID.
func ToolMessage(toolCallID, content string) ChatMessage {
	return ChatMessage{Role: model.RoleTool, Content: content, ToolCallID: toolCallID}
}
