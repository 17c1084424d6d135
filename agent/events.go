package agent

import (
	"encoding/json"

	"github.com/renswick/atlas/tools"
	"github.com/renswick/atlas/world"
)

// Outbound event types, discriminated by the "type" field on the wire.
const (
	EventToolCall      = "tool_call"
	EventToolResult    = "tool_result"
	EventLLMResponse   = "llm_response"
	EventSystemMessage = "system-message"
)

// Diagnostics carries the raw model-call outcome alongside every event of
// a turn, so an external observer can see what the model actually said
// regardless of how it was interpreted.
type Diagnostics struct {
	UserMessage  string `json:"user_message"`
	LLMSuccess   bool   `json:"llm_success"`
	LLMContent   string `json:"llm_content"`
	LLMError     string `json:"llm_error,omitempty"`
	HasToolCalls bool   `json:"has_tool_calls"`
}

// Event is one outbound notification to the transport/UI.
type Event struct {
	Type        string             `json:"type"`
	Content     string             `json:"content,omitempty"`
	Tool        string             `json:"tool,omitempty"`
	Arguments   json.RawMessage    `json:"arguments,omitempty"`
	MapState    *world.Snapshot    `json:"map_state,omitempty"`
	Coordinates *tools.Coordinates `json:"coordinates,omitempty"`
	Thinking    string             `json:"thinking_content,omitempty"`
	Diagnostics *Diagnostics       `json:"diagnostics,omitempty"`
}

// Notifier delivers events to whatever is watching the session: a
// websocket connection, a console, or a test recorder. An error means
// the event could not be encoded or delivered.
type Notifier interface {
	Notify(event Event) error
}
