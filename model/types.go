// Package model provides canonical domain types shared across packages.
//
// Every representation a model turn may arrive in (native function calls,
// JSON-encoded text, calls recovered from prose) is normalized into the
// single ToolCall variant below at the parsing boundary. Nothing downstream
// branches on where a call came from; Origin exists for diagnostics only.
package model

import "encoding/json"

// Origin records how a tool call was obtained from a model turn.
type Origin int

const (
	// OriginStructured means the provider returned a native function call.
	OriginStructured Origin = iota
	// OriginTextExtracted means the call was recovered from response text.
	OriginTextExtracted
)

// String returns the origin name for logging.
func (o Origin) String() string {
	switch o {
	case OriginStructured:
		return "structured"
	case OriginTextExtracted:
		return "text_extracted"
	default:
		return "unknown"
	}
}

// ToolCall is a request to invoke one named capability.
// Arguments stay opaque until the dispatcher validates them.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Origin    Origin          `json:"-"`
}

// Conversation turn roles. RoleTool carries a tool outcome back to the model.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)
