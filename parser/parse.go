// Package parser normalizes raw model replies into canonical tool calls.
//
// A model turn arrives in one of three forms: natively structured tool
// calls from the provider API, a JSON-encoded object in the text content,
// or unstructured prose. The parser collapses all three into one Parsed
// value so nothing downstream branches on representation.
//
// Information Hiding:
// - Which JSON shapes count as tool-call encodings
// - The heuristic extractor chain and its gating vocabulary
// - The place-name table backing the gazetteer fallback
package parser

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/renswick/atlas/internal/jsonx"
	"github.com/renswick/atlas/llm"
	"github.com/renswick/atlas/model"
	"github.com/renswick/atlas/tools"
)

// Kind discriminates the outcome of parsing one model turn.
type Kind int

const (
	// KindText is a terminal prose answer with no tool calls.
	KindText Kind = iota
	// KindToolCalls is one or more tool calls with no prose.
	KindToolCalls
	// KindMixed is a turn carrying both prose and tool calls.
	KindMixed
)

// Parsed is the canonical form of one model turn.
type Parsed struct {
	Kind     Kind
	Content  string
	Thinking string
	Calls    []model.ToolCall
}

// HasToolCalls reports whether the turn requested any tool execution.
func (p Parsed) HasToolCalls() bool {
	return len(p.Calls) > 0
}

// Parser turns model replies into Parsed values. It is stateless and
// safe for concurrent use.
type Parser struct {
	extractors []Extractor
}

// New returns a parser with the default extractor chain over the
// built-in gazetteer.
func New() *Parser {
	return NewWithExtractors(DefaultExtractors(DefaultGazetteer()))
}

// NewWithExtractors returns a parser with a custom extractor chain.
// Extractors run in order over prose that failed the JSON probe; the
// first match wins.
func NewWithExtractors(extractors []Extractor) *Parser {
	return &Parser{extractors: extractors}
}

// Parse normalizes one model reply.
//
// Structured tool calls from the provider are authoritative: when
// present, all text heuristics are skipped. Otherwise the content is
// probed as JSON (terminal {"response": ...} or a known tool-call
// encoding), and finally handed to the extractor chain. Prose matching
// nothing is a terminal answer, not an error.
func (p *Parser) Parse(reply llm.Reply) Parsed {
	if len(reply.ToolCalls) > 0 {
		parsed := Parsed{
			Kind:     KindToolCalls,
			Thinking: reply.Reasoning,
			Calls:    fromStructured(reply.ToolCalls),
		}
		if reply.Content != "" {
			parsed.Kind = KindMixed
			parsed.Content = reply.Content
		}
		return parsed
	}

	if raw, ok := jsonx.ExtractObject(reply.Content); ok {
		if parsed, ok := p.parseJSONObject(raw, reply.Reasoning); ok {
			return parsed
		}
	}

	for _, extractor := range p.extractors {
		if call, ok := extractor.Extract(reply.Content); ok {
			return Parsed{
				Kind:     KindToolCalls,
				Thinking: reply.Reasoning,
				Calls:    []model.ToolCall{call},
			}
		}
	}

	return Parsed{
		Kind:     KindText,
		Content:  reply.Content,
		Thinking: reply.Reasoning,
	}
}

// parseJSONObject recognizes the JSON shapes models emit when asked to
// respond in JSON: a terminal {"response": ...} envelope, a
// {"function_name": ..., "parameters": ...} call, or a call keyed
// directly by tool name.
func (p *Parser) parseJSONObject(raw json.RawMessage, thinking string) (Parsed, bool) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return Parsed{}, false
	}

	if answer, ok := object["response"]; ok {
		var text string
		if err := json.Unmarshal(answer, &text); err != nil {
			// Non-string answers are rendered as their raw JSON.
			text = string(answer)
		}
		return Parsed{Kind: KindText, Content: text, Thinking: thinking}, true
	}

	if name, ok := object["function_name"]; ok {
		var toolName string
		if err := json.Unmarshal(name, &toolName); err != nil {
			return Parsed{}, false
		}
		arguments := object["parameters"]
		if arguments == nil {
			arguments = json.RawMessage("{}")
		}
		return textCallParsed(toolName, arguments, thinking), true
	}

	for _, toolName := range []string{tools.NavigateName, tools.ZoomName, tools.GeocodeName} {
		if arguments, ok := object[toolName]; ok {
			return textCallParsed(toolName, arguments, thinking), true
		}
	}

	return Parsed{}, false
}

func textCallParsed(name string, arguments json.RawMessage, thinking string) Parsed {
	return Parsed{
		Kind:     KindToolCalls,
		Thinking: thinking,
		Calls: []model.ToolCall{{
			ID:        uuid.NewString(),
			Name:      name,
			Arguments: arguments,
			Origin:    model.OriginTextExtracted,
		}},
	}
}

// fromStructured wraps provider-native tool calls, preserving their IDs
// so tool outcomes can be correlated back to the request.
func fromStructured(calls []llm.ToolCall) []model.ToolCall {
	out := make([]model.ToolCall, len(calls))
	for i, call := range calls {
		id := call.ID
		if id == "" {
			id = uuid.NewString()
		}
		out[i] = model.ToolCall{
			ID:        id,
			Name:      call.Name,
			Arguments: call.Arguments,
			Origin:    model.OriginStructured,
		}
	}
	return out
}
