// Package agent drives the conversation loop: call the model, normalize
// its reply, execute any tool calls, feed results back, repeat until a
// terminal prose turn or the iteration cap.
//
// Information Hiding:
// - Loop state machine internals hidden
// - Model communication hidden behind llm.Provider
// - Tool execution coordination hidden behind the session's dispatcher
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/renswick/atlas/errorsx"
	"github.com/renswick/atlas/llm"
	"github.com/renswick/atlas/model"
	"github.com/renswick/atlas/parser"
	"github.com/renswick/atlas/tools"
)

// DefaultMaxIterations caps the model-call/tool-execution rounds per
// user utterance.
const DefaultMaxIterations = 5

// Orchestrator runs sessions against one provider. It holds no session
// state itself; the session carries its turns and world.
type Orchestrator struct {
	provider      llm.Provider
	parser        *parser.Parser
	notifier      Notifier
	logger        *slog.Logger
	maxIterations int
}

// NewOrchestrator creates an orchestrator with the default iteration cap.
func NewOrchestrator(provider llm.Provider, p *parser.Parser, notifier Notifier, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		provider:      provider,
		parser:        p,
		notifier:      notifier,
		logger:        logger,
		maxIterations: DefaultMaxIterations,
	}
}

// WithMaxIterations overrides the iteration cap. Values below one keep
// the default.
func (o *Orchestrator) WithMaxIterations(n int) *Orchestrator {
	if n >= 1 {
		o.maxIterations = n
	}
	return o
}

// Run processes one user utterance to completion: the loop finishes with
// a terminal prose answer, an aborted turn on model failure, or a
// distinct gave-up signal at the iteration cap. Tool failures do not end
// the loop; they are surfaced as results and fed back to the model.
func (o *Orchestrator) Run(ctx context.Context, session *Session, utterance string) error {
	if len(session.Turns) == 0 {
		session.append(llm.SystemMessage(systemInstruction(session.Dispatcher.Specs())))
	}
	session.Terminal = false
	session.append(llm.UserMessage(utterance))

	definitions := toDefinitions(session.Dispatcher.Specs())

	for iteration := 0; iteration < o.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("session %s cancelled: %w", session.ID, err)
		}

		reply, err := o.provider.Chat(ctx, session.Turns, definitions)
		diagnostics := &Diagnostics{
			UserMessage: utterance,
			LLMSuccess:  err == nil,
			LLMContent:  reply.Content,
		}
		if err != nil {
			// Aborts the turn; a fresh utterance is needed to try again.
			diagnostics.LLMError = err.Error()
			o.notify(Event{
				Type:        EventSystemMessage,
				Content:     fmt.Sprintf("LLM Error: %v", err),
				Diagnostics: diagnostics,
			})
			return errorsx.Wrap(fmt.Errorf("model call failed: %w", err), errorsx.ReasonModelCall)
		}

		parsed := o.parser.Parse(reply)
		diagnostics.HasToolCalls = parsed.HasToolCalls()

		if !parsed.HasToolCalls() {
			session.append(llm.AssistantMessage(parsed.Content))
			session.Terminal = true
			o.notify(Event{
				Type:        EventLLMResponse,
				Content:     parsed.Content,
				Thinking:    parsed.Thinking,
				Diagnostics: diagnostics,
			})
			o.logger.Debug("terminal turn",
				"session", session.ID, "iterations", session.Iterations)
			return nil
		}

		session.append(assistantTurn(parsed))

		// Calls execute strictly in emission order: a later call in the
		// same turn observes the world as mutated by an earlier one.
		for _, call := range parsed.Calls {
			o.notify(Event{
				Type:        EventToolCall,
				Tool:        call.Name,
				Arguments:   call.Arguments,
				Thinking:    parsed.Thinking,
				Diagnostics: diagnostics,
			})

			result := session.Dispatcher.Dispatch(ctx, call)
			if !result.OK() {
				o.logger.Warn("tool call failed",
					"session", session.ID, "tool", call.Name,
					"origin", call.Origin, "message", result.Message)
			}

			snapshot := result.State
			o.notify(Event{
				Type:        EventToolResult,
				Tool:        result.Tool,
				Content:     result.Message,
				MapState:    &snapshot,
				Coordinates: result.Coordinates,
				Diagnostics: diagnostics,
			})

			session.append(llm.ToolMessage(call.ID, encodeResult(result)))
		}

		session.Iterations++
	}

	session.Terminal = true
	o.notify(Event{
		Type:    EventSystemMessage,
		Content: fmt.Sprintf("Gave up after %d iterations without a final answer.", o.maxIterations),
	})
	return errorsx.Wrap(
		fmt.Errorf("no terminal turn within %d iterations", o.maxIterations),
		errorsx.ReasonIterationLimit,
	)
}

// notify delivers an event, degrading an encode/delivery failure to a
// plain system message so the session keeps going.
func (o *Orchestrator) notify(event Event) {
	if o.notifier == nil {
		return
	}
	if err := o.notifier.Notify(event); err != nil {
		o.logger.Warn("notification failed", "type", event.Type, "error", err)
		fallback := Event{
			Type:    EventSystemMessage,
			Content: fmt.Sprintf("Message serialization error: %v", err),
		}
		if err := o.notifier.Notify(fallback); err != nil {
			o.logger.Error("fallback notification failed", "error", err)
		}
	}
}

// assistantTurn records what the model asked for, preserving native tool
// calls so providers can correlate the outcomes that follow.
func assistantTurn(parsed parser.Parsed) llm.ChatMessage {
	calls := make([]llm.ToolCall, len(parsed.Calls))
	for i, call := range parsed.Calls {
		calls[i] = llm.ToolCall{ID: call.ID, Name: call.Name, Arguments: call.Arguments}
	}
	return llm.ChatMessage{
		Role:      model.RoleAssistant,
		Content:   parsed.Content,
		ToolCalls: calls,
	}
}

// encodeResult renders a tool outcome for the next model turn.
func encodeResult(result tools.Result) string {
	encoded, err := json.Marshal(result)
	if err != nil {
		return result.Message
	}
	return string(encoded)
}

// toDefinitions converts tool specs to provider tool definitions.
func toDefinitions(specs []tools.Spec) []llm.ToolDefinition {
	definitions := make([]llm.ToolDefinition, len(specs))
	for i, spec := range specs {
		definitions[i] = llm.ToolDefinition{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.Schema(),
		}
	}
	return definitions
}
