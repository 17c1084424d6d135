// Google Gemini provider implementation using google.golang.org/genai.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for the Gemini API
// - Function declaration schema conversion

package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	initErr     error // client initialization error, reported on first use
}

// NewGeminiProvider creates a Gemini provider. If client initialization
// fails, the error is stored and returned on the first call.
func NewGeminiProvider(apiKey, model string, maxTokens uint32, temperature float32) *GeminiProvider {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})

	p := &GeminiProvider{
		client:      client,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}
	if err != nil {
		p.client = nil
		p.initErr = fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return p
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the current model.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Chat sends a completion request with optional tool definitions.
func (p *GeminiProvider) Chat(ctx context.Context, messages []ChatMessage, tools []ToolDefinition) (Reply, error) {
	if p.initErr != nil {
		return Reply{}, p.initErr
	}
	if p.client == nil {
		return Reply{}, fmt.Errorf("gemini client not initialized")
	}

	contents, systemInstruction := toGeminiContents(messages)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.temperature),
		MaxOutputTokens: p.maxTokens,
	}
	if len(tools) > 0 {
		config.Tools = toGeminiTools(tools)
	}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	response, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return Reply{}, fmt.Errorf("chat completion failed: %w", err)
	}

	reply := Reply{}
	if len(response.Candidates) > 0 && response.Candidates[0].Content != nil {
		for _, part := range response.Candidates[0].Content.Parts {
			if part.Text != "" {
				reply.Content += part.Text
			}
			if part.FunctionCall != nil {
				argsJSON, _ := json.Marshal(part.FunctionCall.Args)
				reply.ToolCalls = append(reply.ToolCalls, ToolCall{
					ID:        part.FunctionCall.Name, // Gemini uses the name as the ID
					Name:      part.FunctionCall.Name,
					Arguments: argsJSON,
				})
			}
		}
	}

	if response.UsageMetadata != nil {
		reply.Usage = &TokenUsage{
			PromptTokens:     uint32(response.UsageMetadata.PromptTokenCount),
			CompletionTokens: uint32(response.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      uint32(response.UsageMetadata.TotalTokenCount),
		}
	}

	return reply, nil
}

// toGeminiContents converts turns, separating the system instruction and
// carrying tool calls and tool outcomes.
func toGeminiContents(messages []ChatMessage) ([]*genai.Content, string) {
	var contents []*genai.Content
	var systemInstruction string

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			systemInstruction = msg.Content
		case "user":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case "assistant":
			if len(msg.ToolCalls) > 0 {
				content := &genai.Content{Role: genai.RoleModel}
				if msg.Content != "" {
					content.Parts = append(content.Parts, &genai.Part{Text: msg.Content})
				}
				for _, tc := range msg.ToolCalls {
					var args map[string]any
					_ = json.Unmarshal(tc.Arguments, &args)
					content.Parts = append(content.Parts, &genai.Part{
						FunctionCall: &genai.FunctionCall{
							Name: tc.Name,
							Args: args,
						},
					})
				}
				contents = append(contents, content)
			} else {
				contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
			}
		case "tool":
			var result map[string]any
			_ = json.Unmarshal([]byte(msg.Content), &result)
			if result == nil {
				result = map[string]any{"result": msg.Content}
			}
			contents = append(contents, &genai.Content{
				Role: genai.RoleUser, // Gemini expects tool results as user turns
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     msg.ToolCallID,
						Response: result,
					},
				}},
			})
		}
	}

	return contents, systemInstruction
}

// toGeminiTools converts tool definitions to Gemini function declarations.
// Our tool schemas are flat objects of scalar parameters, so the conversion
// does not need to recurse.
func toGeminiTools(tools []ToolDefinition) []*genai.Tool {
	var declarations []*genai.FunctionDeclaration
	for _, t := range tools {
		schema := &genai.Schema{Type: genai.TypeObject}

		if required, ok := t.Parameters["required"].([]string); ok {
			schema.Required = required
		}
		if properties, ok := t.Parameters["properties"].(map[string]any); ok {
			schema.Properties = make(map[string]*genai.Schema, len(properties))
			for name, prop := range properties {
				propMap, ok := prop.(map[string]any)
				if !ok {
					continue
				}
				propSchema := &genai.Schema{}
				if typ, ok := propMap["type"].(string); ok {
					propSchema.Type = toGeminiType(typ)
				}
				if desc, ok := propMap["description"].(string); ok {
					propSchema.Description = desc
				}
				schema.Properties[name] = propSchema
			}
		}

		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  schema,
		})
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// toGeminiType maps JSON schema scalar types to Gemini types.
func toGeminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

var _ Provider = (*GeminiProvider)(nil)
