// Package tools provides the map tool registry and dispatcher.
//
// Information Hiding:
// - Argument validation and decoding hidden behind Dispatch
// - World state mutation confined to tool handlers
// - Schema rendering for LLM providers derived from tool specs
package tools

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Param describes one argument in a tool's schema.
type Param struct {
	Name        string
	Type        string // JSON schema type: "number", "integer", "string"
	Description string
	Required    bool
}

// Spec describes a tool to the dispatcher and to LLM providers.
type Spec struct {
	Name        string
	Description string
	Params      []Param
}

// Schema renders the spec as JSON-schema parameters for provider tool
// definitions.
func (s Spec) Schema() map[string]any {
	properties := make(map[string]any, len(s.Params))
	required := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		properties[p.Name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// Tool is one named capability the model may invoke.
// Execute receives arguments whose required keys the dispatcher has already
// checked; type decoding still happens inside the handler.
type Tool interface {
	Spec() Spec
	Execute(ctx context.Context, args map[string]any) Result
}

// decodeArgs decodes a validated argument map into a typed handler struct.
// Weakly typed input tolerates models sending numbers as strings or floats
// where integers are declared.
func decodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("malformed arguments: %w", err)
	}
	return nil
}
