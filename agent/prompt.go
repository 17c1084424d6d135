package agent

import (
	"fmt"
	"strings"

	"github.com/renswick/atlas/tools"
)

// systemInstruction builds the fixed system prompt: the tool catalogue in
// registration order plus the JSON-only prose contract the parser relies on.
func systemInstruction(specs []tools.Spec) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant that controls an interactive map.\n\n")
	b.WriteString("Available tools:\n")
	for _, spec := range specs {
		fmt.Fprintf(&b, "- %s: %s\n", spec.Name, spec.Description)
		for _, p := range spec.Params {
			requirement := "optional"
			if p.Required {
				requirement = "required"
			}
			fmt.Fprintf(&b, "    %s (%s, %s): %s\n", p.Name, p.Type, requirement, p.Description)
		}
	}

	b.WriteString(`
When users ask to navigate to locations, use navigate_to_location.
When they ask to zoom, use zoom_to_level.
To resolve a free-text address or place description, use geocode_address.

IMPORTANT: Always respond in JSON format. If you don't use tools, respond with:
{"response": "your text response here"}

If you use tools, let the tool execution handle the response.

If your model supports reasoning/thinking content:
- Put your thinking process in reasoning_content field
- Put your final response in the content field
- This helps users understand how you reached your conclusion.`)

	return b.String()
}
