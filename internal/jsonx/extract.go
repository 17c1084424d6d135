// Package jsonx extracts JSON objects from model response text.
//
// Models asked to reply in JSON still wrap their output in markdown code
// fences or surround it with commentary. This package recovers the object
// when one is present without being fooled by arbitrary prose.
package jsonx

import (
	"encoding/json"
	"strings"
)

// ExtractObject returns the JSON object embedded in a response, if any.
// It tries, in order: the whole (fence-stripped) response, then the span
// between the first '{' and the last '}'.
//
// Limitations: objects only, not arrays; simple brace matching rather than
// full scanning, so unbalanced braces inside strings can defeat it.
func ExtractObject(response string) (json.RawMessage, bool) {
	response = stripCodeFence(response)

	if raw, ok := validObject(response); ok {
		return raw, true
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	return validObject(response[start : end+1])
}

// validObject reports whether s is a well-formed JSON object.
func validObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}

// stripCodeFence removes ```json / ``` markers around a response.
func stripCodeFence(response string) string {
	trimmed := strings.TrimSpace(response)

	if strings.HasPrefix(trimmed, "```json") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "```json"))
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	}

	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}

	return trimmed
}
