package parser

import (
	"encoding/json"
	"testing"

	"github.com/renswick/atlas/llm"
	"github.com/renswick/atlas/model"
	"github.com/renswick/atlas/tools"
)

func decodeNavigateArgs(t *testing.T, call model.ToolCall) (float64, float64) {
	t.Helper()
	var args struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		t.Fatalf("failed to decode arguments %s: %v", call.Arguments, err)
	}
	return args.Latitude, args.Longitude
}

func decodeZoomArgs(t *testing.T, call model.ToolCall) int {
	t.Helper()
	var args struct {
		ZoomLevel int `json:"zoom_level"`
	}
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		t.Fatalf("failed to decode arguments %s: %v", call.Arguments, err)
	}
	return args.ZoomLevel
}

func TestParseJSONResponseEnvelope(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{Content: `{"response": "hello"}`})
	if parsed.Kind != KindText {
		t.Fatalf("kind = %v, want KindText", parsed.Kind)
	}
	if parsed.Content != "hello" {
		t.Errorf("content = %q, want hello", parsed.Content)
	}
	if parsed.HasToolCalls() {
		t.Error("expected no tool calls")
	}
}

func TestParseJSONResponseNonString(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{Content: `{"response": {"answer": 42}}`})
	if parsed.Kind != KindText {
		t.Fatalf("kind = %v, want KindText", parsed.Kind)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(parsed.Content), &payload); err != nil {
		t.Fatalf("content %q is not the raw JSON value: %v", parsed.Content, err)
	}
	if payload["answer"] != float64(42) {
		t.Errorf("answer = %v, want 42", payload["answer"])
	}
}

func TestParseStructuredCallsTakePrecedence(t *testing.T) {
	p := New()

	reply := llm.Reply{
		Content: "navigate to tokyo", // would match the gazetteer if heuristics ran
		ToolCalls: []llm.ToolCall{{
			ID:        "call_1",
			Name:      tools.ZoomName,
			Arguments: json.RawMessage(`{"zoom_level": 7}`),
		}},
	}

	parsed := p.Parse(reply)
	if parsed.Kind != KindMixed {
		t.Fatalf("kind = %v, want KindMixed", parsed.Kind)
	}
	if len(parsed.Calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(parsed.Calls))
	}
	call := parsed.Calls[0]
	if call.Name != tools.ZoomName {
		t.Errorf("tool = %q, want %q", call.Name, tools.ZoomName)
	}
	if call.ID != "call_1" {
		t.Errorf("id = %q, want call_1", call.ID)
	}
	if call.Origin != model.OriginStructured {
		t.Errorf("origin = %v, want structured", call.Origin)
	}
	if parsed.Content != "navigate to tokyo" {
		t.Errorf("content = %q, want original prose preserved", parsed.Content)
	}
}

func TestParseStructuredCallsWithoutProse(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{
		ToolCalls: []llm.ToolCall{
			{Name: tools.NavigateName, Arguments: json.RawMessage(`{"latitude": 1, "longitude": 2}`)},
			{Name: tools.ZoomName, Arguments: json.RawMessage(`{"zoom_level": 3}`)},
		},
	})
	if parsed.Kind != KindToolCalls {
		t.Fatalf("kind = %v, want KindToolCalls", parsed.Kind)
	}
	if len(parsed.Calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(parsed.Calls))
	}
	if parsed.Calls[0].Name != tools.NavigateName || parsed.Calls[1].Name != tools.ZoomName {
		t.Error("calls not preserved in emission order")
	}
	for _, call := range parsed.Calls {
		if call.ID == "" {
			t.Error("expected generated ID for call without one")
		}
	}
}

func TestParseFunctionNameEncoding(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{
		Content: `{"function_name": "zoom_to_level", "parameters": {"zoom_level": 12}}`,
	})
	if parsed.Kind != KindToolCalls {
		t.Fatalf("kind = %v, want KindToolCalls", parsed.Kind)
	}
	call := parsed.Calls[0]
	if call.Name != tools.ZoomName {
		t.Errorf("tool = %q, want %q", call.Name, tools.ZoomName)
	}
	if call.Origin != model.OriginTextExtracted {
		t.Errorf("origin = %v, want text-extracted", call.Origin)
	}
	if got := decodeZoomArgs(t, call); got != 12 {
		t.Errorf("zoom_level = %d, want 12", got)
	}
}

func TestParseFunctionNameWithoutParameters(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{Content: `{"function_name": "zoom_to_level"}`})
	if !parsed.HasToolCalls() {
		t.Fatal("expected a tool call")
	}
	if string(parsed.Calls[0].Arguments) != "{}" {
		t.Errorf("arguments = %s, want {}", parsed.Calls[0].Arguments)
	}
}

func TestParseDirectToolKeyEncodings(t *testing.T) {
	p := New()

	tests := []struct {
		name    string
		content string
		tool    string
	}{
		{"navigate", `{"navigate_to_location": {"latitude": 48.85, "longitude": 2.35}}`, tools.NavigateName},
		{"zoom", `{"zoom_to_level": {"zoom_level": 4}}`, tools.ZoomName},
		{"geocode", `{"geocode_address": {"address": "1600 Amphitheatre Parkway"}}`, tools.GeocodeName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := p.Parse(llm.Reply{Content: tt.content})
			if parsed.Kind != KindToolCalls {
				t.Fatalf("kind = %v, want KindToolCalls", parsed.Kind)
			}
			if parsed.Calls[0].Name != tt.tool {
				t.Errorf("tool = %q, want %q", parsed.Calls[0].Name, tt.tool)
			}
		})
	}
}

func TestParseFencedJSON(t *testing.T) {
	p := New()

	content := "```json\n{\"response\": \"done\"}\n```"
	parsed := p.Parse(llm.Reply{Content: content})
	if parsed.Kind != KindText || parsed.Content != "done" {
		t.Errorf("got kind=%v content=%q, want terminal 'done'", parsed.Kind, parsed.Content)
	}
}

func TestParseGazetteerLookup(t *testing.T) {
	p := New()

	tests := []struct {
		content  string
		lat, lon float64
	}{
		{"Sure, I'll navigate to Tokyo for you.", 35.6762, 139.6503},
		{"show me the Eiffel Tower", 48.8584, 2.2945},
		{"take me to the grand canyon", 36.1069, -112.1129},
	}
	for _, tt := range tests {
		parsed := p.Parse(llm.Reply{Content: tt.content})
		if parsed.Kind != KindToolCalls {
			t.Fatalf("%q: kind = %v, want KindToolCalls", tt.content, parsed.Kind)
		}
		call := parsed.Calls[0]
		if call.Name != tools.NavigateName {
			t.Fatalf("%q: tool = %q, want navigate", tt.content, call.Name)
		}
		if call.Origin != model.OriginTextExtracted {
			t.Errorf("%q: origin = %v, want text-extracted", tt.content, call.Origin)
		}
		lat, lon := decodeNavigateArgs(t, call)
		if lat != tt.lat || lon != tt.lon {
			t.Errorf("%q: got (%v, %v), want (%v, %v)", tt.content, lat, lon, tt.lat, tt.lon)
		}
	}
}

func TestParsePlaceMentionWithoutVerbIsProse(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{Content: "Tokyo is the capital of Japan."})
	if parsed.Kind != KindText {
		t.Errorf("kind = %v, want KindText", parsed.Kind)
	}
	if parsed.HasToolCalls() {
		t.Error("place mention without a wayfinding verb must not navigate")
	}
}

func TestParseCoordinatePair(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{Content: "go to 51.5074, -0.1278 please"})
	if parsed.Kind != KindToolCalls {
		t.Fatalf("kind = %v, want KindToolCalls", parsed.Kind)
	}
	lat, lon := decodeNavigateArgs(t, parsed.Calls[0])
	if lat != 51.5074 || lon != -0.1278 {
		t.Errorf("got (%v, %v), want (51.5074, -0.1278)", lat, lon)
	}
}

func TestParseCoordinatePairOutOfRange(t *testing.T) {
	p := New()

	// 200 is not a valid latitude; the pair must be rejected.
	parsed := p.Parse(llm.Reply{Content: "go to 200, 10"})
	if parsed.HasToolCalls() {
		t.Error("out-of-range coordinates must not produce a call")
	}
}

func TestParseIncidentalNumbersWithoutVerb(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{Content: "The city has 8.5 million residents across 300 square miles."})
	if parsed.HasToolCalls() {
		t.Error("numbers without a wayfinding verb must not navigate")
	}
}

func TestParseZoomPhrase(t *testing.T) {
	p := New()

	tests := []struct {
		content string
		want    int
	}{
		{"zoom to 10", 10},
		{"zoom 5", 5},
		{"set level to 14", 14},
		{"Zoom level to 8", 8},
		// Out-of-range values pass through; the dispatcher saturates.
		{"zoom to 99", 99},
	}
	for _, tt := range tests {
		parsed := p.Parse(llm.Reply{Content: tt.content})
		if parsed.Kind != KindToolCalls {
			t.Fatalf("%q: kind = %v, want KindToolCalls", tt.content, parsed.Kind)
		}
		call := parsed.Calls[0]
		if call.Name != tools.ZoomName {
			t.Fatalf("%q: tool = %q, want zoom", tt.content, call.Name)
		}
		if got := decodeZoomArgs(t, call); got != tt.want {
			t.Errorf("%q: zoom_level = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestParseVagueZoomIsProse(t *testing.T) {
	p := New()

	parsed := p.Parse(llm.Reply{Content: "You could zoom in for more detail."})
	if parsed.HasToolCalls() {
		t.Error("non-numeric zoom phrasing must not produce a call")
	}
}

func TestParseUnmatchedProseIsTerminal(t *testing.T) {
	p := New()

	content := "The Eiffel Tower was completed in 1889."
	parsed := p.Parse(llm.Reply{Content: content, Reasoning: "thinking aloud"})
	if parsed.Kind != KindText {
		t.Fatalf("kind = %v, want KindText", parsed.Kind)
	}
	if parsed.Content != content {
		t.Errorf("content = %q, want original prose", parsed.Content)
	}
	if parsed.Thinking != "thinking aloud" {
		t.Errorf("thinking = %q, want carried through", parsed.Thinking)
	}
}

func TestParseUnrecognizedJSONFallsThrough(t *testing.T) {
	p := New()

	// Valid JSON, but neither a response envelope nor a tool encoding:
	// the extractor chain still runs over the raw text.
	parsed := p.Parse(llm.Reply{Content: `{"note": "navigate to paris"}`})
	if parsed.Kind != KindToolCalls {
		t.Fatalf("kind = %v, want KindToolCalls", parsed.Kind)
	}
	lat, lon := decodeNavigateArgs(t, parsed.Calls[0])
	if lat != 48.8566 || lon != 2.3522 {
		t.Errorf("got (%v, %v), want paris", lat, lon)
	}
}
