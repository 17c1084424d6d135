package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/renswick/atlas/model"
	"github.com/renswick/atlas/tools"
)

// Extractor recovers a single tool call from free-form model prose.
// Implementations must be pure: same text in, same call out.
type Extractor interface {
	// Extract returns the recovered call and true, or false when the
	// text does not match this extractor's pattern.
	Extract(text string) (model.ToolCall, bool)
}

// wayfindingVerbs gate the location extractors. Incidental numbers or
// place mentions in prose must not trigger navigation.
var wayfindingVerbs = []string{"navigate", "go to", "show me", "take me"}

func hasWayfindingVerb(lower string) bool {
	for _, verb := range wayfindingVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

type navigateArguments struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func navigateCall(latitude, longitude float64) model.ToolCall {
	args, _ := json.Marshal(navigateArguments{Latitude: latitude, Longitude: longitude})
	return model.ToolCall{
		ID:        uuid.NewString(),
		Name:      tools.NavigateName,
		Arguments: args,
		Origin:    model.OriginTextExtracted,
	}
}

// gazetteerExtractor matches a known place name mentioned alongside a
// wayfinding verb.
type gazetteerExtractor struct {
	places Gazetteer
}

func (e gazetteerExtractor) Extract(text string) (model.ToolCall, bool) {
	lower := strings.ToLower(text)
	if !hasWayfindingVerb(lower) {
		return model.ToolCall{}, false
	}
	for _, name := range e.places.names() {
		if strings.Contains(lower, name) {
			place := e.places[name]
			return navigateCall(place.Latitude, place.Longitude), true
		}
	}
	return model.ToolCall{}, false
}

// coordinatePattern captures the first two numbers in the text,
// separated by anything that is not a digit or minus sign.
var coordinatePattern = regexp.MustCompile(`(-?\d+\.?\d*)[^-\d]*(-?\d+\.?\d*)`)

// coordinatePairExtractor matches an explicit latitude/longitude pair
// under the same wayfinding-verb gate as the gazetteer.
type coordinatePairExtractor struct{}

func (coordinatePairExtractor) Extract(text string) (model.ToolCall, bool) {
	if !hasWayfindingVerb(strings.ToLower(text)) {
		return model.ToolCall{}, false
	}
	match := coordinatePattern.FindStringSubmatch(text)
	if match == nil {
		return model.ToolCall{}, false
	}
	latitude, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return model.ToolCall{}, false
	}
	longitude, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return model.ToolCall{}, false
	}
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return model.ToolCall{}, false
	}
	return navigateCall(latitude, longitude), true
}

// zoomPatterns match only explicit numeric zoom requests, never vague
// phrases like "zoom in".
var zoomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`zoom\s*(?:to\s*)?(\d+)`),
	regexp.MustCompile(`(?:zoom|set)\s+level\s*to?\s*(\d+)`),
}

// zoomPhraseExtractor matches explicit zoom vocabulary. The parsed level
// is passed through as-is; range saturation happens at dispatch.
type zoomPhraseExtractor struct{}

func (zoomPhraseExtractor) Extract(text string) (model.ToolCall, bool) {
	lower := strings.ToLower(text)
	for _, pattern := range zoomPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		level, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		args, _ := json.Marshal(struct {
			ZoomLevel int `json:"zoom_level"`
		}{ZoomLevel: level})
		return model.ToolCall{
			ID:        uuid.NewString(),
			Name:      tools.ZoomName,
			Arguments: args,
			Origin:    model.OriginTextExtracted,
		}, true
	}
	return model.ToolCall{}, false
}

// DefaultExtractors returns the heuristic chain in priority order:
// gazetteer lookup, raw coordinate pair, explicit zoom phrase.
func DefaultExtractors(places Gazetteer) []Extractor {
	return []Extractor{
		gazetteerExtractor{places: places},
		coordinatePairExtractor{},
		zoomPhraseExtractor{},
	}
}
