package tools

import (
	"context"

	"github.com/renswick/atlas/world"
)

// NavigateName is the wire name of the navigation tool.
const NavigateName = "navigate_to_location"

// NavigateTool moves the map center to explicit coordinates.
type NavigateTool struct {
	state *world.State
}

// NewNavigateTool creates the navigation tool bound to a session's world.
func NewNavigateTool(state *world.State) *NavigateTool {
	return &NavigateTool{state: state}
}

// Spec returns the tool schema.
func (t *NavigateTool) Spec() Spec {
	return Spec{
		Name:        NavigateName,
		Description: "Navigate the map to a specific latitude and longitude",
		Params: []Param{
			{Name: "latitude", Type: "number", Description: "Latitude coordinate (-90 to 90)", Required: true},
			{Name: "longitude", Type: "number", Description: "Longitude coordinate (-180 to 180)", Required: true},
		},
	}
}

type navigateArgs struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

// Execute overwrites the map center. The ranges advertised in the schema
// are not re-checked here; the map view accepts any finite pair.
func (t *NavigateTool) Execute(ctx context.Context, args map[string]any) Result {
	var a navigateArgs
	if err := decodeArgs(args, &a); err != nil {
		return errorResult(NavigateName, t.state.Snapshot(), "%v", err)
	}

	t.state.SetCenter(a.Longitude, a.Latitude)

	return Result{
		Tool:    NavigateName,
		Status:  StatusOK,
		Message: "Map navigated to coordinates: " + formatCoords(a.Latitude, a.Longitude),
		State:   t.state.Snapshot(),
	}
}

var _ Tool = (*NavigateTool)(nil)
