package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/renswick/atlas/geocode"
	"github.com/renswick/atlas/world"
)

// GeocodeName is the wire name of the geocoding tool.
const GeocodeName = "geocode_address"

// geocodedZoom is the level applied after a successful geocode so the view
// lands at street scale.
const geocodedZoom = 15

// GeocodeTool resolves an address and navigates there in one call.
type GeocodeTool struct {
	state  *world.State
	client geocode.Client
}

// NewGeocodeTool creates the geocoding tool bound to a session's world.
func NewGeocodeTool(state *world.State, client geocode.Client) *GeocodeTool {
	return &GeocodeTool{state: state, client: client}
}

// Spec returns the tool schema.
func (t *GeocodeTool) Spec() Spec {
	return Spec{
		Name:        GeocodeName,
		Description: "Convert a textual address to coordinates and navigate the map there",
		Params: []Param{
			{Name: "address", Type: "string", Description: "Free-text address or place name to resolve", Required: true},
		},
	}
}

type geocodeArgs struct {
	Address string `mapstructure:"address"`
}

// Execute resolves the address, then navigates as a convenience chain.
// On any provider failure the world stays untouched.
func (t *GeocodeTool) Execute(ctx context.Context, args map[string]any) Result {
	var a geocodeArgs
	if err := decodeArgs(args, &a); err != nil {
		return errorResult(GeocodeName, t.state.Snapshot(), "%v", err)
	}
	if strings.TrimSpace(a.Address) == "" {
		return errorResult(GeocodeName, t.state.Snapshot(), "address cannot be empty")
	}

	candidate, err := t.client.Lookup(ctx, a.Address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoCandidates) {
			return errorResult(GeocodeName, t.state.Snapshot(), "No location found for address: %s", a.Address)
		}
		return errorResult(GeocodeName, t.state.Snapshot(), "geocoding %q failed: %v", a.Address, err)
	}

	t.state.SetCenter(candidate.Longitude, candidate.Latitude)
	t.state.SetZoom(geocodedZoom)

	resolved := candidate.Address
	if resolved == "" {
		resolved = formatCoords(candidate.Latitude, candidate.Longitude)
	}

	return Result{
		Tool:    GeocodeName,
		Status:  StatusOK,
		Message: fmt.Sprintf("Geocoded %q and navigated to: %s (confidence: %.0f%%)", a.Address, resolved, candidate.Score),
		State:   t.state.Snapshot(),
		Coordinates: &Coordinates{
			Latitude:         candidate.Latitude,
			Longitude:        candidate.Longitude,
			Confidence:       candidate.Score,
			FormattedAddress: candidate.Address,
		},
	}
}

var _ Tool = (*GeocodeTool)(nil)
