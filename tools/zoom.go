package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/renswick/atlas/world"
)

// ZoomName is the wire name of the zoom tool.
const ZoomName = "zoom_to_level"

// ZoomTool sets the map zoom level, saturating out-of-range requests.
type ZoomTool struct {
	state *world.State
}

// NewZoomTool creates the zoom tool bound to a session's world.
func NewZoomTool(state *world.State) *ZoomTool {
	return &ZoomTool{state: state}
}

// Spec returns the tool schema.
func (t *ZoomTool) Spec() Spec {
	return Spec{
		Name:        ZoomName,
		Description: "Zoom the map to a specific level",
		Params: []Param{
			{Name: "zoom_level", Type: "integer", Description: "Zoom level (0-20, where 0 is most zoomed out)", Required: true},
		},
	}
}

type zoomArgs struct {
	ZoomLevel int `mapstructure:"zoom_level"`
}

// Execute stores the clamped level. Out-of-range input saturates silently;
// the message echoes the requested level, the snapshot shows the stored one.
func (t *ZoomTool) Execute(ctx context.Context, args map[string]any) Result {
	var a zoomArgs
	if err := decodeArgs(args, &a); err != nil {
		return errorResult(ZoomName, t.state.Snapshot(), "%v", err)
	}

	t.state.SetZoom(a.ZoomLevel)

	return Result{
		Tool:    ZoomName,
		Status:  StatusOK,
		Message: fmt.Sprintf("Map zoomed to level: %d", a.ZoomLevel),
		State:   t.state.Snapshot(),
	}
}

// formatCoords renders a lat/lon pair without trailing zero noise.
func formatCoords(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lon, 'f', -1, 64)
}

var _ Tool = (*ZoomTool)(nil)
