// Package world holds the mutable map view state.
//
// Each session owns its own State; only tool handlers write it, and every
// reader gets a value Snapshot, never a live reference. Cross-session
// sharing of a single State is deliberately not supported.
package world

// Zoom bounds of the map view. Writes outside this range saturate.
const (
	MinZoom = 0
	MaxZoom = 20
)

// Snapshot is a value copy of the map view at one point in time.
// Center is ordered (longitude, latitude), matching the map frontend.
type Snapshot struct {
	Center [2]float64 `json:"center"`
	Zoom   int        `json:"zoom"`
}

// State is the mutable map view of one session.
type State struct {
	center [2]float64
	zoom   int
}

// New creates a State with the given center (longitude, latitude) and zoom.
// The initial zoom is clamped like any later write.
func New(center [2]float64, zoom int) *State {
	return &State{center: center, zoom: ClampZoom(zoom)}
}

// Snapshot returns a value copy of the current view.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Center: s.center, Zoom: s.zoom}
}

// SetCenter moves the view center to (longitude, latitude).
func (s *State) SetCenter(longitude, latitude float64) {
	s.center = [2]float64{longitude, latitude}
}

// SetZoom stores the zoom level, saturating to [MinZoom, MaxZoom].
// Out-of-range input is never an error.
func (s *State) SetZoom(level int) {
	s.zoom = ClampZoom(level)
}

// ClampZoom saturates a zoom level to the supported range.
func ClampZoom(level int) int {
	if level < MinZoom {
		return MinZoom
	}
	if level > MaxZoom {
		return MaxZoom
	}
	return level
}
