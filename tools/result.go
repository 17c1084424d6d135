package tools

import (
	"encoding/json"
	"fmt"

	"github.com/renswick/atlas/world"
)

// Status reports whether a dispatched call succeeded.
type Status int

const (
	StatusOK Status = iota
	StatusError
)

// String returns the wire name of the status.
func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "error"
}

// MarshalJSON encodes the status as its wire name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Coordinates carries the extra fields a geocode result surfaces.
type Coordinates struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Confidence       float64 `json:"confidence"`
	FormattedAddress string  `json:"formatted_address"`
}

// Result is the outcome of executing one tool call. State is always a value
// copy; callers never hold a live reference into the session's world.
type Result struct {
	Tool        string         `json:"tool"`
	Status      Status         `json:"status"`
	Message     string         `json:"message"`
	State       world.Snapshot `json:"map_state"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
}

// OK returns true if the call succeeded.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// errorResult builds a failed result carrying the current (unmutated) view.
func errorResult(tool string, snap world.Snapshot, format string, args ...any) Result {
	return Result{
		Tool:    tool,
		Status:  StatusError,
		Message: fmt.Sprintf(format, args...),
		State:   snap,
	}
}
