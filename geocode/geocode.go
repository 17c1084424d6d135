// Package geocode resolves free-text addresses to coordinates.
//
// The provider returns a ranked candidate list; the adapter surfaces only
// the top-ranked candidate. Disambiguation is the caller's problem, and in
// practice never happens: one lookup, one answer.
package geocode

import (
	"context"
	"errors"
)

// Candidate is the best match the provider found for an address.
type Candidate struct {
	Latitude  float64
	Longitude float64
	// Score is the provider's confidence, 0-100.
	Score float64
	// Address is the provider's canonical formatted address.
	Address string
}

// Client resolves an address to its top-ranked candidate.
type Client interface {
	Lookup(ctx context.Context, address string) (Candidate, error)
}

// ErrNoCandidates is returned when the provider finds no match at all.
var ErrNoCandidates = errors.New("no candidates for address")
