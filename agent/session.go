package agent

import (
	"github.com/google/uuid"

	"github.com/renswick/atlas/geocode"
	"github.com/renswick/atlas/llm"
	"github.com/renswick/atlas/tools"
	"github.com/renswick/atlas/world"
)

// Session is one conversation with its own private world state. Turns are
// append-only; Terminal flips when a model turn carries no tool calls or
// the iteration cap is hit, and a fresh user utterance clears it.
type Session struct {
	ID         uuid.UUID
	Turns      []llm.ChatMessage
	Iterations int
	Terminal   bool
	Dispatcher *tools.Dispatcher
}

// NewSession creates a session with a fresh world view and the map tools
// registered against it. Sessions never share world state.
func NewSession(center [2]float64, zoom int, geocoder geocode.Client) *Session {
	return &Session{
		ID:         uuid.New(),
		Dispatcher: tools.NewMapDispatcher(world.New(center, zoom), geocoder),
	}
}

// World returns a value copy of the session's current map view.
func (s *Session) World() world.Snapshot {
	return s.Dispatcher.World()
}

// append adds a turn to the session's history.
func (s *Session) append(turn llm.ChatMessage) {
	s.Turns = append(s.Turns, turn)
}
