// Tool dispatcher: registry plus validation plus execution.
//
// Information Hiding:
// - Tool storage and lookup hidden
// - The session's world state is owned here; consumers only see snapshots

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/renswick/atlas/geocode"
	"github.com/renswick/atlas/model"
	"github.com/renswick/atlas/world"
)

// Dispatcher holds one session's registered tools and its world state.
// A tool call that fails validation never reaches a handler, so a world
// mutation happens exactly once per successfully validated call.
type Dispatcher struct {
	mu    sync.RWMutex
	state *world.State
	tools map[string]Tool
	order []string // registration order, used for stable catalogues
}

// NewDispatcher creates an empty dispatcher owning the given world state.
func NewDispatcher(state *world.State) *Dispatcher {
	return &Dispatcher{
		state: state,
		tools: make(map[string]Tool),
	}
}

// NewMapDispatcher creates a dispatcher with the three map tools registered.
func NewMapDispatcher(state *world.State, geocoder geocode.Client) *Dispatcher {
	d := NewDispatcher(state)
	for _, t := range []Tool{
		NewNavigateTool(state),
		NewZoomTool(state),
		NewGeocodeTool(state, geocoder),
	} {
		// Names are distinct constants; duplicate registration cannot happen here.
		_ = d.Register(t)
	}
	return d
}

// Register adds a tool. Returns an error if the name is already taken.
func (d *Dispatcher) Register(tool Tool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := tool.Spec().Name
	if _, exists := d.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	d.tools[name] = tool
	d.order = append(d.order, name)
	return nil
}

// Get returns a tool by name.
func (d *Dispatcher) Get(name string) (Tool, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tool, exists := d.tools[name]
	return tool, exists
}

// Specs returns the specs of all registered tools in registration order.
func (d *Dispatcher) Specs() []Spec {
	d.mu.RLock()
	defer d.mu.RUnlock()

	specs := make([]Spec, 0, len(d.order))
	for _, name := range d.order {
		specs = append(specs, d.tools[name].Spec())
	}
	return specs
}

// World returns a value copy of the current world state.
func (d *Dispatcher) World() world.Snapshot {
	return d.state.Snapshot()
}

// Dispatch validates and executes one tool call.
//
// An unknown name or a schema violation produces an error result before any
// handler runs; the world is never partially mutated. Errors are results,
// not Go errors: a failed call in a multi-call turn must not stop the turn.
func (d *Dispatcher) Dispatch(ctx context.Context, call model.ToolCall) Result {
	tool, exists := d.Get(call.Name)
	if !exists {
		return errorResult(call.Name, d.World(), "unknown tool: %s", call.Name)
	}

	args := make(map[string]any)
	if len(call.Arguments) > 0 {
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return errorResult(call.Name, d.World(), "invalid arguments for %s: %v", call.Name, err)
		}
	}

	for _, p := range tool.Spec().Params {
		if p.Required {
			if _, present := args[p.Name]; !present {
				return errorResult(call.Name, d.World(), "missing required argument %q for %s", p.Name, call.Name)
			}
		}
	}

	return tool.Execute(ctx, args)
}
