// Console event rendering for the chat REPL.
//
// Information Hiding:
// - Output formatting hidden

package cli

import (
	"fmt"
	"io"

	"github.com/renswick/atlas/agent"
)

// ConsoleNotifier prints session events in a human-readable form. It is
// the terminal counterpart of the websocket notifier.
type ConsoleNotifier struct {
	w       io.Writer
	verbose bool
}

// NewConsoleNotifier creates a notifier writing to w. Verbose mode also
// prints the model's thinking text when a provider exposes it.
func NewConsoleNotifier(w io.Writer, verbose bool) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, verbose: verbose}
}

// Notify renders one event.
func (n *ConsoleNotifier) Notify(event agent.Event) error {
	switch event.Type {
	case agent.EventToolCall:
		fmt.Fprintf(n.w, "[tool] %s(%s)\n", event.Tool, event.Arguments)
	case agent.EventToolResult:
		fmt.Fprintf(n.w, "[result] %s", event.Content)
		if event.MapState != nil {
			fmt.Fprintf(n.w, " (center: %.4f, %.4f | zoom: %d)",
				event.MapState.Center[0], event.MapState.Center[1], event.MapState.Zoom)
		}
		fmt.Fprintln(n.w)
	case agent.EventLLMResponse:
		if n.verbose && event.Thinking != "" {
			fmt.Fprintf(n.w, "[thinking] %s\n", event.Thinking)
		}
		fmt.Fprintf(n.w, "\n%s\n\n", event.Content)
	case agent.EventSystemMessage:
		fmt.Fprintf(n.w, "[system] %s\n", event.Content)
	}
	return nil
}

var _ agent.Notifier = (*ConsoleNotifier)(nil)
