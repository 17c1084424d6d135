// Command execution for CLI commands.
//
// Information Hiding:
// - Provider and orchestrator setup hidden
// - Settings/flag precedence hidden

package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/renswick/atlas/agent"
	"github.com/renswick/atlas/config"
	"github.com/renswick/atlas/geocode"
	"github.com/renswick/atlas/llm"
	"github.com/renswick/atlas/logging"
	"github.com/renswick/atlas/parser"
	"github.com/renswick/atlas/transport"
)

// Options holds CLI execution options. Flags override config-file and
// environment values.
type Options struct {
	Provider   string
	Model      string
	MaxIter    int
	ConfigPath string
	Verbose    bool
}

// buildSettings loads configuration and applies flag overrides.
func buildSettings(opts Options) (config.Settings, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Settings{}, err
	}
	if opts.Provider != "" {
		settings.Provider = opts.Provider
	}
	if opts.Model != "" {
		settings.Model = opts.Model
	}
	if opts.MaxIter > 0 {
		settings.MaxIterations = opts.MaxIter
	}
	return settings, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(os.Stderr, level)
}

func createProvider(settings config.Settings) (llm.Provider, error) {
	return llm.NewProvider(settings.Provider, llm.Options{
		Model:       settings.Model,
		BaseURL:     settings.BaseURL,
		APIKey:      settings.APIKey,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	})
}

// Serve runs the websocket server until the process is stopped.
func Serve(opts Options) error {
	settings, err := buildSettings(opts)
	if err != nil {
		return err
	}

	provider, err := createProvider(settings)
	if err != nil {
		return err
	}

	logger := newLogger(opts.Verbose)
	geocoder := geocode.NewArcGIS(settings.Geocode.BaseURL, settings.Geocode.Timeout)
	server := transport.NewServer(settings, provider, geocoder, logger)

	fmt.Printf("Serving on %s (provider: %s, model: %s)\n",
		settings.Listen, provider.Name(), provider.Model())
	return server.ListenAndServe()
}

// Chat runs an interactive session against one in-process world.
func Chat(ctx context.Context, opts Options) error {
	settings, err := buildSettings(opts)
	if err != nil {
		return err
	}

	provider, err := createProvider(settings)
	if err != nil {
		return err
	}

	logger := newLogger(opts.Verbose)
	geocoder := geocode.NewArcGIS(settings.Geocode.BaseURL, settings.Geocode.Timeout)
	session := agent.NewSession(settings.Center(), settings.Map.Zoom, geocoder)
	notifier := NewConsoleNotifier(os.Stdout, opts.Verbose)
	orchestrator := agent.NewOrchestrator(provider, parser.New(), notifier,
		logging.ForComponent(logger, "agent")).
		WithMaxIterations(settings.MaxIterations)

	fmt.Printf("Map assistant (%s, %s). Type 'exit' to quit.\n\n",
		provider.Name(), provider.Model())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		if err := orchestrator.Run(ctx, session, input); err != nil {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		}
	}

	return scanner.Err()
}
