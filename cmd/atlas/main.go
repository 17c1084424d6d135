// Package main provides the atlas CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/renswick/atlas/cli"
)

var (
	// Global flags
	provider   string
	model      string
	maxIter    int
	configPath string
	verbose    bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "atlas",
		Short: "LLM-driven map control",
		Long: `Turns natural-language requests into map navigation.

The model's replies - native function calls, JSON, or plain prose - are
normalized into tool calls that move, zoom, and geocode an interactive map.`,
	}

	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, deepseek, gemini)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model name (provider default if empty)")
	rootCmd.PersistentFlags().IntVarP(&maxIter, "max-iter", "m", 0, "Maximum model/tool rounds per utterance")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./atlas.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(chatCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() cli.Options {
	return cli.Options{
		Provider:   provider,
		Model:      model,
		MaxIter:    maxIter,
		ConfigPath: configPath,
		Verbose:    verbose,
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the websocket endpoint for the map frontend",
		Long: `Serve /ws for the map frontend.

Each connection gets its own session and map state. Inbound frames are
{"type": "chat_message", "content": "..."}; outbound frames are tool_call,
tool_result, llm_response, and system-message events.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Serve(options())
		},
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the map assistant on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Chat(context.Background(), options())
		},
	}
}
