// Package cmd provides the osmu CLI commands.
//
// Commands:
//   - serve: HTTP API server for the studio with SSE state streaming
//   - ask: one-shot generation printed to the terminal
//   - version: build information
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "osmu",
	Short: "One-source multi-use content studio",
	Long: `osmu turns a single topic into a family of derived artifacts:
a full article, short-form copy, an illustration, a video storyboard
and a landing page fragment, with chat-based refinement on top.

Run "osmu serve" to start the studio API, or "osmu ask" for a
one-shot generation in the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	// A missing .env file is not an error; real environments set
	// GEMINI_API_KEY directly.
	_ = godotenv.Load()

	return rootCmd.Execute()
}
