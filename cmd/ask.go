package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/springlab/osmu/internal/config"
	"github.com/springlab/osmu/internal/gemini"
	"github.com/springlab/osmu/internal/log"
	"github.com/springlab/osmu/internal/studio"
)

var askCmd = &cobra.Command{
	Use:   "ask [topic]",
	Short: "Generate a content package for a topic and print it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

// runAsk performs one full generation in the foreground and prints the
// resulting artifact. Useful for smoke-testing a key and the prompts
// without starting the server.
func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err = cfg.ValidateAI(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			missingKeyHint()
		}
		return err
	}

	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), JSON: cfg.LogJSON})

	gw, err := gemini.New(ctx, gemini.Config{
		APIKey:      cfg.GeminiAPIKey,
		TextModel:   cfg.TextModel,
		RefineModel: cfg.RefineModel,
		ImageModel:  cfg.ImageModel,
		SceneCount:  cfg.SceneCount,
		RPS:         cfg.ModelRPS,
		Burst:       cfg.ModelBurst,
	}, logger)
	if err != nil {
		return fmt.Errorf("creating model gateway: %w", err)
	}

	st := studio.New(gw, logger)

	topic := strings.Join(args, " ")
	if err := st.Submit(ctx, topic); err != nil {
		return fmt.Errorf("generating content: %w", err)
	}

	snap := st.Snapshot()
	if snap.Current == nil {
		return fmt.Errorf("generation produced no content")
	}
	printContentSummary(cmd, snap)
	return nil
}

func printContentSummary(cmd *cobra.Command, snap studio.Snapshot) {
	c := snap.Current

	cmd.Println("=== Article ===")
	cmd.Println(c.OriginalText)
	cmd.Println()
	cmd.Println("=== Summary ===")
	cmd.Println(c.Summary)
	cmd.Println()
	cmd.Printf("=== Illustration === (%d bytes embedded)\n", len(c.ImageURL))
	cmd.Println()
	cmd.Printf("=== Storyboard === (%d scenes)\n", len(c.Storyboard))
	for i, item := range c.Storyboard {
		cmd.Printf("  %d. %s (%d bytes embedded)\n", i+1, item.Caption, len(item.ImageURL))
	}
	cmd.Println()
	cmd.Printf("=== Landing page === (%d bytes of HTML)\n", len(c.WebHTML))
}
