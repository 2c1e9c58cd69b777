package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/springlab/osmu/internal/api"
	"github.com/springlab/osmu/internal/config"
	"github.com/springlab/osmu/internal/gemini"
	"github.com/springlab/osmu/internal/log"
	"github.com/springlab/osmu/internal/studio"
)

// Server timeout configuration.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 2 * time.Minute // SSE streaming needs longer timeout
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the studio HTTP API server",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (host:port, overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// runServe initializes the studio and starts the HTTP API server.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}
	if err = cfg.ValidateServe(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			missingKeyHint()
		}
		return fmt.Errorf("validating config: %w", err)
	}
	if err = validateAddr(cfg.HTTPAddr); err != nil {
		return fmt.Errorf("invalid address %q: %w", cfg.HTTPAddr, err)
	}

	logger := log.New(log.Config{
		Level: log.ParseLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})
	logger.Info("starting studio API server", "version", AppVersion)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

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

	apiServer, err := api.NewServer(ctx, api.ServerConfig{
		Logger:      logger,
		Studio:      st,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		RateBurst:   cfg.RateBurst,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	logger.Info("HTTP server ready",
		"addr", cfg.HTTPAddr,
		"api", "/api/v1/*",
		"health", "/healthz, /readyz",
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server: %w", err)
	}
}

// missingKeyHint prints setup guidance when the API key is absent.
func missingKeyHint() {
	fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable not set")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "To set your API key:")
	fmt.Fprintln(os.Stderr, "  export GEMINI_API_KEY=your-api-key")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Get your API key at: https://ai.google.dev/")
}
