// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.osmu/config.yaml, or ./config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// Main configuration categories:
//   - AI: text/refine/image model selection, scene count, call rate limit
//   - Server: listen address, CORS origins, proxy trust, per-IP rate burst
//   - Logging: level and format
//
// Security: the Gemini API key is only ever read from the environment and
// is never logged.
//
// Error Handling:
//   - Uses sentinel errors for Go-idiomatic error checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrMissingAPIKey indicates the Gemini API key is not set.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates a model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidSceneCount indicates the storyboard scene count is out of range.
	ErrInvalidSceneCount = errors.New("invalid scene count")

	// ErrInvalidRateLimit indicates the model call rate limit is out of range.
	ErrInvalidRateLimit = errors.New("invalid rate limit")

	// ErrInvalidAddr indicates the HTTP listen address is empty.
	ErrInvalidAddr = errors.New("invalid listen address")
)

// Default model assignments. The refine model is a stronger tier because
// edits must follow free-form instructions against long originals.
const (
	DefaultTextModel   = "gemini-3-flash-preview"
	DefaultRefineModel = "gemini-3-pro-preview"
	DefaultImageModel  = "gemini-2.5-flash-image"

	// DefaultSceneCount is the number of storyboard scenes requested
	// from the scene planner.
	DefaultSceneCount = 3
)

// Config holds all application configuration.
// Field names map to config file keys via mapstructure tags.
type Config struct {
	// AI
	GeminiAPIKey string  `mapstructure:"gemini_api_key"`
	TextModel    string  `mapstructure:"text_model"`
	RefineModel  string  `mapstructure:"refine_model"`
	ImageModel   string  `mapstructure:"image_model"`
	SceneCount   int     `mapstructure:"scene_count"`
	ModelRPS     float64 `mapstructure:"model_rps"` // model calls per second
	ModelBurst   int     `mapstructure:"model_burst"`

	// Server
	HTTPAddr    string   `mapstructure:"http_addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	TrustProxy  bool     `mapstructure:"trust_proxy"`
	RateBurst   int      `mapstructure:"rate_burst"` // per-IP API rate burst

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`
}

// Load reads configuration from file, environment, and defaults.
// Validation runs immediately so callers fail fast on bad config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".osmu")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// AI defaults
	v.SetDefault("text_model", DefaultTextModel)
	v.SetDefault("refine_model", DefaultRefineModel)
	v.SetDefault("image_model", DefaultImageModel)
	v.SetDefault("scene_count", DefaultSceneCount)
	v.SetDefault("model_rps", 1.0)
	v.SetDefault("model_burst", 4)

	// Server defaults
	v.SetDefault("http_addr", "127.0.0.1:8787")
	v.SetDefault("cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("trust_proxy", false)
	v.SetDefault("rate_burst", 60)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// bindEnvVariables binds environment variables explicitly.
// The API key is a secret and is only ever read from the environment,
// never from the config file.
func bindEnvVariables(v *viper.Viper) {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail).
	// If this panics, it's a BUG in our code, not a runtime error.
	mustBind := func(key string, envVars ...string) {
		args := append([]string{key}, envVars...)
		if err := v.BindEnv(args...); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q: %v", key, err))
		}
	}

	mustBind("gemini_api_key", "GEMINI_API_KEY", "OSMU_GEMINI_API_KEY")
	mustBind("http_addr", "OSMU_HTTP_ADDR")
	mustBind("cors_origins", "OSMU_CORS_ORIGINS")
	mustBind("trust_proxy", "OSMU_TRUST_PROXY")
	mustBind("rate_burst", "OSMU_RATE_BURST")
	mustBind("log_level", "OSMU_LOG_LEVEL")
}
