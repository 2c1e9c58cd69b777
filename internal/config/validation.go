package config

import "fmt"

// Limits for range validation. SceneCount above 8 would fan out too many
// image calls per generation for the free-tier quota.
const (
	maxSceneCount = 8
	maxModelRPS   = 100.0
)

// Validate checks configuration values that every mode depends on.
// The API key is checked separately by ValidateAI because commands that
// never call the model (e.g. version) must still be able to load config.
func (c *Config) Validate() error {
	if c.TextModel == "" {
		return fmt.Errorf("%w: text_model is empty", ErrInvalidModelName)
	}
	if c.RefineModel == "" {
		return fmt.Errorf("%w: refine_model is empty", ErrInvalidModelName)
	}
	if c.ImageModel == "" {
		return fmt.Errorf("%w: image_model is empty", ErrInvalidModelName)
	}
	if c.SceneCount < 0 || c.SceneCount > maxSceneCount {
		return fmt.Errorf("%w: scene_count %d not in [0, %d]",
			ErrInvalidSceneCount, c.SceneCount, maxSceneCount)
	}
	if c.ModelRPS <= 0 || c.ModelRPS > maxModelRPS {
		return fmt.Errorf("%w: model_rps %.2f not in (0, %.0f]",
			ErrInvalidRateLimit, c.ModelRPS, maxModelRPS)
	}
	if c.ModelBurst < 1 {
		return fmt.Errorf("%w: model_burst %d < 1", ErrInvalidRateLimit, c.ModelBurst)
	}
	return nil
}

// ValidateAI checks requirements for modes that call the model service.
func (c *Config) ValidateAI() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
	}
	return nil
}

// ValidateServe checks requirements for the HTTP server mode.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ValidateAI(); err != nil {
		return err
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("%w: http_addr is empty", ErrInvalidAddr)
	}
	return nil
}
