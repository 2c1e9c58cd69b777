package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	genai "google.golang.org/genai"

	"github.com/springlab/osmu/internal/artifact"
	"github.com/springlab/osmu/internal/log"
)

// ErrMissingAPIKey indicates the client was constructed without credentials.
var ErrMissingAPIKey = errors.New("gemini: missing API key")

// Config contains all required parameters for the gateway client.
type Config struct {
	APIKey      string
	TextModel   string  // article, summary, web code, scene planning
	RefineModel string  // refinement edits
	ImageModel  string  // illustration and storyboard frames
	SceneCount  int     // scenes requested per storyboard plan
	RPS         float64 // model calls per second (0 = no limiting)
	Burst       int     // limiter burst (ignored when RPS is 0)

	// RetryConfig controls backoff for transient failures
	// (zero-value uses defaults).
	Retry RetryConfig
}

// Client is the model gateway. It is safe for concurrent use; the
// underlying genai client is goroutine-safe and all other state is
// read-only after construction.
type Client struct {
	cli         *genai.Client
	textModel   string
	refineModel string
	imageModel  string
	sceneCount  int
	limiter     *rate.Limiter
	retry       RetryConfig
	logger      log.Logger
}

// New creates a gateway client. The context is only used for client
// construction, not stored.
func New(ctx context.Context, cfg Config, logger log.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = log.NewNop()
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	retryCfg := cfg.Retry
	if retryCfg.MaxRetries == 0 && retryCfg.InitialInterval == 0 {
		retryCfg = DefaultRetryConfig()
	}

	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	sceneCount := cfg.SceneCount
	if sceneCount < 0 {
		sceneCount = 0
	}

	return &Client{
		cli:         cli,
		textModel:   cfg.TextModel,
		refineModel: cfg.RefineModel,
		imageModel:  cfg.ImageModel,
		sceneCount:  sceneCount,
		limiter:     limiter,
		retry:       retryCfg,
		logger:      logger,
	}, nil
}

// GenerateArticle writes a full-form Korean article for the topic.
// Empty model output yields a fixed fallback string, not an error.
func (c *Client) GenerateArticle(ctx context.Context, topic string) (string, error) {
	resp, err := c.generate(ctx, "article", c.textModel, articlePrompt(topic), nil)
	if err != nil {
		return "", err
	}
	return textOr(resp, fallbackArticle), nil
}

// GenerateSummary condenses text into short-form copy.
func (c *Client) GenerateSummary(ctx context.Context, text string) (string, error) {
	resp, err := c.generate(ctx, "summary", c.textModel, summaryPrompt(text), nil)
	if err != nil {
		return "", err
	}
	return textOr(resp, fallbackSummary), nil
}

// GenerateWebCode renders text as a self-contained HTML fragment
// (no document or body wrapper) suitable for direct embedding.
func (c *Client) GenerateWebCode(ctx context.Context, text string) (string, error) {
	resp, err := c.generate(ctx, "web", c.textModel, webPrompt(text), nil)
	if err != nil {
		return "", err
	}
	return textOr(resp, fallbackWeb), nil
}

// RefineContent edits original per the free-text instruction. The kind
// selects prompt framing only. On empty model output the original is
// returned unchanged so a degenerate edit can never corrupt content.
func (c *Client) RefineContent(ctx context.Context, original, instruction string, kind artifact.RefineKind) (string, error) {
	prompt := refinePrompt(string(kind), original, instruction)
	resp, err := c.generate(ctx, "refine", c.refineModel, prompt, nil)
	if err != nil {
		return "", err
	}
	return textOr(resp, original), nil
}

// textOr extracts the concatenated text parts of the first candidate,
// or returns fallback when the response carries no usable text.
func textOr(resp *genai.GenerateContentResponse, fallback string) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fallback
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return fallback
	}
	return b.String()
}
