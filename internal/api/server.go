package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/springlab/osmu/internal/studio"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Studio      *studio.Studio // Required
	CORSOrigins []string       // Allowed origins for CORS
	TrustProxy  bool           // Trust X-Real-IP/X-Forwarded-For headers (behind reverse proxy)
	RateBurst   int            // Rate limiter burst size per IP (0 = default 60)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
// ctx bounds detached generation runs and open SSE streams; cancel it
// on shutdown so in-flight pipelines and subscribers wind down.
func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	if cfg.Studio == nil {
		return nil, errors.New("studio is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sh := &studioHandler{
		studio:  cfg.Studio,
		logger:  logger,
		baseCtx: ctx,
	}

	mux := http.NewServeMux()

	// State
	mux.HandleFunc("GET /api/v1/state", sh.getState)
	mux.HandleFunc("GET /api/v1/state/stream", sh.streamState)

	// Messages
	mux.HandleFunc("POST /api/v1/messages", sh.submit)

	// Project lifecycle
	mux.HandleFunc("POST /api/v1/project", sh.newProject)

	// History
	mux.HandleFunc("GET /api/v1/history", sh.getHistory)
	mux.HandleFunc("POST /api/v1/history/{id}/open", sh.openHistory)

	// Rate limiter: per-IP token bucket (1 token/sec refill)
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → CORS → RateLimit → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Use a top-level mux to separate health probes from middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /healthz", health)
	topMux.HandleFunc("GET /readyz", ready)
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
