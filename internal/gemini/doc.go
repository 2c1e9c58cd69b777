// Package gemini is the model gateway: a thin wrapper around the
// official google.golang.org/genai client exposing one operation per
// studio capability (article, summary, illustration, web code,
// refinement, scene planning).
//
// The wrapper only concerns itself with the API calls. It applies a
// shared proactive rate limiter and a retry-with-backoff policy to
// every call, and converts degenerate model output (empty text, no
// image payload, malformed scene JSON) into documented fallback values
// rather than errors. Transport and auth failures are returned as
// errors and left for the orchestrator to handle.
package gemini
