package api

import "net/http"

// health is a simple liveness endpoint for container probes.
func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ready reports readiness. The studio has no external dependencies to
// probe beyond the model service, which is only exercised on demand, so
// readiness currently equals liveness.
func ready(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
