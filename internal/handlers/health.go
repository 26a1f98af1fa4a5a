package handlers

import "net/http"

// Healthz is the public liveness probe. It runs before any auth gate.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
