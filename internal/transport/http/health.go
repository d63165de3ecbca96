package http

import "net/http"

// HealthHandler reports process liveness. It deliberately does not touch the
// database; readiness of the store shows up as 503s on the booking routes.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
