package http

import "net/http"

// NotFoundHandler is the catch-all route. It answers with the same JSON
// envelope as every other error so clients never have to special-case a
// plain-text 404.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}
