package http

import (
	"log"
	"net/http"
	"time"
)

// RequestLogger logs method, path, caller identity, status and latency for
// every request. The caller field is what ties a log line to an owner or
// renter when tracing a disputed booking.
func RequestLogger(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		caller := r.Header.Get(callerHeader)
		if caller == "" {
			caller = "-"
		}
		logger.Printf(
			"request method=%s path=%s caller=%s status=%d duration=%s",
			r.Method,
			r.URL.Path,
			caller,
			rec.status,
			time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
