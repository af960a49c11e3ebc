package middleware

import (
	"net/http"
	"time"

	"github.com/davidbz/quill/internal/observability"
)

const unmatchedRoute = "unmatched"

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Metrics records request count and latency per route pattern.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			elapsed := time.Since(start)
			observability.RecordHTTPRequest(r.Method, route, recorder.status, elapsed)

			observability.FromContext(r.Context()).Info("request completed",
				observability.String("route", route),
				observability.Int("status", recorder.status),
				observability.Duration("elapsed", elapsed),
			)
		})
	}
}
