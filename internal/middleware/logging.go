// Package middleware contains the HTTP middleware applied to every
// route: structured request logging (which also drives the request
// metrics) and CORS.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/karim/exercise-tracker/internal/metrics"
)

// responseWriter wraps http.ResponseWriter to capture the status code
// and bytes written — the standard interface doesn't expose either
// after the fact.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logger logs each completed request with slog and, when a collector is
// supplied, records it in the request metrics. Both observations come
// from the same wrapped writer, so the logged status and the counted
// status can never disagree.
func Logger(logger *slog.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK, // default when WriteHeader is never called
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			logger.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", duration),
				slog.Int64("bytes", wrapped.written),
			)
			if collector != nil {
				collector.RecordRequest(r.Method, wrapped.statusCode, duration)
			}
		})
	}
}
