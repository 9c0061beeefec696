package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingMiddleware logs the start and finish of every request through the
// global logger. Extractors contribute extra attributes, e.g. a request id.
func LoggingMiddleware(extractors ...func(*http.Request) []slog.Attr) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := Default()

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			}
			for _, ex := range extractors {
				attrs = append(attrs, ex(r)...)
			}

			logger.Info(r.Context(), "start handling request", attrs...)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			attrs = append(attrs,
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
			)

			if sw.status >= http.StatusInternalServerError {
				logger.Error(r.Context(), "finish with error", attrs...)
			} else {
				logger.Info(r.Context(), "finish success", attrs...)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
