package ctxtr

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/evgeniy-krivenko/notes-web/pkg/logger/slogx"
)

const requestIDHeader = "X-Request-Id"

// Middleware assigns every request an id, keeping one already supplied by
// the client, and echoes it in the response headers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// LogAttrs extracts the request id as log attributes for slogx middleware.
func LogAttrs(r *http.Request) []slog.Attr {
	id, err := RequestID(r.Context())
	if err != nil {
		return nil
	}

	return []slog.Attr{slogx.RequestID(id)}
}
