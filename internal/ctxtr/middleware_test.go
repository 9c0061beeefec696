package ctxtr

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := RequestID(r.Context())
		require.NoError(t, err)
		got = id
	})

	resp := httptest.NewRecorder()
	Middleware(next).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, got)
	assert.Equal(t, got, resp.Header().Get("X-Request-Id"))
}

func TestMiddleware_KeepsClientRequestID(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = RequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")

	resp := httptest.NewRecorder()
	Middleware(next).ServeHTTP(resp, req)

	assert.Equal(t, "abc-123", got)
	assert.Equal(t, "abc-123", resp.Header().Get("X-Request-Id"))
}

func TestRequestID_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := RequestID(req.Context())
	require.ErrorIs(t, err, ErrRequestIDNotFound)

	assert.Empty(t, LogAttrs(req))
}
