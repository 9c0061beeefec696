// Package ctxtr carries per-request values through the context, currently
// only the request id used for log correlation.
package ctxtr

import (
	"context"
	"errors"
)

type ctxKey string

const RequestIDKey ctxKey = "request_id"

var ErrRequestIDNotFound = errors.New("request id not found")

func WithRequestID(parent context.Context, id string) context.Context {
	return context.WithValue(parent, RequestIDKey, id)
}

func RequestID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return "", ErrRequestIDNotFound
	}

	return id, nil
}
