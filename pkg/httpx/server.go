// Package httpx wraps http.Server with middleware wiring and graceful
// shutdown tied to the context.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 3 * time.Second
)

type Logger interface {
	Info(context.Context, string, ...slog.Attr)
}

type Options struct {
	Addr    string
	Handler http.Handler

	// Middlewares are applied in order, the last one ends up outermost.
	Middlewares []func(http.Handler) http.Handler
	Logger      Logger
}

type Server struct {
	Options
	srv *http.Server
}

func New(opts Options) (*Server, error) {
	if opts.Addr == "" {
		return nil, errors.New("validate http server opts: addr is required")
	}
	if opts.Handler == nil {
		return nil, errors.New("validate http server opts: handler is required")
	}

	handler := opts.Handler
	for _, md := range opts.Middlewares {
		handler = md(handler)
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &Server{Options: opts, srv: srv}, nil
}

func (s *Server) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return s.srv.Shutdown(ctx)
	})

	eg.Go(func() error {
		if s.Logger != nil {
			s.Logger.Info(ctx, "listen and serve", slog.String("addr", s.Addr))
		}

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %v", err)
		}

		return nil
	})

	return eg.Wait()
}
