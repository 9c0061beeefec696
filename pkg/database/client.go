package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Logger interface {
	Warn(context.Context, string, ...slog.Attr)
}

type Options struct {
	Address  string
	Username string
	Password string
	Database string

	MinConns int32
	MaxConns int32

	// RetryAttempts bounds the startup ping. Zero means a single attempt.
	RetryAttempts uint

	Logger Logger
}

func (o Options) validate() error {
	if o.Address == "" {
		return errors.New("address is required")
	}
	if o.Username == "" {
		return errors.New("username is required")
	}
	if o.Database == "" {
		return errors.New("database name is required")
	}

	return nil
}

func (o Options) dsn() string {
	ds := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(o.Username, o.Password),
		Host:   o.Address,
		Path:   o.Database,
	}

	return ds.String()
}

func NewPGX(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("validate options for pgx: %v", err)
	}

	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}

	cfg, err := pgxpool.ParseConfig(opts.dsn())
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %v", err)
	}

	cfg.MinConns = opts.MinConns
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open new pgx pool: %v", err)
	}

	attempts := opts.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	if err := retry.Do(
		func() error { return pool.Ping(ctx) },
		retry.Delay(time.Millisecond*300),
		retry.Attempts(attempts),
		retry.OnRetry(func(attempt uint, err error) {
			log.Warn(
				ctx,
				"failed ping to database",
				slog.Any("err", err),
				slog.Uint64("attempt", uint64(attempt)),
			)
		}),
	); err != nil {
		return nil, fmt.Errorf("ping to database: %v", err)
	}

	return pool, nil
}

type noopLogger struct{}

func (n noopLogger) Warn(context.Context, string, ...slog.Attr) {}
