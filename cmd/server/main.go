package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/evgeniy-krivenko/notes-web/internal/config"
	"github.com/evgeniy-krivenko/notes-web/internal/ctxtr"
	"github.com/evgeniy-krivenko/notes-web/internal/repository"
	"github.com/evgeniy-krivenko/notes-web/internal/usecase/notes"
	"github.com/evgeniy-krivenko/notes-web/internal/web"
	"github.com/evgeniy-krivenko/notes-web/migrations"
	"github.com/evgeniy-krivenko/notes-web/pkg/database"
	"github.com/evgeniy-krivenko/notes-web/pkg/httpx"
	"github.com/evgeniy-krivenko/notes-web/pkg/logger/slogx"
)

const dbRetryAttempts = 5

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	if err := slogx.InitGlobal(os.Stderr, cfg.App.LogLevel, cfg.App.Pretty); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	dbOpts := database.Options{
		Address:       cfg.Database.Addr(),
		Username:      cfg.Database.User,
		Password:      cfg.Database.Password,
		Database:      cfg.Database.Name,
		MinConns:      cfg.Database.PoolMin,
		MaxConns:      cfg.Database.PoolMax,
		RetryAttempts: dbRetryAttempts,
		Logger:        slogx.Default(),
	}

	pool, err := database.NewPGX(ctx, dbOpts)
	if err != nil {
		return fmt.Errorf("connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, dbOpts, migrations.FS); err != nil {
		return fmt.Errorf("run migrations: %v", err)
	}

	repo := repository.New(database.NewDatabase(pool))

	notesUsecase, err := notes.New(repo)
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	renderer, err := web.NewRenderer(cfg.HTTP.TemplatesDir)
	if err != nil {
		return fmt.Errorf("init renderer: %v", err)
	}

	handler := web.NewHandler(renderer, notesUsecase, cfg.HTTP.StaticDir, cfg.App.Debug)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv, err := httpx.New(httpx.Options{
		Addr:    cfg.HTTP.Addr,
		Handler: mux,
		Middlewares: []func(http.Handler) http.Handler{
			slogx.LoggingMiddleware(ctxtr.LogAttrs),
			ctxtr.Middleware,
		},
		Logger: slogx.Default(),
	})
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return srv.Run(ctx) })

	if cfg.App.Debug {
		eg.Go(func() error { return renderer.Watch(ctx) })
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	return nil
}
