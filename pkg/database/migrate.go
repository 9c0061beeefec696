package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending goose migrations from fsys. It opens its own
// database/sql connection via the pgx stdlib driver and closes it when done.
func Migrate(ctx context.Context, opts Options, fsys fs.FS) error {
	if err := opts.validate(); err != nil {
		return fmt.Errorf("validate options for migrate: %v", err)
	}

	db, err := sql.Open("pgx", opts.dsn())
	if err != nil {
		return fmt.Errorf("open database for migrate: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %v", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %v", err)
	}

	return nil
}
