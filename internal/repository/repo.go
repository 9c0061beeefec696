package repository

import (
	"context"

	"github.com/evgeniy-krivenko/notes-web/pkg/database"
)

// DB is what the repository needs from pkg/database: plain statements plus
// the transaction bracket. *database.Database satisfies it.
type DB interface {
	database.Tx
	RunInTx(ctx context.Context, f func(context.Context) error) error
}

type Repo struct {
	db DB
}

func New(db DB) *Repo {
	return &Repo{db: db}
}
