package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNoteNotFound = errors.New("note not found")

type Note struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
