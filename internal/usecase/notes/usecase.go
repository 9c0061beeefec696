// Package notes orchestrates content validation and persistence for the
// note entity. Validation failures never reach the repository.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/evgeniy-krivenko/notes-web/internal/entity"
	"github.com/evgeniy-krivenko/notes-web/internal/schema"
	"github.com/evgeniy-krivenko/notes-web/pkg/logger/slogx"
)

// defaultListLimit caps a list request that arrives without a usable limit.
const defaultListLimit = 100

type notesRepository interface {
	CreateNote(ctx context.Context, content string) (entity.Note, error)
	GetNote(ctx context.Context, id uuid.UUID) (entity.Note, error)
	ListNotes(ctx context.Context, offset, limit int) ([]entity.Note, error)
	CountNotes(ctx context.Context) (int64, error)
	UpdateNote(ctx context.Context, id uuid.UUID, content string) (entity.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) (bool, error)
}

type Usecase struct {
	repo notesRepository
}

func New(repo notesRepository) (*Usecase, error) {
	if repo == nil {
		return nil, errors.New("nil notes repository")
	}

	return &Usecase{repo: repo}, nil
}

func (u *Usecase) CreateNote(ctx context.Context, rawContent string) (entity.Note, error) {
	content, err := schema.ValidateContent(rawContent)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase create note: %w", err)
	}

	note, err := u.repo.CreateNote(ctx, content)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase create note: %w", err)
	}

	slogx.Info(ctx, "success to create note", slogx.NoteID(note.ID))
	return note, nil
}

func (u *Usecase) GetNote(ctx context.Context, id uuid.UUID) (entity.Note, error) {
	note, err := u.repo.GetNote(ctx, id)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase get note: %w", err)
	}

	return note, nil
}

func (u *Usecase) ListNotes(ctx context.Context, offset, limit int) ([]entity.Note, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	notes, err := u.repo.ListNotes(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("usecase list notes: %w", err)
	}

	return notes, nil
}

func (u *Usecase) CountNotes(ctx context.Context) (int64, error) {
	count, err := u.repo.CountNotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("usecase count notes: %w", err)
	}

	return count, nil
}

func (u *Usecase) UpdateNote(ctx context.Context, id uuid.UUID, rawContent string) (entity.Note, error) {
	content, err := schema.ValidateContent(rawContent)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase update note: %w", err)
	}

	note, err := u.repo.UpdateNote(ctx, id, content)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase update note: %w", err)
	}

	slogx.Info(ctx, "success to update note", slogx.NoteID(note.ID))
	return note, nil
}

func (u *Usecase) DeleteNote(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := u.repo.DeleteNote(ctx, id)
	if err != nil {
		return false, fmt.Errorf("usecase delete note: %w", err)
	}

	if deleted {
		slogx.Info(ctx, "success to delete note", slogx.NoteID(id))
	}

	return deleted, nil
}
