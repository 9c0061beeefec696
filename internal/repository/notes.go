package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/evgeniy-krivenko/notes-web/internal/entity"
	"github.com/evgeniy-krivenko/notes-web/pkg/logger/slogx"
)

const (
	createNoteSQL = `INSERT INTO notes (id, content) VALUES ($1, $2)
		RETURNING id, content, created_at, updated_at`

	getNoteSQL = `SELECT id, content, created_at, updated_at FROM notes WHERE id = $1`

	// Newest first, id as tie-breaker so pagination stays deterministic.
	listNotesSQL = `SELECT id, content, created_at, updated_at FROM notes
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`

	countNotesSQL = `SELECT count(*) FROM notes`

	updateNoteSQL = `UPDATE notes SET content = $2, updated_at = now() WHERE id = $1
		RETURNING id, content, created_at, updated_at`

	deleteNoteSQL = `DELETE FROM notes WHERE id = $1`
)

func (r *Repo) CreateNote(ctx context.Context, content string) (entity.Note, error) {
	var note entity.Note

	err := r.db.RunInTx(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, createNoteSQL, uuid.New(), content)
		if err := row.Scan(&note.ID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return fmt.Errorf("create note: %v", err)
		}

		return nil
	})
	if err != nil {
		return entity.Note{}, err
	}

	slogx.Debug(ctx, "success to create note", slogx.NoteID(note.ID))

	return note, nil
}

func (r *Repo) GetNote(ctx context.Context, id uuid.UUID) (entity.Note, error) {
	var note entity.Note

	row := r.db.QueryRow(ctx, getNoteSQL, id)
	if err := row.Scan(&note.ID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("get note: %v", err)
	}

	return note, nil
}

func (r *Repo) ListNotes(ctx context.Context, offset, limit int) ([]entity.Note, error) {
	rows, err := r.db.Query(ctx, listNotesSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notes: %v", err)
	}
	defer rows.Close()

	notes := make([]entity.Note, 0)
	for rows.Next() {
		var note entity.Note
		if err := rows.Scan(&note.ID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %v", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %v", err)
	}

	return notes, nil
}

func (r *Repo) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countNotesSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count notes: %v", err)
	}

	return count, nil
}

func (r *Repo) UpdateNote(ctx context.Context, id uuid.UUID, content string) (entity.Note, error) {
	var note entity.Note

	err := r.db.RunInTx(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, updateNoteSQL, id, content)
		if err := row.Scan(&note.ID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return entity.ErrNoteNotFound
			}
			return fmt.Errorf("update note: %v", err)
		}

		return nil
	})
	if err != nil {
		return entity.Note{}, err
	}

	slogx.Debug(ctx, "success to update note", slogx.NoteID(note.ID))

	return note, nil
}

func (r *Repo) DeleteNote(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool

	err := r.db.RunInTx(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, deleteNoteSQL, id)
		if err != nil {
			return fmt.Errorf("delete note: %v", err)
		}

		deleted = tag.RowsAffected() > 0

		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}
