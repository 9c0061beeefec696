package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/notes-web/internal/entity"
	"github.com/evgeniy-krivenko/notes-web/pkg/database"
)

var errBoom = errors.New("boom")

func newTestRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return New(database.NewDatabase(mock)), mock
}

func noteRows(id uuid.UUID, content string, createdAt, updatedAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "content", "created_at", "updated_at"}).
		AddRow(id, content, createdAt, updatedAt)
}

func TestCreateNote(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(createNoteSQL)).
		WithArgs(pgxmock.AnyArg(), "Buy milk").
		WillReturnRows(noteRows(id, "Buy milk", now, now))
	mock.ExpectCommit()

	note, err := repo.CreateNote(context.Background(), "Buy milk")
	require.NoError(t, err)

	assert.Equal(t, id, note.ID)
	assert.Equal(t, "Buy milk", note.Content)
	assert.True(t, note.CreatedAt.Equal(note.UpdatedAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNote_StorageErrorRollsBack(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(createNoteSQL)).
		WithArgs(pgxmock.AnyArg(), "Buy milk").
		WillReturnError(errBoom)
	mock.ExpectRollback()

	_, err := repo.CreateNote(context.Background(), "Buy milk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create note")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNote(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(getNoteSQL)).
		WithArgs(id).
		WillReturnRows(noteRows(id, "Buy milk", now, now))

	note, err := repo.GetNote(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, note.ID)
	assert.Equal(t, "Buy milk", note.Content)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNote_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(getNoteSQL)).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetNote(context.Background(), id)
	require.ErrorIs(t, err, entity.ErrNoteNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListNotes(t *testing.T) {
	repo, mock := newTestRepo(t)

	now := time.Now()
	first, second := uuid.New(), uuid.New()

	rows := pgxmock.NewRows([]string{"id", "content", "created_at", "updated_at"}).
		AddRow(first, "newest", now, now).
		AddRow(second, "older", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(listNotesSQL)).
		WithArgs(20, 0).
		WillReturnRows(rows)

	notes, err := repo.ListNotes(context.Background(), 0, 20)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first, notes[0].ID)
	assert.Equal(t, second, notes[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListNotes_OutOfRangeOffsetIsEmpty(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(listNotesSQL)).
		WithArgs(20, 1000).
		WillReturnRows(pgxmock.NewRows([]string{"id", "content", "created_at", "updated_at"}))

	notes, err := repo.ListNotes(context.Background(), 1000, 20)
	require.NoError(t, err)
	assert.Empty(t, notes)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountNotes(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(countNotesSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	count, err := repo.CountNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()
	createdAt := time.Now().Add(-time.Hour)
	updatedAt := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(updateNoteSQL)).
		WithArgs(id, "Buy milk and eggs").
		WillReturnRows(noteRows(id, "Buy milk and eggs", createdAt, updatedAt))
	mock.ExpectCommit()

	note, err := repo.UpdateNote(context.Background(), id, "Buy milk and eggs")
	require.NoError(t, err)

	assert.Equal(t, "Buy milk and eggs", note.Content)
	assert.True(t, note.CreatedAt.Equal(createdAt))
	assert.True(t, note.UpdatedAt.After(note.CreatedAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(updateNoteSQL)).
		WithArgs(id, "x").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.UpdateNote(context.Background(), id, "x")
	require.ErrorIs(t, err, entity.ErrNoteNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote_StorageErrorRollsBack(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(updateNoteSQL)).
		WithArgs(id, "x").
		WillReturnError(errBoom)
	mock.ExpectRollback()

	_, err := repo.UpdateNote(context.Background(), id, "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrNoteNotFound)
	assert.Contains(t, err.Error(), "update note")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNote(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteNoteSQL)).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteNote(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNote_Absent(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteNoteSQL)).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	deleted, err := repo.DeleteNote(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNote_StorageErrorRollsBack(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteNoteSQL)).
		WithArgs(id).
		WillReturnError(errBoom)
	mock.ExpectRollback()

	deleted, err := repo.DeleteNote(context.Background(), id)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.Contains(t, err.Error(), "delete note")

	require.NoError(t, mock.ExpectationsWereMet())
}
