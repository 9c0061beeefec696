package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/evgeniy-krivenko/notes-web/internal/entity"
	"github.com/evgeniy-krivenko/notes-web/internal/schema"
	"github.com/evgeniy-krivenko/notes-web/pkg/logger/slogx"
)

// pageSize is how many notes the index page shows at once.
const pageSize = 20

const storageFailureMessage = "Failed to save note. Please try again."

type notesUsecase interface {
	CreateNote(ctx context.Context, content string) (entity.Note, error)
	GetNote(ctx context.Context, id uuid.UUID) (entity.Note, error)
	ListNotes(ctx context.Context, offset, limit int) ([]entity.Note, error)
	CountNotes(ctx context.Context) (int64, error)
	UpdateNote(ctx context.Context, id uuid.UUID, content string) (entity.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) (bool, error)
}

type Handler struct {
	renderer  *Renderer
	notes     notesUsecase
	staticDir string
	debug     bool
}

func NewHandler(renderer *Renderer, notes notesUsecase, staticDir string, debug bool) *Handler {
	return &Handler{
		renderer:  renderer,
		notes:     notes,
		staticDir: staticDir,
		debug:     debug,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /notes/create", h.HandleCreateForm)
	mux.HandleFunc("POST /notes/create", h.HandleCreateSubmit)
	mux.HandleFunc("GET /notes/{id}/edit", h.HandleEditForm)
	mux.HandleFunc("POST /notes/{id}/edit", h.HandleEditSubmit)
	mux.HandleFunc("POST /notes/{id}/delete", h.HandleDelete)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir))))
}

// PageData holds fields shared by every page.
type PageData struct {
	Title string
}

type IndexData struct {
	PageData
	Notes      []entity.Note
	Total      int64
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

type NoteFormData struct {
	PageData
	NoteID  string
	Content string
	Error   string
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	notes, err := h.notes.ListNotes(r.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		h.renderStorageError(w, r, err)
		return
	}

	count, err := h.notes.CountNotes(r.Context())
	if err != nil {
		h.renderStorageError(w, r, err)
		return
	}

	totalPages := int((count + pageSize - 1) / pageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	data := IndexData{
		PageData:   PageData{Title: "All Notes"},
		Notes:      notes,
		Total:      count,
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	h.render(w, r, "index.html", http.StatusOK, data)
}

func (h *Handler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	data := NoteFormData{PageData: PageData{Title: "Create New Note"}}

	h.render(w, r, "notes/create.html", http.StatusOK, data)
}

func (h *Handler) HandleCreateSubmit(w http.ResponseWriter, r *http.Request) {
	content, err := formContent(r)
	if err != nil {
		h.renderCreateForm(w, r, http.StatusBadRequest, "", validationMessage(err))
		return
	}

	if _, err := h.notes.CreateNote(r.Context(), content); err != nil {
		if isValidationError(err) {
			h.renderCreateForm(w, r, http.StatusBadRequest, content, validationMessage(err))
			return
		}

		slogx.Error(r.Context(), "failed to create note", slogx.Err(err))
		h.renderCreateForm(w, r, http.StatusInternalServerError, content, h.storageMessage(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.renderer.RenderError(w, http.StatusNotFound, "Note not found")
		return
	}

	note, err := h.notes.GetNote(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNoteNotFound) {
			h.renderer.RenderError(w, http.StatusNotFound, "Note not found")
			return
		}

		h.renderStorageError(w, r, err)
		return
	}

	data := NoteFormData{
		PageData: PageData{Title: "Edit Note"},
		NoteID:   note.ID.String(),
		Content:  note.Content,
	}

	h.render(w, r, "notes/edit.html", http.StatusOK, data)
}

func (h *Handler) HandleEditSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.renderer.RenderError(w, http.StatusNotFound, "Note not found")
		return
	}

	content, err := formContent(r)
	if err != nil {
		h.renderEditForm(w, r, http.StatusBadRequest, id, "", validationMessage(err))
		return
	}

	if _, err := h.notes.UpdateNote(r.Context(), id, content); err != nil {
		switch {
		case errors.Is(err, entity.ErrNoteNotFound):
			h.renderer.RenderError(w, http.StatusNotFound, "Note not found")

		case isValidationError(err):
			h.renderEditForm(w, r, http.StatusBadRequest, id, content, validationMessage(err))

		default:
			slogx.Error(r.Context(), "failed to update note", slogx.Err(err), slogx.NoteID(id))
			h.renderEditForm(w, r, http.StatusInternalServerError, id, content, h.storageMessage(err))
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.renderer.RenderError(w, http.StatusNotFound, "Note not found")
		return
	}

	deleted, err := h.notes.DeleteNote(r.Context(), id)
	if err != nil {
		slogx.Error(r.Context(), "failed to delete note", slogx.Err(err), slogx.NoteID(id))
		h.renderStorageError(w, r, err)
		return
	}

	if !deleted {
		h.renderer.RenderError(w, http.StatusNotFound, "Note not found")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderCreateForm(w http.ResponseWriter, r *http.Request, code int, content, errMsg string) {
	data := NoteFormData{
		PageData: PageData{Title: "Create New Note"},
		Content:  content,
		Error:    errMsg,
	}

	h.render(w, r, "notes/create.html", code, data)
}

func (h *Handler) renderEditForm(w http.ResponseWriter, r *http.Request, code int, id uuid.UUID, content, errMsg string) {
	data := NoteFormData{
		PageData: PageData{Title: "Edit Note"},
		NoteID:   id.String(),
		Content:  content,
		Error:    errMsg,
	}

	h.render(w, r, "notes/edit.html", code, data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, code int, data any) {
	if err := h.renderer.Render(w, name, code, data); err != nil {
		slogx.Error(r.Context(), "failed to render page", slogx.Err(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (h *Handler) renderStorageError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.Error(r.Context(), "storage failure", slogx.Err(err))
	h.renderer.RenderError(w, http.StatusInternalServerError, h.storageMessage(err))
}

// storageMessage hides storage internals unless debug mode is on.
func (h *Handler) storageMessage(err error) string {
	if h.debug {
		return err.Error()
	}

	return storageFailureMessage
}

// formContent pulls the content field out of the form, distinguishing an
// absent field from an empty one.
func formContent(r *http.Request) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", schema.ErrContentMissing
	}

	if !r.PostForm.Has("content") {
		return "", schema.ErrContentMissing
	}

	return r.PostForm.Get("content"), nil
}

func isValidationError(err error) bool {
	return errors.Is(err, schema.ErrContentMissing) ||
		errors.Is(err, schema.ErrContentEmpty) ||
		errors.Is(err, schema.ErrContentTooLong)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, schema.ErrContentMissing):
		return "Note content is required."
	case errors.Is(err, schema.ErrContentEmpty):
		return "Note content cannot be empty or whitespace only."
	case errors.Is(err, schema.ErrContentTooLong):
		return "Note content cannot exceed 5000 characters."
	}

	return err.Error()
}
