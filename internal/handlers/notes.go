package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/notehub/apiserver/internal/services"
	"github.com/notehub/apiserver/internal/store"
	"github.com/notehub/apiserver/types"
)

// NoteHandler provides HTTP handlers for notes.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler constructs a handler with the provided service.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// NoteRouter registers note routes on the given router. Every route
// requires an authenticated session.
func NoteRouter(r chi.Router, noteService *services.NoteService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewNoteHandler(noteService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListNotes)
	r.Post("/", handler.CreateNote)
	r.Get("/categories", handler.ListCategories)
	r.Route("/{noteID}", func(r chi.Router) {
		r.Get("/", handler.GetNote)
		r.Patch("/", handler.UpdateNote)
		r.Delete("/", handler.DeleteNote)
		r.Post("/pin", handler.TogglePin)
		r.Put("/archive", handler.SetArchived)
	})
}

type CreateNoteRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

type ArchiveRequest struct {
	IsArchived bool `json:"is_archived"`
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query := r.URL.Query()
	filter := types.NoteFilter{
		Search:   strings.TrimSpace(query.Get("search")),
		Category: strings.TrimSpace(query.Get("category")),
	}
	if raw := query.Get("isArchived"); raw != "" {
		includeArchived, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid isArchived value")
			return
		}
		filter.IncludeArchived = includeArchived
	}

	notes, err := h.noteService.List(r.Context(), userID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	note, err := h.noteService.Create(r.Context(), userID, types.Note{
		Title:    req.Title,
		Content:  req.Content,
		Color:    req.Color,
		Category: req.Category,
	})
	if err != nil {
		h.writeNoteError(w, err, "failed to create note")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.Get(r.Context(), userID, noteID)
	if err != nil {
		h.writeNoteError(w, err, "failed to fetch note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var patch types.NotePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	note, err := h.noteService.Update(r.Context(), userID, noteID, patch)
	if err != nil {
		h.writeNoteError(w, err, "failed to update note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	if err := h.noteService.Delete(r.Context(), userID, noteID); err != nil {
		h.writeNoteError(w, err, "failed to delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.TogglePin(r.Context(), userID, noteID)
	if err != nil {
		h.writeNoteError(w, err, "failed to toggle pin")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) SetArchived(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	note, err := h.noteService.SetArchived(r.Context(), userID, noteID, req.IsArchived)
	if err != nil {
		h.writeNoteError(w, err, "failed to update note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.noteService.DistinctCategories(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// requestScope resolves the authenticated user id and the noteID path
// parameter, writing the error response itself on failure.
func (h *NoteHandler) requestScope(w http.ResponseWriter, r *http.Request) (userID, noteID int, ok bool) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return 0, 0, false
	}

	noteID, err = strconv.Atoi(chi.URLParam(r, "noteID"))
	if err != nil || noteID < 1 {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return 0, 0, false
	}
	return userID, noteID, true
}

// writeNoteError maps service errors to HTTP responses. Ownership
// mismatches surface as the same 404 as nonexistent ids.
func (h *NoteHandler) writeNoteError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case services.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "note not found")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
