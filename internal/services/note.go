package services

import (
	"context"
	"strings"

	"github.com/notehub/apiserver/types"
)

// NoteRepository defines persistence operations for notes. Every
// operation is scoped by owner id and fails closed with
// store.ErrNotFound on any mismatch.
type NoteRepository interface {
	Create(ctx context.Context, note types.Note) (types.Note, error)
	List(ctx context.Context, ownerID int, filter types.NoteFilter) ([]types.Note, error)
	Get(ctx context.Context, ownerID, id int) (types.Note, error)
	Update(ctx context.Context, ownerID, id int, patch types.NotePatch) (types.Note, error)
	Delete(ctx context.Context, ownerID, id int) error
	TogglePin(ctx context.Context, ownerID, id int) (types.Note, error)
	SetArchived(ctx context.Context, ownerID, id int, archived bool) (types.Note, error)
	DistinctCategories(ctx context.Context, ownerID int) ([]string, error)
}

// NoteService encapsulates note use-cases.
type NoteService struct {
	repo NoteRepository
}

func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Create validates and stores a new note owned by ownerID. Optional
// fields left empty receive their defaults.
func (s *NoteService) Create(ctx context.Context, ownerID int, note types.Note) (types.Note, error) {
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return types.Note{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	note.OwnerID = ownerID
	if note.Color == "" {
		note.Color = types.DefaultNoteColor
	}
	if note.Category == "" {
		note.Category = types.DefaultNoteCategory
	}
	if note.IsArchived {
		// An archived note is never pinned.
		note.IsPinned = false
	}
	return s.repo.Create(ctx, note)
}

func (s *NoteService) List(ctx context.Context, ownerID int, filter types.NoteFilter) ([]types.Note, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, ownerID, filter)
}

func (s *NoteService) Get(ctx context.Context, ownerID, id int) (types.Note, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// Update applies a partial patch. Only supplied fields change; a patch
// that archives the note clears its pinned flag in the same call.
func (s *NoteService) Update(ctx context.Context, ownerID, id int, patch types.NotePatch) (types.Note, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return types.Note{}, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		patch.Title = &trimmed
	}
	if patch.IsArchived != nil && *patch.IsArchived {
		unpinned := false
		patch.IsPinned = &unpinned
	}
	if patch.IsEmpty() {
		return s.repo.Get(ctx, ownerID, id)
	}
	return s.repo.Update(ctx, ownerID, id, patch)
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id int) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *NoteService) TogglePin(ctx context.Context, ownerID, id int) (types.Note, error) {
	return s.repo.TogglePin(ctx, ownerID, id)
}

func (s *NoteService) SetArchived(ctx context.Context, ownerID, id int, archived bool) (types.Note, error) {
	return s.repo.SetArchived(ctx, ownerID, id, archived)
}

func (s *NoteService) DistinctCategories(ctx context.Context, ownerID int) ([]string, error) {
	return s.repo.DistinctCategories(ctx, ownerID)
}
