package types

import "time"

// Default values applied to optional note fields at creation.
const (
	DefaultNoteColor    = "#ffffff"
	DefaultNoteCategory = "general"
)

// Note represents a single note owned by a user.
//
// A note is visible and mutable only through operations scoped to its
// owner; an archived note is never pinned.
type Note struct {
	// ID is the unique identifier of the note.
	ID int `json:"id" db:"id"`

	// OwnerID is the identifier of the owning user. It is set at
	// creation and never reassigned.
	OwnerID int `json:"owner_id" db:"owner_id"`

	// Title is the required, non-empty title of the note.
	Title string `json:"title" db:"title"`

	// Content is the free-form body of the note.
	Content string `json:"content" db:"content"`

	// Color is the display color of the note.
	Color string `json:"color" db:"color"`

	// Category is a free-form label used for grouping and filtering.
	Category string `json:"category" db:"category"`

	// IsPinned marks the note to be sorted ahead of unpinned notes.
	IsPinned bool `json:"is_pinned" db:"is_pinned"`

	// IsFavorite marks the note as a favorite.
	IsFavorite bool `json:"is_favorite" db:"is_favorite"`

	// IsArchived hides the note from default listings. Archiving a
	// note clears its pinned flag.
	IsArchived bool `json:"is_archived" db:"is_archived"`

	// CreatedAt is the timestamp at which the note was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the note.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NotePatch is a partial update to a note. Only non-nil fields are
// applied; nil fields retain their stored value.
type NotePatch struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Color      *string `json:"color,omitempty"`
	Category   *string `json:"category,omitempty"`
	IsPinned   *bool   `json:"is_pinned,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Color == nil &&
		p.Category == nil && p.IsPinned == nil && p.IsFavorite == nil &&
		p.IsArchived == nil
}

// NoteFilter narrows a listing to matching notes. Search matches
// case-insensitively against title or content.
type NoteFilter struct {
	Search          string
	Category        string
	IncludeArchived bool
}
