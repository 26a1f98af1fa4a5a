package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notehub/apiserver/types"
)

const noteColumns = `id, owner_id, title, content, color, category, is_pinned, is_favorite, is_archived, created_at, updated_at`

// NoteRepository handles persistence for notes. Every query is scoped
// by owner_id so a note owned by someone else behaves exactly like a
// note that does not exist.
type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func scanNote(row interface{ Scan(...any) error }) (types.Note, error) {
	var note types.Note
	err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.Color,
		&note.Category,
		&note.IsPinned,
		&note.IsFavorite,
		&note.IsArchived,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	return note, err
}

func (r *NoteRepository) Create(ctx context.Context, note types.Note) (types.Note, error) {
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	const query = `
		INSERT INTO notes (owner_id, title, content, color, category, is_pinned, is_favorite, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		note.OwnerID,
		note.Title,
		note.Content,
		note.Color,
		note.Category,
		note.IsPinned,
		note.IsFavorite,
		note.IsArchived,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID); err != nil {
		return types.Note{}, err
	}
	return note, nil
}

// List returns the owner's notes with pinned notes first, then most
// recently created first. Archived notes are excluded unless the
// filter asks for them.
func (r *NoteRepository) List(ctx context.Context, ownerID int, filter types.NoteFilter) ([]types.Note, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + noteColumns + ` FROM notes WHERE owner_id = $1`)
	args := []any{ownerID}

	if !filter.IncludeArchived {
		sb.WriteString(` AND is_archived = FALSE`)
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, ` AND category = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&sb, ` AND (title ILIKE $%d OR content ILIKE $%d)`, len(args), len(args))
	}
	sb.WriteString(` ORDER BY is_pinned DESC, created_at DESC`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]types.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) Get(ctx context.Context, ownerID, id int) (types.Note, error) {
	const query = `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE id = $1 AND owner_id = $2`
	note, err := scanNote(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Note{}, ErrNotFound
		}
		return types.Note{}, err
	}
	return note, nil
}

// Update applies a partial patch in a single statement. Fields absent
// from the patch keep their stored value.
func (r *NoteRepository) Update(ctx context.Context, ownerID, id int, patch types.NotePatch) (types.Note, error) {
	set := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.IsPinned != nil {
		add("is_pinned", *patch.IsPinned)
	}
	if patch.IsFavorite != nil {
		add("is_favorite", *patch.IsFavorite)
	}
	if patch.IsArchived != nil {
		add("is_archived", *patch.IsArchived)
	}
	add("updated_at", time.Now())

	args = append(args, id, ownerID)
	query := fmt.Sprintf(
		`UPDATE notes SET %s WHERE id = $%d AND owner_id = $%d RETURNING `+noteColumns,
		strings.Join(set, ", "), len(args)-1, len(args),
	)

	note, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Note{}, ErrNotFound
		}
		return types.Note{}, err
	}
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id int) error {
	const query = `DELETE FROM notes WHERE id = $1 AND owner_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// TogglePin flips the pinned flag. An archived note is never pinned,
// so the toggle is a no-op returning the unchanged row in that case.
func (r *NoteRepository) TogglePin(ctx context.Context, ownerID, id int) (types.Note, error) {
	const query = `
		UPDATE notes
		SET is_pinned = CASE WHEN is_archived THEN is_pinned ELSE NOT is_pinned END,
			updated_at = CASE WHEN is_archived THEN updated_at ELSE $3 END
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + noteColumns
	note, err := scanNote(r.db.QueryRowContext(ctx, query, id, ownerID, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Note{}, ErrNotFound
		}
		return types.Note{}, err
	}
	return note, nil
}

// SetArchived sets the archived flag. Archiving clears the pinned flag
// in the same statement.
func (r *NoteRepository) SetArchived(ctx context.Context, ownerID, id int, archived bool) (types.Note, error) {
	const query = `
		UPDATE notes
		SET is_archived = $3,
			is_pinned = CASE WHEN $3 THEN FALSE ELSE is_pinned END,
			updated_at = $4
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + noteColumns
	note, err := scanNote(r.db.QueryRowContext(ctx, query, id, ownerID, archived, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Note{}, ErrNotFound
		}
		return types.Note{}, err
	}
	return note, nil
}

// DistinctCategories returns the categories in use by the owner's notes.
func (r *NoteRepository) DistinctCategories(ctx context.Context, ownerID int) ([]string, error) {
	const query = `SELECT DISTINCT category FROM notes WHERE owner_id = $1`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}
