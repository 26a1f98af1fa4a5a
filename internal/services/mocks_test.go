package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/notehub/apiserver/internal/store"
	"github.com/notehub/apiserver/types"
)

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sortNotes applies the listing contract: pinned first, then most
// recently created first.
func sortNotes(notes []types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

// Map-backed repository fakes mirroring the Postgres repositories'
// contracts, including owner scoping and list ordering.

type memUserRepo struct {
	nextID  int
	byEmail map[string]types.User
	byID    map[int]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		nextID:  1,
		byEmail: make(map[string]types.User),
		byID:    make(map[int]types.User),
	}
}

func (m *memUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return types.User{}, store.ErrDuplicate
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return user, nil
}

type memSessionRepo struct {
	sessions map[string]types.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]types.Session)}
}

func (m *memSessionRepo) Create(_ context.Context, session types.Session) error {
	m.sessions[session.TokenHash] = session
	return nil
}

func (m *memSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (types.Session, error) {
	session, ok := m.sessions[tokenHash]
	if !ok {
		return types.Session{}, store.ErrNotFound
	}
	return session, nil
}

func (m *memSessionRepo) Delete(_ context.Context, tokenHash string) error {
	delete(m.sessions, tokenHash)
	return nil
}

func (m *memSessionRepo) DeleteExpired(_ context.Context) (int, error) {
	removed := 0
	now := time.Now()
	for hash, session := range m.sessions {
		if session.Expired(now) {
			delete(m.sessions, hash)
			removed++
		}
	}
	return removed, nil
}

type memNoteRepo struct {
	nextID int
	clock  time.Time
	notes  map[int]types.Note
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{
		nextID: 1,
		clock:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		notes:  make(map[int]types.Note),
	}
}

// tick returns a strictly increasing timestamp so creation order is
// unambiguous in ordering assertions.
func (m *memNoteRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memNoteRepo) Create(_ context.Context, note types.Note) (types.Note, error) {
	note.ID = m.nextID
	m.nextID++
	now := m.tick()
	note.CreatedAt = now
	note.UpdatedAt = now
	m.notes[note.ID] = note
	return note, nil
}

func (m *memNoteRepo) List(_ context.Context, ownerID int, filter types.NoteFilter) ([]types.Note, error) {
	matched := make([]types.Note, 0)
	for _, note := range m.notes {
		if note.OwnerID != ownerID {
			continue
		}
		if note.IsArchived && !filter.IncludeArchived {
			continue
		}
		if filter.Category != "" && note.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !containsFold(note.Title, filter.Search) && !containsFold(note.Content, filter.Search) {
			continue
		}
		matched = append(matched, note)
	}
	sortNotes(matched)
	return matched, nil
}

func (m *memNoteRepo) Get(_ context.Context, ownerID, id int) (types.Note, error) {
	note, ok := m.notes[id]
	if !ok || note.OwnerID != ownerID {
		return types.Note{}, store.ErrNotFound
	}
	return note, nil
}

func (m *memNoteRepo) Update(ctx context.Context, ownerID, id int, patch types.NotePatch) (types.Note, error) {
	note, err := m.Get(ctx, ownerID, id)
	if err != nil {
		return types.Note{}, err
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Color != nil {
		note.Color = *patch.Color
	}
	if patch.Category != nil {
		note.Category = *patch.Category
	}
	if patch.IsPinned != nil {
		note.IsPinned = *patch.IsPinned
	}
	if patch.IsFavorite != nil {
		note.IsFavorite = *patch.IsFavorite
	}
	if patch.IsArchived != nil {
		note.IsArchived = *patch.IsArchived
	}
	note.UpdatedAt = m.tick()
	m.notes[id] = note
	return note, nil
}

func (m *memNoteRepo) Delete(ctx context.Context, ownerID, id int) error {
	if _, err := m.Get(ctx, ownerID, id); err != nil {
		return err
	}
	delete(m.notes, id)
	return nil
}

func (m *memNoteRepo) TogglePin(ctx context.Context, ownerID, id int) (types.Note, error) {
	note, err := m.Get(ctx, ownerID, id)
	if err != nil {
		return types.Note{}, err
	}
	if note.IsArchived {
		return note, nil
	}
	note.IsPinned = !note.IsPinned
	note.UpdatedAt = m.tick()
	m.notes[id] = note
	return note, nil
}

func (m *memNoteRepo) SetArchived(ctx context.Context, ownerID, id int, archived bool) (types.Note, error) {
	note, err := m.Get(ctx, ownerID, id)
	if err != nil {
		return types.Note{}, err
	}
	note.IsArchived = archived
	if archived {
		note.IsPinned = false
	}
	note.UpdatedAt = m.tick()
	m.notes[id] = note
	return note, nil
}

func (m *memNoteRepo) DistinctCategories(_ context.Context, ownerID int) ([]string, error) {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, note := range m.notes {
		if note.OwnerID != ownerID {
			continue
		}
		if _, ok := seen[note.Category]; ok {
			continue
		}
		seen[note.Category] = struct{}{}
		categories = append(categories, note.Category)
	}
	return categories, nil
}
