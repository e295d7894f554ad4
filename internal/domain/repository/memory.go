package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartnotes/internal/common"
	"smartnotes/internal/domain/model"
)

// In-memory implementations backed by maps, for development and tests.

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]model.User)}
}

var _ UserRepository = (*memoryUserRepository)(nil)

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrConflict
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, common.ErrNotFound
}

type memoryNoteRepository struct {
	mu    sync.Mutex
	notes map[string]model.Note
}

func NewMemoryNoteRepository() NoteRepository {
	return &memoryNoteRepository{notes: make(map[string]model.Note)}
}

var _ NoteRepository = (*memoryNoteRepository)(nil)

func (r *memoryNoteRepository) Create(ctx context.Context, note *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now
	r.notes[note.ID] = *note
	return nil
}

func (r *memoryNoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes := []model.Note{}
	for _, n := range r.notes {
		if n.OwnerID == ownerID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID < notes[j].ID
	})
	return notes, nil
}

func (r *memoryNoteRepository) FindByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	found := n
	return &found, nil
}

func (r *memoryNoteRepository) Update(ctx context.Context, note *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.notes[note.ID]
	if !ok || existing.OwnerID != note.OwnerID {
		return common.ErrNotFound
	}
	note.CreatedAt = existing.CreatedAt
	note.UpdatedAt = time.Now().UTC()
	r.notes[note.ID] = *note
	return nil
}

func (r *memoryNoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

type memorySession struct {
	userID    string
	expiresAt time.Time
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]memorySession)}
}

var _ SessionStore = (*memorySessionStore)(nil)

func (s *memorySessionStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memorySessionStore) Resolve(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return "", common.ErrUnauthenticated
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return "", common.ErrUnauthenticated
	}
	return sess.userID, nil
}

func (s *memorySessionStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
