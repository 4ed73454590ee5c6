package adapters

import (
	"context"
	"sync"
	"time"

	"todo_backend/internal/feature/auth/domain"
	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/usecase"
)

// userMemory is the in-memory credential store. Records live for the
// lifetime of the process.
type userMemory struct {
	mu      sync.RWMutex
	byID    map[uint]entity.User
	byEmail map[string]uint
	nextID  uint
}

var _ usecase.UserRepository = (*userMemory)(nil)

// NewUserMemory returns an empty store whose first user gets ID 1.
func NewUserMemory() *userMemory {
	m := &userMemory{}
	m.reset()
	return m
}

// Create assigns the next ID and appends the user. The email check and the
// insert happen under one lock, so concurrent registrations of the same
// email cannot both succeed.
func (r *userMemory) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return domain.ErrUserAlreadyExists
	}

	u.ID = r.nextID
	r.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

// FindByEmail returns a copy of the user with the exact email.
func (r *userMemory) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

// FindByID returns a copy of the user with the given ID.
func (r *userMemory) FindByID(_ context.Context, id uint) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// Reset drops every user and restarts IDs at 1. Test harnesses only.
func (r *userMemory) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
	return nil
}

func (r *userMemory) reset() {
	r.byID = make(map[uint]entity.User)
	r.byEmail = make(map[string]uint)
	r.nextID = 1
}
