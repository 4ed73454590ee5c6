// Package adapters はtodoフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"todo_backend/internal/feature/todo/domain"
	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

// todoMemory is the in-memory task store. Records live for the lifetime of
// the process.
type todoMemory struct {
	mu     sync.RWMutex
	byID   map[uint]entity.Todo
	nextID uint
	now    func() time.Time
}

var _ usecase.TodoRepository = (*todoMemory)(nil)

// NewTodoMemory returns an empty store whose first todo gets ID 1.
func NewTodoMemory() *todoMemory {
	m := &todoMemory{now: time.Now}
	m.reset()
	return m
}

// locate returns the stored todo only when it belongs to ownerID.
// Callers must hold mu.
func (r *todoMemory) locate(id, ownerID uint) (entity.Todo, bool) {
	t, ok := r.byID[id]
	if !ok || t.UserID != ownerID {
		return entity.Todo{}, false
	}
	return t, true
}

func (r *todoMemory) ListByOwner(_ context.Context, ownerID uint) ([]entity.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Todo, 0)
	for _, t := range r.byID {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	// IDは単調増加なのでID順が作成順になる
	slices.SortFunc(out, func(a, b entity.Todo) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *todoMemory) FindByIDAndOwner(_ context.Context, id, ownerID uint) (*entity.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.locate(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return &t, nil
}

func (r *todoMemory) Create(_ context.Context, t *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	t.Completed = false
	t.CreatedAt = r.now().UTC()

	r.byID[t.ID] = *t
	return nil
}

func (r *todoMemory) Update(_ context.Context, id, ownerID uint, patch entity.TodoPatch) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.locate(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	patch.Apply(&t)
	r.byID[id] = t
	return &t, nil
}

func (r *todoMemory) Delete(_ context.Context, id, ownerID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locate(id, ownerID); !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.byID, id)
	return nil
}

// Reset drops every todo and restarts IDs at 1. Test harnesses only.
func (r *todoMemory) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
	return nil
}

func (r *todoMemory) reset() {
	r.byID = make(map[uint]entity.Todo)
	r.nextID = 1
}
