// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "todos"
)

// CachingTodoRepository decorates a TodoRepository with a per-owner Redis
// cache of ListByOwner.
//
// Each owner has a generation counter; cached lists are stored under a key
// that includes it. Every successful mutation increments the counter, so a
// list read before the mutation can only ever be written to a key that is
// no longer consulted.
type CachingTodoRepository struct {
	inner     usecase.TodoRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string

	// owners whose generation could not be bumped; the cache is bypassed
	// for them until a later increment succeeds.
	dirty sync.Map
}

var _ usecase.TodoRepository = (*CachingTodoRepository)(nil)

// NewCachingTodoRepository decorates a TodoRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "todos".
// A nil rdb makes the decorator a pass-through.
func NewCachingTodoRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TodoRepository, namespace string) *CachingTodoRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingTodoRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListByOwner checks the cache first, then falls back to the inner repository.
func (c *CachingTodoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Todo, error) {
	if c.rdb == nil {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	// 前回の無効化に失敗していれば再試行し、成功するまでキャッシュを使わない
	if _, ok := c.dirty.Load(ownerID); ok && !c.invalidate(ctx, ownerID) {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	gen, err := c.generation(ctx, ownerID)
	if err != nil {
		slog.WarnContext(ctx, "todo cache unavailable", "owner_id", ownerID, "error", err)
		return c.inner.ListByOwner(ctx, ownerID)
	}
	key := c.listKey(ownerID, gen)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Todo
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := c.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort). A mutation that finished in the
	// meantime has moved the generation past gen, so this key is dead.
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByIDAndOwner is not cached.
func (c *CachingTodoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Todo, error) {
	return c.inner.FindByIDAndOwner(ctx, id, ownerID)
}

func (c *CachingTodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	if err := c.inner.Create(ctx, todo); err != nil {
		return err
	}
	c.invalidate(ctx, todo.UserID)
	return nil
}

func (c *CachingTodoRepository) Update(ctx context.Context, id, ownerID uint, patch entity.TodoPatch) (*entity.Todo, error) {
	todo, err := c.inner.Update(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, ownerID)
	return todo, nil
}

func (c *CachingTodoRepository) Delete(ctx context.Context, id, ownerID uint) error {
	if err := c.inner.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// invalidate bumps the owner's generation. On failure the owner is marked
// dirty and reads bypass the cache until a retry succeeds.
// The store mutation has already happened, so the error is not returned.
func (c *CachingTodoRepository) invalidate(ctx context.Context, ownerID uint) bool {
	if c.rdb == nil {
		return true
	}
	if err := c.rdb.Incr(ctx, c.generationKey(ownerID)).Err(); err != nil {
		c.dirty.Store(ownerID, struct{}{})
		slog.WarnContext(ctx, "todo cache invalidation failed", "owner_id", ownerID, "error", err)
		return false
	}
	c.dirty.Delete(ownerID)
	return true
}

// generation returns the owner's current generation; a missing counter is 0.
func (c *CachingTodoRepository) generation(ctx context.Context, ownerID uint) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// ownerKey is the key prefix shared by all of an owner's entries.
func (c *CachingTodoRepository) ownerKey(ownerID uint) string {
	return fmt.Sprintf("%s:owner:%d", safe(c.namespace), ownerID)
}

func (c *CachingTodoRepository) generationKey(ownerID uint) string {
	return c.ownerKey(ownerID) + ":gen"
}

func (c *CachingTodoRepository) listKey(ownerID uint, gen int64) string {
	return fmt.Sprintf("%s:v%d", c.ownerKey(ownerID), gen)
}
