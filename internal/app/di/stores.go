// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "todo_backend/internal/feature/auth/adapters"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	authusecase "todo_backend/internal/feature/auth/usecase"
	todoadapters "todo_backend/internal/feature/todo/adapters"
	todousecase "todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/cache"
	"todo_backend/internal/platform/config"
	"todo_backend/internal/platform/db"
)

// Stores holds the repositories selected by STORE_DRIVER.
// DB is nil for the in-memory driver.
type Stores struct {
	Users authusecase.UserRepository
	Todos todousecase.TodoRepository
	DB    *gorm.DB
}

// NewStores creates the user and todo repositories for cfg.StoreDriver.
func NewStores(cfg config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite, config.StorePostgres:
		gdb, err := db.Open(cfg.StoreDriver, cfg.DatabaseDSN, cfg.DBConnectTimeout,
			&authentity.User{}, &todoadapters.TodoModel{})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
		}
		slog.Info("Using database store", "driver", cfg.StoreDriver)
		return &Stores{
			Users: authadapters.NewUserGorm(gdb),
			Todos: todoadapters.NewTodoGorm(gdb),
			DB:    gdb,
		}, nil
	case config.StoreMemory, "":
		slog.Info("Using in-memory store")
		return &Stores{
			Users: authadapters.NewUserMemory(),
			Todos: todoadapters.NewTodoMemory(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.StoreDriver)
	}
}

// NewTodoRepository wraps inner with the Redis list cache.
// If Redis is unavailable, it returns inner unchanged.
func NewTodoRepository(rdb *redis.Client, cfg config.Config, inner todousecase.TodoRepository) todousecase.TodoRepository {
	if rdb == nil {
		return inner
	}
	return cache.NewCachingTodoRepository(rdb, cfg.CacheTTL, inner, "todos")
}

// Close releases the database connection pool, if any.
func (s *Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the database connection. The in-memory store is always healthy.
func (s *Stores) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
