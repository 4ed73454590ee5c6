package di

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	gqlapp "todo_backend/internal/app/graphql"
	"todo_backend/internal/app/router"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	todohandler "todo_backend/internal/feature/todo/transport/handler"
	todousecase "todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/config"
	"todo_backend/internal/platform/http/handler"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/password"
	infraredis "todo_backend/internal/platform/redis"
)

// App is the wired application: the HTTP engine plus the resources it owns.
type App struct {
	Router *gin.Engine
	Stores *Stores
	Redis  *redis.Client
}

// NewApp builds stores, use cases and handlers from cfg and mounts them on a router.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	stores, err := NewStores(cfg)
	if err != nil {
		return nil, err
	}

	// Redis
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}

	app := &App{Stores: stores, Redis: rdb}
	app.Router, err = newRouter(cfg, stores, rdb)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func newRouter(cfg config.Config, stores *Stores, rdb *redis.Client) (*gin.Engine, error) {
	// Repository
	todoRepo := NewTodoRepository(rdb, cfg, stores.Todos)

	// Usecase
	generator := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiresIn.Duration())
	verifier := jwtmw.NewVerifier(cfg.JWTSecret)
	authUC := authusecase.NewAuthUsecase(stores.Users, password.NewHasher(cfg.BcryptCost), generator)
	todoUC := todousecase.NewTodoUsecase(todoRepo, stores.Users)

	// Handler
	schema, err := gqlapp.NewSchema(authUC, todoUC)
	if err != nil {
		return nil, err
	}
	authH := authhandler.NewAuthHandler(authUC)
	todoH := todohandler.NewTodoHandler(todoUC)
	gqlH := gqlapp.NewHandler(schema, verifier)
	health := handler.Health(healthChecks(stores, rdb))

	return router.NewRouter(authH, todoH, gqlH, health, verifier), nil
}

func healthChecks(stores *Stores, rdb *redis.Client) map[string]handler.Check {
	checks := map[string]handler.Check{}
	if stores.DB != nil {
		checks["database"] = stores.Ping
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.Stores != nil {
		errs = append(errs, a.Stores.Close())
	}
	return errors.Join(errs...)
}
