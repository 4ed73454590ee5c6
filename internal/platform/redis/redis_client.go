// Package redis はキャッシュ用のRedisクライアントを生成します。
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Options はRedis接続の設定です。Addrが空の場合キャッシュは無効です。
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient は接続を確認したうえでクライアントを返します。
// Addrが空の場合は(nil, nil)を返し、呼び出し側はキャッシュなしで動作します。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.Addr == "" {
		slog.Info("Redis not configured, cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", opts.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", opts.Addr)
	return rdb, nil
}
