// Package db はGORM接続の生成とリトライ、テーブル初期化を提供します。
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// 対応するストアドライバ名
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを開く関数です。テストでは差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// NewOpener はドライバ名に応じたOpenerを返します。
func NewOpener(driver string) (Opener, error) {
	var dialect func(string) gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialect = sqlite.Open
	case DriverPostgres:
		dialect = postgres.Open
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", driver)
	}

	return func(dsn string) (*gorm.DB, error) {
		gdb, err := gorm.Open(dialect(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, err
		}
		if driver == DriverSQLite {
			// :memory: は接続ごとに別DBになるため単一接続に制限する
			sqlDB, err := gdb.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		return gdb, nil
	}, nil
}

// ConnectWithRetry は接続に成功するかtimeoutを超えるまでopenを繰り返します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := open(dsn)
		if err == nil {
			return gdb, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// Open はドライバを選択し、リトライ付きで接続したうえでmodelsをマイグレーションします。
func Open(driver, dsn string, timeout time.Duration, models ...any) (*gorm.DB, error) {
	open, err := NewOpener(driver)
	if err != nil {
		return nil, err
	}
	gdb, err := ConnectWithRetry(dsn, timeout, open)
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return gdb, nil
}

// Truncate はテーブルの全行を削除し、自動採番を1に戻します。
func Truncate(ctx context.Context, gdb *gorm.DB, table string) error {
	tx := gdb.WithContext(ctx)
	if gdb.Dialector.Name() == DriverPostgres {
		return tx.Exec("TRUNCATE TABLE ? RESTART IDENTITY", clause.Table{Name: table}).Error
	}

	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM ?", clause.Table{Name: table}).Error; err != nil {
			return err
		}
		// sqlite_sequence はAUTOINCREMENT列を持つテーブルの作成後にのみ存在する
		if !tx.Migrator().HasTable("sqlite_sequence") {
			return nil
		}
		return tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
	})
}
