package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type row struct {
	ID   uint `gorm:"primaryKey;autoIncrement"`
	Name string
}

// TestNewOpener_UnsupportedDriver は未対応のドライバ名でエラーになることを検証します。
func TestNewOpener_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{"", "mysql", "memory"} {
		_, err := NewOpener(driver)
		assert.Error(t, err, "driver %q", driver)
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		assert.Equal(t, "test-dsn", dsn)
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel because this test takes time due to retry sleeps

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後に最後のエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, cause
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.GreaterOrEqual(t, attempts, 1)
}

// TestOpen_SQLiteMemory はsqliteのインメモリDBへ接続しマイグレーションできることを検証します。
func TestOpen_SQLiteMemory(t *testing.T) {
	t.Parallel()

	gdb, err := Open(DriverSQLite, ":memory:", time.Second, &row{})
	require.NoError(t, err)

	assert.True(t, gdb.Migrator().HasTable(&row{}))
	assert.Equal(t, DriverSQLite, gdb.Dialector.Name())
}

// TestTruncate_RestartsIdentity は全行削除後にIDが1から採番されることを検証します。
func TestTruncate_RestartsIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gdb, err := Open(DriverSQLite, ":memory:", time.Second, &row{})
	require.NoError(t, err)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, gdb.Create(&row{Name: name}).Error)
	}

	require.NoError(t, Truncate(ctx, gdb, "rows"))

	var count int64
	require.NoError(t, gdb.Model(&row{}).Count(&count).Error)
	assert.Zero(t, count)

	next := &row{Name: "d"}
	require.NoError(t, gdb.Create(next).Error)
	assert.Equal(t, uint(1), next.ID)
}

// TestTruncate_EmptyTable は一度も挿入していないテーブルでも成功することを検証します。
func TestTruncate_EmptyTable(t *testing.T) {
	t.Parallel()

	gdb, err := Open(DriverSQLite, ":memory:", time.Second, &row{})
	require.NoError(t, err)

	assert.NoError(t, Truncate(context.Background(), gdb, "rows"))
}
