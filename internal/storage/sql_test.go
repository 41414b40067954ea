package storage

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
)

var sqliteSeq atomic.Int64

func setupTestSQL(t *testing.T) *SQL {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_%d?mode=memory&cache=shared&_busy_timeout=5000", sqliteSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection serialises the transactions sqlite cannot lock row-wise
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := NewSQL(db, time.Hour)
	require.NoError(t, s.AutoMigrate())
	return s
}

func TestSQLStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) checkout.Store { return setupTestSQL(t) })
}

func TestSQLExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	s := setupTestSQL(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Create(ctx, checkout.NewSession("q-1", false, now)))
	require.NoError(t, s.Create(ctx, checkout.NewSession("q-2", false, now)))

	now = now.Add(30 * time.Minute)
	_, err := s.Update(ctx, "q-2", func(cur checkout.Session) (checkout.Session, error) { return cur, nil })
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	_, err = s.Get(ctx, "q-1")
	assert.ErrorIs(t, err, checkout.ErrSessionNotFound)
	_, err = s.Get(ctx, "q-2")
	require.NoError(t, err)

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var count int64
	require.NoError(t, s.db.Model(&SessionRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSQLRowTimesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupTestSQL(t)
	now := time.Date(2024, 1, 1, 12, 30, 15, 123_000_000, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Create(ctx, checkout.NewSession("t-1", false, now)))

	var row SessionRow
	require.NoError(t, s.db.First(&row, "id = ?", "t-1").Error)
	assert.True(t, row.ExpiresAt.Equal(now.Add(time.Hour)), row.ExpiresAt)
	assert.True(t, row.CreatedAt.Equal(now), row.CreatedAt)

	cols, err := s.db.Migrator().ColumnTypes(&SessionRow{})
	require.NoError(t, err)
	for _, col := range cols {
		switch col.Name() {
		case "expires_at", "created_at", "updated_at":
			assert.Equal(t, "datetime", strings.ToLower(col.DatabaseTypeName()), col.Name())
		}
	}
}
