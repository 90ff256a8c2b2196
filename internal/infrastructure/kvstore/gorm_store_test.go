package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) *GormStore {
	path := filepath.Join(t.TempDir(), "kv.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormStore_GetMissing(t *testing.T) {
	store := setupGormStore(t)

	value, ok, err := store.Get(context.Background(), "absent")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestGormStore_SetOverwrites(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "vr_therapy_users", []byte(`{"therapists":[]}`)))
	require.NoError(t, store.Set(ctx, "vr_therapy_users", []byte(`{"therapists":[{"id":"T001"}]}`)))

	value, ok, err := store.Get(ctx, "vr_therapy_users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"therapists":[{"id":"T001"}]}`, string(value))

	var count int64
	require.NoError(t, store.db.Model(&Entry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormStore_Delete(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "b", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "c", []byte(`[]`)))

	require.NoError(t, store.Delete(ctx, "a", "b", "missing"))
	require.NoError(t, store.Delete(ctx))

	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)
}
