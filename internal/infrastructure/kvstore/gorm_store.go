package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainRepo "vr-therapy-platform/internal/domain/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the key-value table
type Entry struct {
	Key       string         `gorm:"column:kv_key;type:varchar(191);primaryKey"`
	Value     datatypes.JSON `gorm:"column:kv_value;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GormStore keeps every document in a single table. It works on any gorm
// dialect; SQLite and PostgreSQL are wired by the bootstrap.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the key-value table and returns the store
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &GormStore{db: db}, nil
}

var _ domainRepo.KeyValueStore = (*GormStore)(nil)

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: datatypes.JSON(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("kv_key IN ?", keys).Delete(&Entry{}).Error
}
