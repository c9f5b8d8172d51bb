package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one stored key/value pair.
type Entry struct {
	Key       string `gorm:"column:storage_key;primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName sets the table name for Entry.
func (Entry) TableName() string {
	return "client_storage"
}

// DBStorage stores values in a database table.
type DBStorage struct {
	db *gorm.DB
}

var _ Storage = (*DBStorage)(nil)

// NewDBStorage migrates the storage table and returns a storage on db.
func NewDBStorage(db *gorm.DB) (*DBStorage, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage table: %w", err)
	}
	return &DBStorage{db: db}, nil
}

func (s *DBStorage) Get(key string) ([]byte, error) {
	var entry Entry
	err := s.db.Where("storage_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, nil
}

func (s *DBStorage) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	entry := Entry{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *DBStorage) Remove(key string) error {
	if err := s.db.Where("storage_key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
