package localstore

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by Get when the key has never been written or has
// been deleted.
var ErrNotFound = errors.New("localstore: key not found")

// Record is one durable key-value blob. Values are written wholesale on every
// mutation; concurrent writers are not coordinated beyond last-write-wins.
type Record struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the default table name for GORM.
func (Record) TableName() string {
	return "kv_blob"
}

// Store is a durable local key-value store backed by SQLite. It stands in
// for browser local storage: whole-blob reads and writes keyed by a fixed
// string.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the store at the given path and runs migration.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("auto-migrate kv_blob table: %w", err)
	}

	return &Store{db: db}, nil
}

// Put overwrites the full value stored under key.
func (s *Store) Put(key string, value []byte) error {
	record := Record{Key: key, Value: value}

	tx := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&record)

	if tx.Error != nil {
		return fmt.Errorf("put %q: %w", key, tx.Error)
	}
	return nil
}

// Get returns the full value stored under key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	var record Record
	err := s.db.Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return record.Value, nil
}

// Delete removes the key entirely. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return db.Close()
}
