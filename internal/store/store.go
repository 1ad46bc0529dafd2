package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mfranke/numguess/internal/dependencies/clock"
	"github.com/mfranke/numguess/internal/model"
)

// Store is the sqlite-backed relational store for users and scores.
// Each operation commits or fails atomically; no multi-statement
// transaction spans a caller-visible operation.
type Store struct {
	db    *gorm.DB
	clock clock.Clock
}

// Open opens (creating if necessary) the sqlite database at path and
// runs migrations. Foreign key enforcement is enabled so that deleting
// a user cascades to their scores.
func Open(path string, clk clock.Clock) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return NewWithDB(db, clk)
}

// NewWithDB wraps an existing gorm connection (useful for testing)
func NewWithDB(db *gorm.DB, clk clock.Clock) (*Store, error) {
	if err := db.AutoMigrate(&model.User{}, &model.Score{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, clock: clk}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
