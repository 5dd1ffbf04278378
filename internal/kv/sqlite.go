package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-lpg-backend/internal/domain"
)

// SQLite persists collections as rows of a single table, one row per
// collection document. The pure-Go driver keeps the binary CGO-free.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path, applies PRAGMAs, sizes
// the pool, migrates the collections table, and returns the store.
func OpenSQLite(path string) (*SQLite, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.AutoMigrate(&domain.Collection{}); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an already-open GORM handle (tests migrate it themselves).
func NewSQLite(db *gorm.DB) *SQLite { return &SQLite{db: db} }

// Get loads the document for name. Absence is not an error.
func (s *SQLite) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var row domain.Collection
	err := s.db.WithContext(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Data, true, nil
}

// Put upserts the document for name in one statement.
func (s *SQLite) Put(ctx context.Context, name string, data []byte) error {
	row := domain.Collection{Name: name, Data: data, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}

// Delete removes the document for name; missing rows are not an error.
func (s *SQLite) Delete(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Delete(&domain.Collection{}, "name = ?", name).Error
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
