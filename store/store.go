package store

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agridata/models"
)

// ErrSensorNotFound is returned by queries that reference an external sensor
// identifier with no matching record.
var ErrSensorNotFound = errors.New("sensor not found")

// Store wraps the pooled database handle. Handlers hold a *Store and every
// operation scopes the handle to the request context; there is no shared
// mutable global.
type Store struct {
	db *gorm.DB
}

// Open connects to the database named by dsn. A postgres:// or
// postgresql:// URL selects the PostgreSQL driver, anything else is treated
// as a SQLite file path.
func Open(dsn string) (*Store, error) {
	var db *gorm.DB
	var err error
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// New wraps an already-open gorm handle. Used by tests.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the sensors and readings tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&models.Sensor{}, &models.Reading{})
}
