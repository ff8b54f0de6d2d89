// Package store is the gorm-backed persistence layer of the admin service.
package store

import (
	"errors"
	"fmt"

	"wallet_admin/internal/domain" // Sentinel errors

	"gorm.io/gorm" // ORM
)

// Store wraps the database handle shared by every repository method
type Store struct {
	db *gorm.DB // MySQL or Postgres, chosen by config
}

// New returns a Store over db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations and health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}

// readErr classifies a read failure
func readErr(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to read %s: %w: %v", what, domain.ErrBackend, err) // Driver detail stays in the message only
}

// writeErr passes domain errors through and wraps everything else as a backend failure
func writeErr(what string, err error) error {
	for _, kind := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrAlreadyCompleted, domain.ErrForbidden, domain.ErrBackend} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("failed to write %s: %w: %v", what, domain.ErrBackend, err)
}
