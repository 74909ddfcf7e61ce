// Package store owns the entity tables. Every store wraps the same
// injected *gorm.DB; nothing here keeps global state.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup resolves no row. Callers treat it
// as a normal negative result, distinct from store faults.
var ErrNotFound = errors.New("record not found")

// Store bundles the per-entity stores over one database handle.
type Store struct {
	Users    *UserStore
	Projects *ProjectStore
	Issues   *IssueStore
	Comments *CommentStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Projects: &ProjectStore{db: db},
		Issues:   &IssueStore{db: db},
		Comments: &CommentStore{db: db},
	}
}

// notFound translates gorm's sentinel so callers never depend on gorm.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
