package store

import (
	"github.com/joejung/mira/models"
	"gorm.io/gorm"
)

// CommentStore provides insert for comments. Comments are immutable once
// authored; no update or delete is exposed.
type CommentStore struct {
	db *gorm.DB
}

func (s *CommentStore) Insert(comment *models.Comment) error {
	if err := s.db.Create(comment).Error; err != nil {
		return err
	}
	// Reload with the author so responses match the API shape.
	return s.db.Preload("Author").First(comment, comment.ID).Error
}
