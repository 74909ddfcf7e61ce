package store

import (
	"github.com/joejung/mira/models"
	"gorm.io/gorm"
)

// UserStore provides lookup and insert for users.
type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Insert persists a user. The password hash must already be computed; this
// layer never sees plaintext.
func (s *UserStore) Insert(user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	return s.db.Create(user).Error
}
