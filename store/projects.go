package store

import (
	"github.com/joejung/mira/models"
	"gorm.io/gorm"
)

// ProjectStore provides list and insert for projects.
type ProjectStore struct {
	db *gorm.DB
}

// ListAll returns every project in natural order.
func (s *ProjectStore) ListAll() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectStore) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (s *ProjectStore) Insert(project *models.Project) error {
	return s.db.Create(project).Error
}
