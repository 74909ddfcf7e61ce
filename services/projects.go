package services

import (
	"github.com/joejung/mira/models"
)

// ProjectStore is what the project use cases need from the entity store.
type ProjectStore interface {
	ListAll() ([]models.Project, error)
	FindByID(id uint) (*models.Project, error)
	Insert(project *models.Project) error
}

// ProjectService lists and creates projects.
type ProjectService struct {
	projects ProjectStore
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) List() ([]models.Project, error) {
	return s.projects.ListAll()
}

// ProjectInput carries already-decoded project data.
type ProjectInput struct {
	Name        string
	Key         string
	Description *string
}

func (s *ProjectService) Create(in ProjectInput) (*models.Project, error) {
	if in.Name == "" {
		return nil, invalidField("name", "must not be empty")
	}
	if in.Key == "" {
		return nil, invalidField("key", "must not be empty")
	}

	project := &models.Project{
		Name:        in.Name,
		Key:         in.Key,
		Description: in.Description,
	}
	if err := s.projects.Insert(project); err != nil {
		return nil, err
	}
	return project, nil
}
