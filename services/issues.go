package services

import (
	"errors"
	"fmt"

	"github.com/joejung/mira/models"
	"github.com/joejung/mira/store"
)

// Default paging for issue listings.
const (
	DefaultListLimit = 2000
)

// IssueStore is what the issue use cases need from the entity store.
type IssueStore interface {
	List(offset, limit int) ([]models.Issue, error)
	FindByID(id uint) (*models.Issue, error)
	Insert(issue *models.Issue) error
	Update(id uint, patch store.IssuePatch) (*models.Issue, error)
}

// IssueService lists, creates and updates issues. Foreign references are
// checked here before anything is stored; the store itself stays
// unguarded.
type IssueService struct {
	issues   IssueStore
	projects ProjectStore
	users    UserStore
	events   Publisher
}

func NewIssueService(issues IssueStore, projects ProjectStore, users UserStore, events Publisher) *IssueService {
	return &IssueService{issues: issues, projects: projects, users: users, events: events}
}

// List returns a page of issues. Negative offsets are treated as 0 and a
// non-positive limit falls back to the default.
func (s *IssueService) List(offset, limit int) ([]models.Issue, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.issues.List(offset, limit)
}

func (s *IssueService) Get(id uint) (*models.Issue, error) {
	return s.issues.FindByID(id)
}

// IssueInput carries already-decoded issue data.
type IssueInput struct {
	Title       string
	Description *string
	Status      models.Status
	Priority    models.Priority
	ProjectID   uint
	ReporterID  uint
	AssigneeID  *uint
	Chipset     *string
	ChipsetVer  *string
}

// Create validates enums and foreign references, applies the OPEN/MEDIUM
// defaults and persists the issue.
func (s *IssueService) Create(in IssueInput) (*models.Issue, error) {
	if in.Title == "" {
		return nil, invalidField("title", "must not be empty")
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, invalidField("status", "unknown status "+string(in.Status))
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, invalidField("priority", "unknown priority "+string(in.Priority))
	}
	if err := s.checkProject(in.ProjectID); err != nil {
		return nil, err
	}
	if err := s.checkUser("reporterId", in.ReporterID); err != nil {
		return nil, err
	}
	if in.AssigneeID != nil {
		if err := s.checkUser("assigneeId", *in.AssigneeID); err != nil {
			return nil, err
		}
	}

	issue := &models.Issue{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		ProjectID:   in.ProjectID,
		ReporterID:  in.ReporterID,
		AssigneeID:  in.AssigneeID,
		Chipset:     in.Chipset,
		ChipsetVer:  in.ChipsetVer,
	}
	if err := s.issues.Insert(issue); err != nil {
		return nil, err
	}

	created, err := s.issues.FindByID(issue.ID)
	if err != nil {
		return nil, err
	}
	publishEvent(s.events, SubjectIssueCreated, created.ProjectID, created)
	return created, nil
}

// Update applies a sparse merge: fields absent from the patch stay exactly
// as they were. Any supplied status or priority must be a declared enum
// member; any status transition is accepted, there is no state machine.
func (s *IssueService) Update(id uint, patch store.IssuePatch) (*models.Issue, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, invalidField("status", "unknown status "+string(*patch.Status))
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, invalidField("priority", "unknown priority "+string(*patch.Priority))
	}
	if patch.AssigneeID != nil {
		if err := s.checkUser("assigneeId", *patch.AssigneeID); err != nil {
			return nil, err
		}
	}

	updated, err := s.issues.Update(id, patch)
	if err != nil {
		return nil, err
	}
	publishEvent(s.events, SubjectIssueUpdated, updated.ProjectID, updated)
	return updated, nil
}

func (s *IssueService) checkProject(id uint) error {
	if _, err := s.projects.FindByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalidField("projectId", fmt.Sprintf("project %d does not exist", id))
		}
		return err
	}
	return nil
}

func (s *IssueService) checkUser(field string, id uint) error {
	if _, err := s.users.FindByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalidField(field, fmt.Sprintf("user %d does not exist", id))
		}
		return err
	}
	return nil
}
