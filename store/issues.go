package store

import (
	"encoding/json"

	"github.com/joejung/mira/models"
	"gorm.io/gorm"
)

// IssueStore provides list, insert and partial update for issues.
type IssueStore struct {
	db *gorm.DB
}

// IssuePatch is a sparse update: only fields present in the request are
// applied, everything else is left untouched. AssigneeID needs three
// states (absent, set, explicit null), so presence of a null assigneeId
// is recorded separately during decoding.
type IssuePatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *models.Status   `json:"status"`
	Priority    *models.Priority `json:"priority"`
	AssigneeID  *uint            `json:"assigneeId"`
	Chipset     *string          `json:"chipset"`
	ChipsetVer  *string          `json:"chipsetVer"`

	Unassign bool `json:"-"`
}

func (p *IssuePatch) UnmarshalJSON(data []byte) error {
	type alias IssuePatch
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["assigneeId"]; ok && string(v) == "null" {
		a.Unassign = true
	}
	*p = IssuePatch(a)
	return nil
}

// changes maps the supplied fields onto their columns.
func (p *IssuePatch) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Priority != nil {
		updates["priority"] = *p.Priority
	}
	if p.AssigneeID != nil {
		updates["assignee_id"] = *p.AssigneeID
	} else if p.Unassign {
		updates["assignee_id"] = nil
	}
	if p.Chipset != nil {
		updates["chipset"] = *p.Chipset
	}
	if p.ChipsetVer != nil {
		updates["chipset_ver"] = *p.ChipsetVer
	}
	return updates
}

// List returns a page of issues in natural order with their relations
// loaded, matching the API response shape.
func (s *IssueStore) List(offset, limit int) ([]models.Issue, error) {
	var issues []models.Issue
	err := s.preloaded().
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *IssueStore) FindByID(id uint) (*models.Issue, error) {
	var issue models.Issue
	if err := s.preloaded().First(&issue, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &issue, nil
}

// Insert persists an issue, defaulting status to OPEN and priority to
// MEDIUM when unspecified.
func (s *IssueStore) Insert(issue *models.Issue) error {
	if issue.Status == "" {
		issue.Status = models.StatusOpen
	}
	if issue.Priority == "" {
		issue.Priority = models.PriorityMedium
	}
	return s.db.Create(issue).Error
}

// Update applies the patch to the issue with the given id and returns the
// updated row, or ErrNotFound if the id does not resolve. UpdatedAt is
// refreshed whenever at least one field changes.
func (s *IssueStore) Update(id uint, patch IssuePatch) (*models.Issue, error) {
	var issue models.Issue
	if err := s.db.First(&issue, id).Error; err != nil {
		return nil, notFound(err)
	}

	if updates := patch.changes(); len(updates) > 0 {
		if err := s.db.Model(&issue).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.FindByID(id)
}

func (s *IssueStore) preloaded() *gorm.DB {
	return s.db.
		Preload("Project").
		Preload("Reporter").
		Preload("Assignee").
		Preload("Comments").
		Preload("Comments.Author")
}
