package models

import (
	"time"
)

// Status enum for issues
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
	StatusReopened   Status = "REOPENED"
)

// Valid reports whether s is a declared status value.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed, StatusReopened:
		return true
	}
	return false
}

// Priority enum for issues
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid reports whether p is a declared priority value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Project model
type Project struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Key         string  `gorm:"uniqueIndex;not null" json:"key"`
	Description *string `json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Issues []Issue `gorm:"foreignKey:ProjectID" json:"issues,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// Issue model
type Issue struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Description *string  `json:"description"`
	Status      Status   `gorm:"type:varchar(20);default:'OPEN'" json:"status"`
	Priority    Priority `gorm:"type:varchar(20);default:'MEDIUM'" json:"priority"`

	ProjectID  uint  `gorm:"not null;column:project_id" json:"projectId"`
	ReporterID uint  `gorm:"not null;column:reporter_id" json:"reporterId"`
	AssigneeID *uint `gorm:"column:assignee_id" json:"assigneeId"`

	Chipset    *string `json:"chipset"`
	ChipsetVer *string `gorm:"column:chipset_ver" json:"chipsetVer"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Reporter *User     `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments []Comment `gorm:"foreignKey:IssueID" json:"comments,omitempty"`
}

func (Issue) TableName() string {
	return "issues"
}

// Comment model
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`

	IssueID  uint `gorm:"not null;column:issue_id" json:"issueId"`
	AuthorID uint `gorm:"not null;column:author_id" json:"authorId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
