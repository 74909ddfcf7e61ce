package services

import (
	"errors"
	"fmt"

	"github.com/joejung/mira/models"
	"github.com/joejung/mira/store"
)

// CommentStore is what the comment use case needs from the entity store.
type CommentStore interface {
	Insert(comment *models.Comment) error
}

// CommentService creates comments. Comments are create-only; there is no
// edit or delete use case.
type CommentService struct {
	comments CommentStore
	issues   IssueStore
	users    UserStore
	events   Publisher
}

func NewCommentService(comments CommentStore, issues IssueStore, users UserStore, events Publisher) *CommentService {
	return &CommentService{comments: comments, issues: issues, users: users, events: events}
}

// CommentInput carries already-decoded comment data.
type CommentInput struct {
	Content  string
	IssueID  uint
	AuthorID uint
}

// Create validates that the issue and author exist, then persists the
// comment.
func (s *CommentService) Create(in CommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, invalidField("content", "must not be empty")
	}

	issue, err := s.issues.FindByID(in.IssueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalidField("issueId", fmt.Sprintf("issue %d does not exist", in.IssueID))
		}
		return nil, err
	}
	if _, err := s.users.FindByID(in.AuthorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalidField("authorId", fmt.Sprintf("user %d does not exist", in.AuthorID))
		}
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		IssueID:  in.IssueID,
		AuthorID: in.AuthorID,
	}
	if err := s.comments.Insert(comment); err != nil {
		return nil, err
	}

	publishEvent(s.events, SubjectCommentCreated, issue.ProjectID, comment)
	return comment, nil
}
