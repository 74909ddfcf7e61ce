package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/joejung/mira/models"
)

// fixtures inserts the reporter and project every issue needs.
func fixtures(t *testing.T, st *Store) (reporterID, projectID uint) {
	t.Helper()

	user := &models.User{Email: "reporter@mira.com", PasswordHash: "h"}
	if err := st.Users.Insert(user); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	project := &models.Project{Name: "MIRA Core", Key: "MIRA"}
	if err := st.Projects.Insert(project); err != nil {
		t.Fatalf("insert project: %v", err)
	}
	return user.ID, project.ID
}

func strptr(s string) *string { return &s }

func TestIssueInsertDefaults(t *testing.T) {
	st := testStore(t)
	reporterID, projectID := fixtures(t, st)

	issue := &models.Issue{
		Title:      "Kernel panic on boot",
		ProjectID:  projectID,
		ReporterID: reporterID,
	}
	if err := st.Issues.Insert(issue); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	got, err := st.Issues.FindByID(issue.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.Status != models.StatusOpen {
		t.Errorf("status = %q, want %q", got.Status, models.StatusOpen)
	}
	if got.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want %q", got.Priority, models.PriorityMedium)
	}
	if got.AssigneeID != nil {
		t.Errorf("assigneeId = %v, want nil", *got.AssigneeID)
	}
}

func TestIssueRoundTrip(t *testing.T) {
	st := testStore(t)
	reporterID, projectID := fixtures(t, st)

	issue := &models.Issue{
		Title:       "GPU artifacting in Genshin Impact",
		Description: strptr("Visible after 10 minutes of load"),
		Status:      models.StatusInProgress,
		Priority:    models.PriorityCritical,
		ProjectID:   projectID,
		ReporterID:  reporterID,
		AssigneeID:  &reporterID,
		Chipset:     strptr("Dimensity 9300"),
		ChipsetVer:  strptr("v2"),
	}
	if err := st.Issues.Insert(issue); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	got, err := st.Issues.FindByID(issue.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.Title != issue.Title {
		t.Errorf("title = %q, want %q", got.Title, issue.Title)
	}
	if got.Description == nil || *got.Description != "Visible after 10 minutes of load" {
		t.Errorf("description = %v, want supplied value", got.Description)
	}
	if got.Status != models.StatusInProgress || got.Priority != models.PriorityCritical {
		t.Errorf("status/priority = %q/%q, want supplied values", got.Status, got.Priority)
	}
	if got.AssigneeID == nil || *got.AssigneeID != reporterID {
		t.Errorf("assigneeId = %v, want %d", got.AssigneeID, reporterID)
	}
	if got.Chipset == nil || *got.Chipset != "Dimensity 9300" {
		t.Errorf("chipset = %v, want supplied value", got.Chipset)
	}
	if got.Project == nil || got.Project.Key != "MIRA" {
		t.Error("expected project preloaded")
	}
	if got.Reporter == nil || got.Reporter.ID != reporterID {
		t.Error("expected reporter preloaded")
	}
}

func TestIssuePartialUpdateIdempotent(t *testing.T) {
	st := testStore(t)
	reporterID, projectID := fixtures(t, st)

	issue := &models.Issue{
		Title:       "Battery drain excessive in standby",
		Description: strptr("5%/h idle"),
		Priority:    models.PriorityHigh,
		ProjectID:   projectID,
		ReporterID:  reporterID,
		Chipset:     strptr("Tensor G3"),
	}
	if err := st.Issues.Insert(issue); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	closed := models.StatusClosed
	patch := IssuePatch{Status: &closed}

	first, err := st.Issues.Update(issue.ID, patch)
	if err != nil {
		t.Fatalf("first Update returned error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := st.Issues.Update(issue.ID, patch)
	if err != nil {
		t.Fatalf("second Update returned error: %v", err)
	}

	if first.Status != models.StatusClosed || second.Status != models.StatusClosed {
		t.Errorf("status after updates = %q/%q, want CLOSED", first.Status, second.Status)
	}

	// Everything not named in the patch stays exactly as before.
	for _, got := range []*models.Issue{first, second} {
		if got.Title != issue.Title {
			t.Errorf("title changed to %q", got.Title)
		}
		if got.Description == nil || *got.Description != "5%/h idle" {
			t.Errorf("description changed to %v", got.Description)
		}
		if got.Priority != models.PriorityHigh {
			t.Errorf("priority changed to %q", got.Priority)
		}
		if got.Chipset == nil || *got.Chipset != "Tensor G3" {
			t.Errorf("chipset changed to %v", got.Chipset)
		}
	}

	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Error("createdAt must be immutable across writes")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Error("updatedAt must be refreshed on every write")
	}
}

func TestIssueUnassignViaNull(t *testing.T) {
	st := testStore(t)
	reporterID, projectID := fixtures(t, st)

	issue := &models.Issue{
		Title:      "VoLTE call drop",
		ProjectID:  projectID,
		ReporterID: reporterID,
		AssigneeID: &reporterID,
	}
	if err := st.Issues.Insert(issue); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	var patch IssuePatch
	if err := json.Unmarshal([]byte(`{"assigneeId": null}`), &patch); err != nil {
		t.Fatalf("unmarshal patch: %v", err)
	}

	got, err := st.Issues.Update(issue.ID, patch)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.AssigneeID != nil {
		t.Errorf("assigneeId = %v, want nil after explicit null", *got.AssigneeID)
	}
}

func TestIssuePatchDecodingTriState(t *testing.T) {
	var absent IssuePatch
	if err := json.Unmarshal([]byte(`{"title": "x"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.AssigneeID != nil || absent.Unassign {
		t.Error("absent assigneeId must neither set nor unassign")
	}

	var null IssuePatch
	if err := json.Unmarshal([]byte(`{"assigneeId": null}`), &null); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if null.AssigneeID != nil || !null.Unassign {
		t.Error("null assigneeId must unassign")
	}

	var set IssuePatch
	if err := json.Unmarshal([]byte(`{"assigneeId": 7}`), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if set.AssigneeID == nil || *set.AssigneeID != 7 || set.Unassign {
		t.Error("numeric assigneeId must set, not unassign")
	}
}

func TestIssueUpdateNotFound(t *testing.T) {
	st := testStore(t)

	title := "x"
	if _, err := st.Issues.Update(999, IssuePatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
}

func TestIssueListPagination(t *testing.T) {
	st := testStore(t)
	reporterID, projectID := fixtures(t, st)

	for i := 0; i < 25; i++ {
		issue := &models.Issue{
			Title:      fmt.Sprintf("Touch sampling rate drop [Case %d]", i),
			ProjectID:  projectID,
			ReporterID: reporterID,
		}
		if err := st.Issues.Insert(issue); err != nil {
			t.Fatalf("insert issue %d: %v", i, err)
		}
	}

	page1, err := st.Issues.List(0, 10)
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	page2, err := st.Issues.List(10, 10)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}

	if len(page1) != 10 || len(page2) != 10 {
		t.Fatalf("page sizes = %d/%d, want 10/10", len(page1), len(page2))
	}

	seen := map[uint]bool{}
	for _, issue := range append(page1, page2...) {
		if seen[issue.ID] {
			t.Errorf("issue %d appears on both pages", issue.ID)
		}
		seen[issue.ID] = true
	}

	// Natural order: the two pages cover the first 20 issues.
	all, err := st.Issues.List(0, 20)
	if err != nil {
		t.Fatalf("List first 20: %v", err)
	}
	for _, issue := range all {
		if !seen[issue.ID] {
			t.Errorf("issue %d in first 20 but missing from pages", issue.ID)
		}
	}
}

func TestCommentInsertLoadsAuthor(t *testing.T) {
	st := testStore(t)
	reporterID, projectID := fixtures(t, st)

	issue := &models.Issue{Title: "GPS accuracy drift", ProjectID: projectID, ReporterID: reporterID}
	if err := st.Issues.Insert(issue); err != nil {
		t.Fatalf("insert issue: %v", err)
	}

	comment := &models.Comment{Content: "Repro on v2 firmware", IssueID: issue.ID, AuthorID: reporterID}
	if err := st.Comments.Insert(comment); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if comment.Author == nil || comment.Author.ID != reporterID {
		t.Error("expected author preloaded after insert")
	}

	got, err := st.Issues.FindByID(issue.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(got.Comments) != 1 || got.Comments[0].Content != "Repro on v2 firmware" {
		t.Errorf("comments = %+v, want the inserted comment", got.Comments)
	}
}
