package services

import (
	"encoding/json"
	"log"
)

// Event subjects published on mutations.
const (
	SubjectIssueCreated   = "issues.created"
	SubjectIssueUpdated   = "issues.updated"
	SubjectCommentCreated = "comments.created"
)

// Publisher publishes event envelopes. *nats.Conn satisfies it; services
// accept nil when no event bus is running.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the envelope broadcast to WebSocket clients.
type Event struct {
	Type      string      `json:"type"`
	ProjectID uint        `json:"projectId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// publishEvent sends an event on a best-effort basis. Mutations already
// committed; a dead bus only costs the live stream.
func publishEvent(pub Publisher, subject string, projectID uint, payload interface{}) {
	if pub == nil {
		return
	}
	data, err := json.Marshal(Event{Type: subject, ProjectID: projectID, Payload: payload})
	if err != nil {
		log.Printf("⚠️ Failed to encode %s event: %v", subject, err)
		return
	}
	if err := pub.Publish(subject, data); err != nil {
		log.Printf("⚠️ Failed to publish %s event: %v", subject, err)
	}
}
