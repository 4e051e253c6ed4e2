package domain

// Catalog event types
const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"
)

// CatalogEvent describes a change to the question catalog
type CatalogEvent struct {
	Type       string     `json:"type"`
	QuestionID int64      `json:"question_id"`
	Category   CategoryID `json:"category,omitempty"`
}

// EventPublisher delivers catalog events to connected clients
type EventPublisher interface {
	Publish(event CatalogEvent)
}
