package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task types routed through the queue. The worker registers a handler
// per type.
const (
	TypeAuthorCreated = "author:created"
	TypeAuthorWelcome = "author:welcome"
	TypeBookCreated   = "book:created"
	TypeReorderScan   = "inventory:reorder_scan"
)

// Queue names by priority.
const (
	QueueDefault       = "default"
	QueueNotifications = "notifications"
	QueueLow           = "low"
)

// AuthorCreatedPayload is emitted after an author is persisted.
type AuthorCreatedPayload struct {
	AuthorID  uuid.UUID `json:"author_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorWelcomePayload triggers the onboarding welcome notification.
type AuthorWelcomePayload struct {
	AuthorID uuid.UUID `json:"author_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email,omitempty"`
}

// BookCreatedPayload is emitted after a book is persisted.
type BookCreatedPayload struct {
	BookID   uuid.UUID `json:"book_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Title    string    `json:"title"`
	ISBN     string    `json:"isbn"`
}

// ReorderScanPayload drives the scheduled low-stock scan.
type ReorderScanPayload struct {
	Limit int `json:"limit"`
}

// Publisher is the event port consumed by use cases. Publishing is
// best-effort: a failure is logged by the caller, never propagated as
// an overall failure, and never rolls back the preceding save.
type Publisher interface {
	PublishAuthorCreated(ctx context.Context, payload AuthorCreatedPayload) error
	PublishAuthorWelcome(ctx context.Context, payload AuthorWelcomePayload) error
	PublishBookCreated(ctx context.Context, payload BookCreatedPayload) error
}
