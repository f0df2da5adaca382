package adapter

import (
	"context"
	"time"
)

type EventKind string

const (
	EventJobCreated   EventKind = "job.created"
	EventJobCanceled  EventKind = "job.canceled"
	EventSessionEnded EventKind = "session.ended"
)

// Event is a fire-and-forget domain event for downstream consumers.
type Event struct {
	Kind       EventKind
	JobID      string
	UserID     string // counterpart of the action where relevant
	OccurredAt time.Time
}

type EventBus interface {
	Publish(ctx context.Context, e Event) error
}
