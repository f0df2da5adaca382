package repository

import (
	"context"
	"time"

	"interpreter-booking/internal/domain/model"
)

// AssignmentClose carries the soft-close fields for an assignment row.
// Exactly one of CancelAt / CompletedAt is set.
type AssignmentClose struct {
	CancelAt    *time.Time
	CompletedAt *time.Time
	CompletedBy string
}

// AssignmentRepository is the port for translator-job relations.
type AssignmentRepository interface {
	Create(ctx context.Context, tx Tx, a *model.TranslatorAssignment) error
	Close(ctx context.Context, tx Tx, id string, c AssignmentClose) error

	// FindActiveByJob returns the single open assignment for a job, or
	// domain.ErrNotFound when no translator currently holds it.
	FindActiveByJob(ctx context.Context, tx Tx, jobID string) (*model.TranslatorAssignment, error)
	FindByJob(ctx context.Context, tx Tx, jobID string) ([]*model.TranslatorAssignment, error)

	// HasOverlapping reports whether the translator already holds an open
	// assignment on another job due at the same time.
	HasOverlapping(ctx context.Context, tx Tx, translatorID string, due time.Time) (bool, error)

	// WasAssigned reports whether the translator ever had an assignment
	// row for the job, open or closed.
	WasAssigned(ctx context.Context, tx Tx, translatorID, jobID string) (bool, error)
}
