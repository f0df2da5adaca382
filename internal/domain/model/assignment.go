package model

import "time"

// TranslatorAssignment links one translator to one job for a bounded span.
// Rows are soft-closed via CancelAt/CompletedAt, never deleted. Among all
// rows for one job at most one may have both CancelAt and CompletedAt nil;
// that row is the active assignment.
type TranslatorAssignment struct {
	ID          string // UUID
	JobID       string
	UserID      string // translator
	CreatedAt   time.Time
	CancelAt    *time.Time
	CompletedAt *time.Time
	CompletedBy string // user id that closed the session, empty while open
}

// Open reports whether this row is the active assignment for its job.
func (a *TranslatorAssignment) Open() bool {
	return a.CancelAt == nil && a.CompletedAt == nil
}
